package alert

import (
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

// Session holds one viewer's dismissal state. It is not safe for concurrent
// use; callers sharing a Session must serialize access.
type Session struct {
	dismissed [numKinds]bool
	lastCount int
	observed  bool
}

// NewSession returns a session with every bucket visible.
func NewSession() *Session {
	return &Session{}
}

// Dismiss hides the bucket of kind k until the task count changes.
func (s *Session) Dismiss(k Kind) {
	if k.valid() {
		s.dismissed[k] = true
	}
}

// Dismissed reports whether bucket k is currently hidden.
func (s *Session) Dismissed(k Kind) bool {
	return k.valid() && s.dismissed[k]
}

// Observe records the owner's total task count. Any change from the last
// observed count makes every bucket visible again. It reports whether a
// reset happened.
func (s *Session) Observe(count int) bool {
	if !s.observed {
		s.observed = true
		s.lastCount = count
		return false
	}
	if count == s.lastCount {
		return false
	}
	s.lastCount = count
	reset := s.dismissed != [numKinds]bool{}
	s.dismissed = [numKinds]bool{}
	return reset
}

// Aggregate observes the task count, buckets the tasks and applies the
// session's dismissal state.
func (s *Session) Aggregate(tasks []*task.Task, now time.Time) Alerts {
	s.Observe(len(tasks))
	a := Aggregate(tasks, now)
	for _, k := range Kinds {
		a.Bucket(k).Dismissed = s.dismissed[k]
	}
	return a
}
