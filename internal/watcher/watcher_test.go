package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	w := &Watcher{ignore: map[string]bool{"activity.jsonl": true}}

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/b/tasks/u.yml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/b/tasks/u.yml", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/b/tasks/u.yml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/b/.lock", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/b/tasks/.u.yml.123456", Op: fsnotify.Create}, false},
		{fsnotify.Event{Name: "/b/activity.jsonl", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/b/config.yml", Op: fsnotify.Create}, true},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.event); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestRunDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 10)

	w, err := New([]string{dir}, func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	path := filepath.Join(dir, "u.yml")
	for i := range 3 {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}

	select {
	case <-fired:
		t.Error("burst of writes fired the callback more than once")
	case <-time.After(3 * debounceDelay):
	}
}
