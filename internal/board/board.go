package board

import (
	"strconv"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter FilterOptions
	Limit  int
}

// List filters tasks and returns them in urgency order, truncated to Limit.
func List(tasks []*task.Task, opts ListOptions, now time.Time) []*task.Task {
	opts.Filter.Now = now
	out := Order(Filter(tasks, opts.Filter), now)
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// TaskView pairs a task with its current classification.
type TaskView struct {
	*task.Task
	Status  urgency.Status `json:"status"`
	Warning string         `json:"warning,omitempty"`
}

// Views classifies each task at now. Classification errors are kept as
// warnings next to a none status.
func Views(tasks []*task.Task, now time.Time) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		st, err := urgency.ClassifyTask(t, now)
		v := TaskView{Task: t, Status: st}
		if err != nil {
			v.Status = urgency.None()
			v.Warning = err.Error()
		}
		views[i] = v
	}
	return views
}

// CategorySummary holds progress metrics for one category.
type CategorySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	// Urgent counts pending tasks classified overdue, urgent or today.
	Urgent int `json:"urgent"`
}

// Overview is the aggregate board overview.
type Overview struct {
	BoardName  string            `json:"board_name"`
	TotalTasks int               `json:"total_tasks"`
	Completed  int               `json:"completed"`
	Pending    int               `json:"pending"`
	Overdue    int               `json:"overdue"`
	DueToday   int               `json:"due_today"` // pending, due later today
	Categories []CategorySummary `json:"categories"`
}

// Summary computes header stats and per-category progress in catalog order.
// Tasks in categories missing from the catalog count toward the totals only.
func Summary(cfg *config.Config, tasks []*task.Task, now time.Time) Overview {
	byID := make(map[string]*CategorySummary, len(cfg.Categories))
	cats := make([]CategorySummary, len(cfg.Categories))
	for i, c := range cfg.Categories {
		cats[i] = CategorySummary{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
		byID[c.ID] = &cats[i]
	}

	today := date.Of(now)
	ov := Overview{BoardName: cfg.Board.Name, TotalTasks: len(tasks)}
	for _, t := range tasks {
		cs := byID[t.Category]
		if cs != nil {
			cs.Total++
		}
		if t.Completed {
			ov.Completed++
			if cs != nil {
				cs.Completed++
			}
			continue
		}
		ov.Pending++
		st, err := urgency.ClassifyTask(t, now)
		if err != nil {
			continue
		}
		switch {
		case st.Kind == urgency.KindOverdue:
			ov.Overdue++
		case t.DeadlineDate != nil && t.DeadlineDate.Equal(today):
			ov.DueToday++
		}
		if st.Urgent && cs != nil {
			cs.Urgent++
		}
	}
	ov.Categories = cats
	return ov
}

// ParseIDs splits a comma-separated ID string into deduplicated int IDs.
func ParseIDs(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int]bool, len(parts))
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil || id < 1 {
			return nil, task.ValidateTaskID(p)
		}
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
