package board

import (
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

// Group is one category column with its tasks in urgency order.
type Group struct {
	Category config.CategoryConfig `json:"category"`
	Tasks    []*task.Task          `json:"tasks"`
}

// Completed returns how many tasks of the group are done.
func (g Group) Completed() int {
	n := 0
	for _, t := range g.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// GroupByCategory returns one group per catalog entry, in catalog order, even
// when a category holds no tasks. Tasks in unknown categories are dropped.
func GroupByCategory(cfg *config.Config, tasks []*task.Task, now time.Time) []Group {
	byCat := make(map[string][]*task.Task, len(cfg.Categories))
	for _, t := range tasks {
		byCat[t.Category] = append(byCat[t.Category], t)
	}

	groups := make([]Group, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		groups = append(groups, Group{
			Category: c,
			Tasks:    Order(byCat[c.ID], now),
		})
	}
	return groups
}
