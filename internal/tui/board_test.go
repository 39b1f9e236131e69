package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clock"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var now = time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	cfg   *config.Config
	store *store.TaskStore
	owner *store.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := config.Init(filepath.Join(t.TempDir(), "board"), "home")
	if err != nil {
		t.Fatalf("config.Init: %v", err)
	}
	owner, err := store.NewUserStore(cfg).Register("ana@example.com", "Ana", "", now)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	f := &fixture{cfg: cfg, store: store.NewTaskStore(cfg), owner: owner}
	f.add(t, "pay rent", -time.Hour)
	f.add(t, "call bank", 30*time.Minute)
	f.add(t, "read book", 0)
	return f
}

// add stores a work task due at now+offset; a zero offset means no deadline.
func (f *fixture) add(t *testing.T, text string, offset time.Duration) {
	t.Helper()
	err := f.store.Update(f.owner.ID, func(doc *store.Document) error {
		tk := task.New(0, "", text, "work", now)
		if offset != 0 {
			at := now.Add(offset)
			d := date.Of(at)
			tod := date.NewTime(at.Hour(), at.Minute())
			tk.SetDeadline(task.Deadline{Date: &d, Time: &tod})
		}
		doc.Add(f.owner.ID, tk)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func (f *fixture) board(clk clock.Clock) *Board {
	b := NewBoard(f.cfg, f.store, f.owner, clk)
	b.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBannersAndDismiss(t *testing.T) {
	b := newFixture(t).board(clock.Fixed(now))

	v := b.View()
	for _, want := range []string{"Overdue: 1 task", "#1 pay rent", "Due within 2 hours: 1 task"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	b.Update(runes("1"))
	v = b.View()
	if strings.Contains(v, "Overdue: 1 task") {
		t.Error("overdue banner still shown after dismiss")
	}
	if !strings.Contains(v, "Due within 2 hours: 1 task") {
		t.Error("dismissing overdue hid the urgent banner")
	}
}

func TestDismissResetsWhenTasksChange(t *testing.T) {
	f := newFixture(t)
	b := f.board(clock.Fixed(now))

	b.Update(runes("1"))
	b.Update(ReloadMsg{})
	if strings.Contains(b.View(), "Overdue: 1 task") {
		t.Fatal("reload without changes reset the dismissal")
	}

	f.add(t, "new errand", 0)
	b.Update(ReloadMsg{})
	if !strings.Contains(b.View(), "Overdue: 1 task") {
		t.Error("adding a task should bring dismissed banners back")
	}
}

func TestToggleSelectedTask(t *testing.T) {
	f := newFixture(t)
	b := f.board(clock.Fixed(now))

	if sel := b.selectedTask(); sel == nil || sel.ID != 1 {
		t.Fatalf("selected = %+v, want the overdue task", sel)
	}

	b.Update(tea.KeyMsg{Type: tea.KeySpace})

	doc, err := f.store.Load(f.owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	tk, err := doc.Find(1)
	if err != nil || !tk.Completed {
		t.Fatalf("task 1 = %+v, %v", tk, err)
	}
	if sel := b.selectedTask(); sel == nil || sel.ID != 1 {
		t.Errorf("cursor did not follow the toggled task: %+v", sel)
	}
	if strings.Contains(b.View(), "Overdue:") {
		t.Error("completed task still raises an overdue banner")
	}

	entries, err := board.ReadLog(f.cfg.Dir(), f.owner.ID)
	if err != nil || len(entries) != 1 || entries[0].Action != board.ActionToggle {
		t.Errorf("log = %+v, %v", entries, err)
	}
}

func TestDeleteConfirm(t *testing.T) {
	f := newFixture(t)
	b := f.board(clock.Fixed(now))

	b.Update(runes("d"))
	if !strings.Contains(b.View(), "Delete task?") {
		t.Fatal("delete did not ask for confirmation")
	}
	b.Update(runes("n"))
	if b.view != viewBoard || len(b.tasks) != 3 {
		t.Fatalf("cancel changed state: view=%d tasks=%d", b.view, len(b.tasks))
	}

	b.Update(runes("d"))
	b.Update(runes("y"))
	doc, err := f.store.Load(f.owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Tasks) != 2 {
		t.Fatalf("tasks after delete = %d", len(doc.Tasks))
	}
	if _, err := doc.Find(1); err == nil {
		t.Error("task 1 still stored")
	}
}

func TestHideCompleted(t *testing.T) {
	f := newFixture(t)
	b := f.board(clock.Fixed(now))

	b.Update(tea.KeyMsg{Type: tea.KeySpace})
	if n := len(b.columns[0].tasks); n != 3 {
		t.Fatalf("column holds %d tasks, want 3", n)
	}
	b.Update(runes("c"))
	if n := len(b.columns[0].tasks); n != 2 {
		t.Errorf("column holds %d tasks with completed hidden, want 2", n)
	}
}

func TestTickReclassifies(t *testing.T) {
	clk := clock.NewManual(now)
	b := newFixture(t).board(clk)

	clk.Advance(3 * time.Hour)
	_, cmd := b.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if !strings.Contains(b.View(), "Overdue: 2 tasks") {
		t.Error("urgent task did not turn overdue after the tick")
	}
}

func TestColumnsFollowCategories(t *testing.T) {
	f := newFixture(t)
	err := f.store.Update(f.owner.ID, func(doc *store.Document) error {
		doc.Add(f.owner.ID, task.New(0, "", "fix sink", "home", now))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	b := f.board(clock.Fixed(now))

	if len(b.columns) != 2 {
		t.Fatalf("columns = %d, want work and home", len(b.columns))
	}
	if b.columns[0].category.ID != "work" || b.columns[1].category.ID != "home" {
		t.Errorf("columns = %s, %s", b.columns[0].category.ID, b.columns[1].category.ID)
	}

	b.Update(runes("l"))
	if sel := b.selectedTask(); sel == nil || sel.Text != "fix sink" {
		t.Errorf("selected after l = %+v", sel)
	}
}

func TestWatchPaths(t *testing.T) {
	f := newFixture(t)
	b := f.board(clock.Fixed(now))
	if got := b.WatchPaths(); len(got) != 1 || got[0] != f.cfg.TasksPath() {
		t.Errorf("WatchPaths = %v", got)
	}
}

func TestWrapTitle(t *testing.T) {
	got := wrapTitle("pick up the dry cleaning before six", 12, 2)
	if len(got) != 2 || got[0] != "pick up the" {
		t.Errorf("wrapTitle = %q", got)
	}
	if got := wrapTitle("short", 12, 2); len(got) != 1 || got[0] != "short" {
		t.Errorf("wrapTitle(short) = %q", got)
	}
}
