// Package store persists task documents and the user registry as YAML files
// inside the board directory. Every read-modify-write runs under the board's
// advisory lock.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/filelock"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750

	// LockFileName is the advisory lock shared by all writers of a board.
	LockFileName = ".lock"
)

// Document is the full task set of one owner.
type Document struct {
	NextID int          `yaml:"next_id"`
	Tasks  []*task.Task `yaml:"tasks"`
}

// Add assigns the next id to t, stamps the owner and appends it.
func (d *Document) Add(ownerID string, t *task.Task) {
	t.ID = d.NextID
	t.OwnerID = ownerID
	d.NextID++
	d.Tasks = append(d.Tasks, t)
}

// Find returns the task with id, or a TASK_NOT_FOUND error.
func (d *Document) Find(id int) (*task.Task, error) {
	return task.FindByID(d.Tasks, id)
}

// Delete removes the task with id.
func (d *Document) Delete(id int) error {
	rest, ok := task.Remove(d.Tasks, id)
	if !ok {
		return task.NotFound(id)
	}
	d.Tasks = rest
	return nil
}

// normalize keeps NextID above every stored id.
func (d *Document) normalize() {
	highest := 0
	for _, t := range d.Tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	if d.NextID <= highest {
		d.NextID = highest + 1
	}
}

// TaskStore reads and writes per-owner task documents.
type TaskStore struct {
	dir      string
	lockPath string
}

// NewTaskStore returns a store rooted at the board's tasks directory.
func NewTaskStore(cfg *config.Config) *TaskStore {
	return &TaskStore{
		dir:      cfg.TasksPath(),
		lockPath: filepath.Join(cfg.Dir(), LockFileName),
	}
}

// Dir returns the directory holding the task documents.
func (s *TaskStore) Dir() string {
	return s.dir
}

// Path returns the document path for ownerID.
func (s *TaskStore) Path(ownerID string) (string, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return "", clierr.Newf(clierr.InvalidInput, "invalid owner id %q", ownerID).
			WithDetails(map[string]any{"owner_id": ownerID})
	}
	return filepath.Join(s.dir, ownerID+".yml"), nil
}

// Load reads the owner's document. A missing file yields an empty document.
func (s *TaskStore) Load(ownerID string) (*Document, error) {
	path, err := s.Path(ownerID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path built from a validated uuid
	if errors.Is(err, os.ErrNotExist) {
		return &Document{NextID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, t := range doc.Tasks {
		if t.OwnerID == "" {
			t.OwnerID = ownerID
		}
		t.Priority = t.Priority.OrDefault()
	}
	doc.normalize()

	log.WithFields(log.Fields{"owner": ownerID, "tasks": len(doc.Tasks)}).Debug("loaded tasks")
	return &doc, nil
}

// Save writes the owner's document, replacing the previous file atomically.
// Callers coordinating with other processes should use Update instead.
func (s *TaskStore) Save(ownerID string, doc *Document) error {
	path, err := s.Path(ownerID)
	if err != nil {
		return err
	}
	doc.normalize()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling tasks: %w", err)
	}
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("creating tasks directory: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	log.WithFields(log.Fields{"owner": ownerID, "tasks": len(doc.Tasks), "path": path}).Debug("saved tasks")
	return nil
}

// Update loads the owner's document under the board lock, applies fn and
// saves the result. Nothing is written when fn returns an error.
func (s *TaskStore) Update(ownerID string, fn func(*Document) error) error {
	return filelock.With(s.lockPath, func() error {
		doc, err := s.Load(ownerID)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		return s.Save(ownerID, doc)
	})
}

// writeAtomic writes data to a temp file next to path and renames it over
// path, so readers and the file watcher never see a half-written document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
