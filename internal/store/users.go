package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/filelock"
)

// User is a registered board user. PasswordHash is opaque and never
// produced or checked here.
type User struct {
	ID           string    `yaml:"id" json:"id"`
	Email        string    `yaml:"email" json:"email"`
	FullName     string    `yaml:"full_name" json:"full_name"`
	PasswordHash string    `yaml:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time `yaml:"created_at" json:"created_at"`
}

// UserStore is the email-keyed user registry.
type UserStore struct {
	path     string
	lockPath string
}

// NewUserStore returns the registry of the board described by cfg.
func NewUserStore(cfg *config.Config) *UserStore {
	return &UserStore{
		path:     cfg.UsersPath(),
		lockPath: filepath.Join(cfg.Dir(), LockFileName),
	}
}

// NormalizeEmail returns the registry key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds a user and returns it with a fresh id.
func (s *UserStore) Register(email, fullName, passwordHash string, now time.Time) (*User, error) {
	key := NormalizeEmail(email)
	if key == "" || !strings.Contains(key, "@") {
		return nil, clierr.Newf(clierr.InvalidInput, "invalid email %q", email).
			WithDetails(map[string]any{"email": email})
	}

	var created *User
	err := filelock.With(s.lockPath, func() error {
		users, err := s.read()
		if err != nil {
			return err
		}
		if _, exists := users[key]; exists {
			return clierr.Newf(clierr.UserExists, "user %s already exists", key).
				WithDetails(map[string]any{"email": key})
		}
		created = &User{
			ID:           uuid.NewString(),
			Email:        key,
			FullName:     strings.TrimSpace(fullName),
			PasswordHash: passwordHash,
			CreatedAt:    now,
		}
		users[key] = created
		return s.write(users)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"email": key, "id": created.ID}).Info("registered user")
	return created, nil
}

// Get returns the user registered under email.
func (s *UserStore) Get(email string) (*User, error) {
	key := NormalizeEmail(email)
	users, err := s.read()
	if err != nil {
		return nil, err
	}
	u, ok := users[key]
	if !ok {
		return nil, clierr.Newf(clierr.UserNotFound, "user not found: %s", key).
			WithDetails(map[string]any{"email": key})
	}
	return u, nil
}

// List returns every user sorted by email.
func (s *UserStore) List() ([]*User, error) {
	users, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]*User, 0, len(users))
	for _, u := range users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *UserStore) read() (map[string]*User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}

	users := map[string]*User{}
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return users, nil
}

func (s *UserStore) write(users map[string]*User) error {
	data, err := yaml.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshaling users: %w", err)
	}
	return writeAtomic(s.path, data)
}
