package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/clock"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var now = time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)

const email = "ana@example.com"

type fixture struct {
	e     *echo.Echo
	tasks *store.TaskStore
	owner *store.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := config.Init(filepath.Join(t.TempDir(), "board"), "home")
	if err != nil {
		t.Fatalf("config.Init: %v", err)
	}
	users := store.NewUserStore(cfg)
	owner, err := users.Register(email, "Ana", "", now)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	tasks := store.NewTaskStore(cfg)

	logger := log.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		e:     New(Deps{Config: cfg, Users: users, Tasks: tasks, Clock: clock.Fixed(now), Log: logger}),
		tasks: tasks,
		owner: owner,
	}
	f.add(t, "pay rent", "home", -time.Hour)
	f.add(t, "call bank", "calls", 30*time.Minute)
	f.add(t, "read book", "studies", 0)
	return f
}

func (f *fixture) add(t *testing.T, text, category string, offset time.Duration) {
	t.Helper()
	err := f.tasks.Update(f.owner.ID, func(doc *store.Document) error {
		tk := task.New(0, "", text, category, now)
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

func (f *fixture) do(method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(HeaderUserEmail, email)
	for k, v := range headers {
		if v == "" {
			req.Header.Del(k)
			continue
		}
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

type taskItem struct {
	ID     int `json:"id"`
	Status struct {
		Kind  string `json:"kind"`
		Label string `json:"label"`
	} `json:"status"`
}

func TestGetTasksOrdered(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/tasks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[struct{ Tasks []taskItem }](t, rec)
	if len(resp.Tasks) != 3 {
		t.Fatalf("tasks = %d", len(resp.Tasks))
	}
	wantIDs := []int{1, 2, 3}
	for i, tk := range resp.Tasks {
		if tk.ID != wantIDs[i] {
			t.Errorf("tasks[%d] = #%d, want #%d", i, tk.ID, wantIDs[i])
		}
	}
	if resp.Tasks[0].Status.Kind != "overdue" || resp.Tasks[1].Status.Label != "30 min" {
		t.Errorf("statuses = %+v", resp.Tasks)
	}
}

func TestGetTasksCategory(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/tasks?category=calls", nil)
	resp := decode[struct{ Tasks []taskItem }](t, rec)
	if len(resp.Tasks) != 1 || resp.Tasks[0].ID != 2 {
		t.Errorf("calls = %+v", resp.Tasks)
	}

	rec = f.do(http.MethodGet, "/api/tasks?category=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d", rec.Code)
	}
	if got := decode[output.ErrorResponse](t, rec); got.Code != clierr.InvalidCategory {
		t.Errorf("code = %s", got.Code)
	}
}

func TestUserResolution(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		email  string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, clierr.UserRequired},
		{"unknown user", "bob@example.com", http.StatusNotFound, clierr.UserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/alerts", map[string]string{HeaderUserEmail: tt.email})
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := decode[output.ErrorResponse](t, rec); got.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Code, tt.code)
			}
		})
	}
}

type alertsBody struct {
	SessionID string                 `json:"session_id"`
	Buckets   []output.BucketSummary `json:"buckets"`
}

func bucket(t *testing.T, body alertsBody, k alert.Kind) output.BucketSummary {
	t.Helper()
	for _, b := range body.Buckets {
		if b.Kind == k {
			return b
		}
	}
	t.Fatalf("bucket %s missing", k)
	return output.BucketSummary{}
}

func TestAlertsSession(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/alerts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	first := decode[alertsBody](t, rec)
	if _, err := uuid.Parse(first.SessionID); err != nil {
		t.Fatalf("minted session id %q: %v", first.SessionID, err)
	}
	if rec.Header().Get(HeaderSessionID) != first.SessionID {
		t.Error("session id header not echoed")
	}
	if b := bucket(t, first, alert.Overdue); b.Count != 1 || b.Dismissed || len(b.Tasks) != 1 {
		t.Errorf("overdue = %+v", b)
	}

	session := map[string]string{HeaderSessionID: first.SessionID}
	rec = f.do(http.MethodPost, "/api/alerts/overdue/dismiss", session)
	if b := bucket(t, decode[alertsBody](t, rec), alert.Overdue); !b.Dismissed {
		t.Error("dismiss did not stick")
	}

	rec = f.do(http.MethodGet, "/api/alerts", session)
	if b := bucket(t, decode[alertsBody](t, rec), alert.Overdue); !b.Dismissed {
		t.Error("dismissal lost between requests")
	}

	// Another session is unaffected.
	rec = f.do(http.MethodGet, "/api/alerts", nil)
	if b := bucket(t, decode[alertsBody](t, rec), alert.Overdue); b.Dismissed {
		t.Error("dismissal leaked into a fresh session")
	}

	// A new task resets the dismissal.
	f.add(t, "new errand", "other", 0)
	rec = f.do(http.MethodGet, "/api/alerts", session)
	if b := bucket(t, decode[alertsBody](t, rec), alert.Overdue); b.Dismissed {
		t.Error("count change did not reset the dismissal")
	}
}

func TestDismissInvalidBucket(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/alerts/tomorrow/dismiss", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if got := decode[output.ErrorResponse](t, rec); got.Code != clierr.InvalidBucket {
		t.Errorf("code = %s", got.Code)
	}
}

func TestInvalidSessionID(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/alerts", map[string]string{HeaderSessionID: "not-a-uuid"})
	if got := decode[output.ErrorResponse](t, rec); rec.Code != http.StatusBadRequest || got.Code != clierr.InvalidInput {
		t.Errorf("status = %d code = %s", rec.Code, got.Code)
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
