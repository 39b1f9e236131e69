package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

type handlers struct {
	deps     Deps
	sessions *registry
}

type tasksResponse struct {
	Tasks []board.TaskView `json:"tasks"`
}

type alertsResponse struct {
	SessionID string                 `json:"session_id"`
	Buckets   []output.BucketSummary `json:"buckets"`
}

func (h *handlers) getTasks(c echo.Context) error {
	user, err := h.user(c)
	if err != nil {
		return h.fail(c, err)
	}

	var opts board.ListOptions
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		if err := task.ValidateCategory(cat, h.deps.Config.CategoryIDs()); err != nil {
			return h.fail(c, err)
		}
		opts.Filter.Categories = []string{cat}
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		k, err := urgency.ParseKind(status)
		if err != nil {
			return h.fail(c, clierr.New(clierr.InvalidInput, err.Error()).
				WithDetails(map[string]any{"status": status}))
		}
		opts.Filter.Urgency = []urgency.Kind{k}
	}

	doc, err := h.deps.Tasks.Load(user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	now := h.deps.Clock.Now()
	views := board.Views(board.List(doc.Tasks, opts, now), now)
	h.deps.Log.WithFields(log.Fields{"owner": user.ID, "tasks": len(views)}).Debug("listed tasks")
	return c.JSON(http.StatusOK, tasksResponse{Tasks: views})
}

func (h *handlers) getAlerts(c echo.Context) error {
	return h.alerts(c, func(*alert.Session) {})
}

func (h *handlers) dismissAlert(c echo.Context) error {
	kind, err := alert.ParseKind(c.Param("bucket"))
	if err != nil {
		return h.fail(c, clierr.New(clierr.InvalidBucket, err.Error()).
			WithDetails(map[string]any{"bucket": c.Param("bucket")}))
	}
	return h.alerts(c, func(s *alert.Session) { s.Dismiss(kind) })
}

// alerts resolves the caller's session, applies mutate and responds with
// the session's current buckets.
func (h *handlers) alerts(c echo.Context, mutate func(*alert.Session)) error {
	user, err := h.user(c)
	if err != nil {
		return h.fail(c, err)
	}
	sessionID, err := h.sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}

	doc, err := h.deps.Tasks.Load(user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	now := h.deps.Clock.Now()
	var buckets []output.BucketSummary
	h.sessions.with(user.ID, sessionID, func(s *alert.Session) {
		// A pending count change must reset before the dismissal lands.
		s.Observe(len(doc.Tasks))
		mutate(s)
		buckets = output.SummarizeAlerts(s.Aggregate(doc.Tasks, now))
	})

	h.deps.Log.WithFields(log.Fields{
		"owner":    user.ID,
		"session":  sessionID,
		"sessions": h.sessions.len(),
	}).Debug("served alerts")

	c.Response().Header().Set(HeaderSessionID, sessionID)
	return c.JSON(http.StatusOK, alertsResponse{SessionID: sessionID, Buckets: buckets})
}

// user resolves the caller from the X-User-Email header.
func (h *handlers) user(c echo.Context) (*store.User, error) {
	email := strings.TrimSpace(c.Request().Header.Get(HeaderUserEmail))
	if email == "" {
		return nil, clierr.New(clierr.UserRequired, "missing "+HeaderUserEmail+" header")
	}
	return h.deps.Users.Get(email)
}

// sessionID returns the caller's session id, minting one when absent.
func (h *handlers) sessionID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderSessionID))
	if id == "" {
		return uuid.NewString(), nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", clierr.Newf(clierr.InvalidInput, "invalid %s %q", HeaderSessionID, id).
			WithDetails(map[string]any{"session_id": id})
	}
	return id, nil
}

// fail writes err as a JSON error envelope.
func (h *handlers) fail(c echo.Context, err error) error {
	code := clierr.CodeOf(err)
	msg := err.Error()
	var details map[string]any
	var ce *clierr.Error
	if errors.As(err, &ce) {
		details = ce.Details
	} else {
		code = clierr.InternalError
		h.deps.Log.WithError(err).WithField("path", c.Path()).Error("request failed")
		msg = "internal error"
	}
	return c.JSON(statusOf(code), output.ErrorResponse{Error: msg, Code: code, Details: details})
}

func statusOf(code string) int {
	switch code {
	case clierr.UserRequired:
		return http.StatusUnauthorized
	case clierr.UserNotFound, clierr.TaskNotFound:
		return http.StatusNotFound
	case clierr.InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
