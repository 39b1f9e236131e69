// Package server exposes ordered tasks and alert buckets over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/twiced-technology-gmbh/duewatch/internal/clock"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
)

// Request headers understood by the API.
const (
	HeaderUserEmail = "X-User-Email"
	HeaderSessionID = "X-Session-ID"
)

const shutdownTimeout = 5 * time.Second

// Users resolves the caller's email to a registered user.
type Users interface {
	Get(email string) (*store.User, error)
}

// Tasks loads an owner's task document.
type Tasks interface {
	Load(ownerID string) (*store.Document, error)
}

// Deps bundles what the handlers need.
type Deps struct {
	Config *config.Config
	Users  Users
	Tasks  Tasks
	Clock  clock.Clock
	Log    *log.Logger
}

// New returns an Echo instance with every route registered.
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	Register(e, deps)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, deps Deps) {
	if deps.Log == nil {
		deps.Log = log.StandardLogger()
	}
	h := &handlers{deps: deps, sessions: newRegistry()}

	e.GET("/api/tasks", h.getTasks)
	e.GET("/api/alerts", h.getAlerts)
	e.POST("/api/alerts/:bucket/dismiss", h.dismissAlert)
	e.GET("/healthz", healthz)
}

// Run serves e on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
