// Package module provides the enqueue module
package module

import (
	"net/http"
	"time"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/platform/config"
	"codesift/internal/services/enqueue/domain"
	"codesift/internal/services/enqueue/queue"
	"codesift/internal/services/enqueue/service"
	reposdom "codesift/internal/services/repos/domain"
)

// Ports exposed by the enqueue module
type Ports struct {
	Control domain.ControlPort
	Queues  *queue.Set
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *service.Service
	ctl   *queue.Control
}

// New constructs the enqueue module around an existing repos reader and
// index purger; the queue set it creates is shared with the crawl workers
func New(deps modkit.Deps, repos reposdom.ReaderPort, purger domain.IndexPurger) *Module {
	opts := FromConfig(deps.Cfg)

	qs := queue.NewSet()
	ctl := queue.NewControl()
	svc := service.New(repos, qs, ctl, purger, service.Config{Interval: opts.Interval})

	m := &Module{deps: deps, svc: svc, ctl: ctl}
	m.ports = Ports{Control: svc, Queues: qs}
	return m
}

// Service returns the scheduler for supervision by main
func (m *Module) Service() *service.Service { return m.svc }

// Control returns the shared pause/run control for the crawl workers
func (m *Module) Control() *queue.Control { return m.ctl }

// Name implements modkit.Module
func (m *Module) Name() string { return "enqueue" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}

// Options configures the enqueue module
type Options struct {
	Interval time.Duration
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_ENQUEUE_")
	return Options{
		Interval: ef.MayDuration("INTERVAL", time.Minute),
	}
}
