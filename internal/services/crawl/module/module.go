// Package module provides the crawl worker module
package module

import (
	"net/http"
	"time"

	"codesift/internal/adapters/scm"
	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/platform/config"
	"codesift/internal/services/crawl/domain"
	"codesift/internal/services/crawl/service"
	"codesift/internal/services/enqueue/queue"
	reposdom "codesift/internal/services/repos/domain"
)

// Module implements modkit.Module. The crawler exposes no HTTP surface
// and no ports; it only consumes the shared queues
type Module struct {
	deps modkit.Deps
	svc  *service.Svc
}

// New wires the crawl workers around the shared queue set and control
func New(deps modkit.Deps, queues *queue.Set, ctl *queue.Control, idx domain.Indexer, repos reposdom.WriterPort) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(
		queues, ctl,
		scm.NewGit(opts.Root),
		scm.NewSvn(opts.Root),
		idx, repos,
		service.Config{Poll: opts.Poll, Root: opts.Root},
	)
	return &Module{deps: deps, svc: svc}
}

// Service returns the workers for supervision by main
func (m *Module) Service() *service.Svc { return m.svc }

// Name implements modkit.Module
func (m *Module) Name() string { return "crawl" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return struct{}{} }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}

// Options configures the crawl module
type Options struct {
	Poll time.Duration
	Root string
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CRAWL_")
	return Options{
		Poll: cf.MayDuration("POLL", 500*time.Millisecond),
		Root: cf.MayString("ROOT", "./repo"),
	}
}
