// Package module wires search into the API using modkit
package module

import (
	"net/http"
	"time"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/platform/config"
	"codesift/internal/services/search/domain"
	searchhttp "codesift/internal/services/search/http"
	"codesift/internal/services/search/service"
)

// Ports exposed by the search module
type Ports struct {
	Search domain.ServicePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *service.Svc
	cache *service.ResultCache
}

// New constructs the search module around the index engine and an optional
// event recorder
func New(deps modkit.Deps, index domain.IndexPort, recorder domain.RecorderPort) *Module {
	opts := FromConfig(deps.Cfg)

	cache := service.NewResultCache(opts.CacheTTL, opts.CacheMaxEntries)
	svc := service.New(index, cache, recorder)

	m := &Module{deps: deps, svc: svc, cache: cache}
	m.ports = Ports{Search: svc}
	return m
}

// Cache returns the result cache so main can supervise its sweeper
func (m *Module) Cache() *service.ResultCache { return m.cache }

// Name implements modkit.Module
func (m *Module) Name() string { return "search" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "/api" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		searchhttp.Register(rr, m.svc)
	})
}

// Options configures the search module
type Options struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SEARCH_")
	return Options{
		CacheTTL:        sf.MayDuration("CACHE_TTL", service.DefaultCacheTTL),
		CacheMaxEntries: sf.MayInt("CACHE_MAX_ENTRIES", 10000),
	}
}
