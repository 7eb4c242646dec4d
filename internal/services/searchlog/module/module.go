// Package module provides the searchlog module
package module

import (
	"context"
	"net/http"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	searchdom "codesift/internal/services/search/domain"
	"codesift/internal/services/searchlog/domain"
	"codesift/internal/services/searchlog/repo"
	"codesift/internal/services/searchlog/service"
)

// Ports exposed by the searchlog module
type Ports struct {
	Log domain.ServicePort

	// Recorder adapts the log into the search service's event sink
	Recorder searchdom.RecorderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new searchlog module. Without deps.CH the ports stay
// nil and search analytics are simply off
func New(deps modkit.Deps) *Module {
	m := &Module{deps: deps}
	if deps.CH == nil {
		return m
	}
	svc := service.New(repo.NewCH(deps.CH))
	m.ports = Ports{Log: svc, Recorder: recorderAdapter{svc: svc}}
	return m
}

// recorderAdapter maps search events onto log entries
type recorderAdapter struct{ svc service.Service }

func (a recorderAdapter) Record(ctx context.Context, ev searchdom.SearchEvent) error {
	return a.svc.Record(ctx, domain.Entry{
		Query:      ev.Query,
		Page:       ev.Page,
		Filters:    ev.Filters,
		TotalHits:  ev.TotalHits,
		Cached:     ev.Cached,
		DurationMS: ev.DurationMS,
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return "searchlog" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
