// Package module provides the repos module
package module

import (
	"net/http"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/modkit/repokit"
	"codesift/internal/services/repos/domain"
	"codesift/internal/services/repos/repo"
	"codesift/internal/services/repos/service"
)

// Ports exposed by the repos module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort

	// Service is the combined surface for callers that need both sides
	Service domain.ServicePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new repos module
func New(deps modkit.Deps) *Module {
	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder)

	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc, Writer: svc, Service: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "repos" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
