// Package module provides the apikeys module
package module

import (
	"net/http"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/services/apikeys/domain"
	"codesift/internal/services/apikeys/repo"
	"codesift/internal/services/apikeys/service"
)

// Ports exposed by the apikeys module
type Ports struct {
	Validator domain.ValidatorPort
	Manager   domain.ManagerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new apikeys module
func New(deps modkit.Deps) *Module {
	binder := repo.NewPG()
	svc := service.New(deps.PG, binder)

	m := &Module{deps: deps}
	m.ports = Ports{Validator: svc, Manager: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "apikeys" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
