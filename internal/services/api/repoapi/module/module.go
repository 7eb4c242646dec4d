// Package module wires the signed repository API using modkit
package module

import (
	"net/http"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/platform/config"
	repoapihttp "codesift/internal/services/api/repoapi/http"
	apikeysdom "codesift/internal/services/apikeys/domain"
	enqdom "codesift/internal/services/enqueue/domain"
	reposdom "codesift/internal/services/repos/domain"
)

// Module implements modkit.Module
type Module struct {
	deps modkit.Deps
	h    repoapihttp.Deps
}

// New constructs the repo API module over the repos service, the enqueue
// control surface and the signature validator
func New(deps modkit.Deps, repos reposdom.ServicePort, ctl enqdom.ControlPort, validator apikeysdom.ValidatorPort) *Module {
	opts := FromConfig(deps.Cfg)
	return &Module{
		deps: deps,
		h: repoapihttp.Deps{
			Repos:     repos,
			Control:   ctl,
			Validator: validator,
			Cfg: repoapihttp.Config{
				Enabled:     opts.Enabled,
				RequireAuth: opts.RequireAuth,
			},
		},
	}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "repoapi" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return struct{}{} }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "/api/repo" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		repoapihttp.Register(rr, m.h)
	})
}

// Options configures the repo API switches
type Options struct {
	Enabled     bool
	RequireAuth bool
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_REPOAPI_")
	return Options{
		Enabled:     af.MayBool("ENABLED", true),
		RequireAuth: af.MayBool("AUTH", true),
	}
}
