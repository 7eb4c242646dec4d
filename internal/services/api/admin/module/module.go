// Package module wires the admin control plane using modkit
package module

import (
	"crypto/subtle"
	"net/http"
	"time"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/platform/config"
	perr "codesift/internal/platform/errors"
	"codesift/internal/platform/logger"

	adminhttp "codesift/internal/services/api/admin/http"
)

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	h     adminhttp.Deps
	token string
}

// New constructs the admin module. An empty admin token locks the whole
// surface; it does not disable auth
func New(deps modkit.Deps, h adminhttp.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	if opts.Token == "" {
		logger.Named("admin").Warn().Msg("no admin token configured, admin surface is locked")
	}
	if h.StartedAt.IsZero() {
		h.StartedAt = time.Now()
	}
	return &Module{deps: deps, h: h, token: opts.Token}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "admin" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return struct{}{} }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "/admin" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	port := httpkit.NewPortFunc(m.parseToken)
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		httpkit.Protected(rr, port, func(pr httpkit.Router) {
			adminhttp.Register(pr, m.h)
		})
	})
}

func (m *Module) parseToken(token string) (string, string, error) {
	if m.token == "" {
		return "", "", perr.Unauthorizedf("admin surface is locked")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
		return "", "", perr.Unauthorizedf("invalid admin token")
	}
	return "admin", "", nil
}

// Options configures admin access
type Options struct {
	Token string
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_ADMIN_")
	return Options{
		Token: af.MayString("TOKEN", ""),
	}
}
