// Package http serves the signed repository management API. The wire
// format is a flat {success, message} envelope kept stable for the
// signing clients already out there, so these handlers bypass the usual
// response envelope.
package http

import (
	stdhttp "net/http"

	"codesift/internal/modkit/httpkit"
	perr "codesift/internal/platform/errors"
	"codesift/internal/platform/logger"
	phttp "codesift/internal/platform/net/http"
	enqdom "codesift/internal/services/enqueue/domain"
	reposdom "codesift/internal/services/repos/domain"

	apikeysdom "codesift/internal/services/apikeys/domain"
	apikeyssvc "codesift/internal/services/apikeys/service"
)

// Config gates the whole surface
type Config struct {
	// Enabled turns the repo API on at all
	Enabled bool
	// RequireAuth demands a valid pub/sig pair on every call
	RequireAuth bool
}

// Deps are the handler collaborators
type Deps struct {
	Repos     reposdom.ServicePort
	Control   enqdom.ControlPort
	Validator apikeysdom.ValidatorPort
	Cfg       Config
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type repoListResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Repos   []reposdom.RepoDescriptor `json:"repoResultList"`
}

type handlers struct {
	deps Deps
}

// Register mounts the repo API routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	for path, fn := range map[string]phttp.Handler{
		"/add/":     h.add,
		"/add":      h.add,
		"/delete/":  h.del,
		"/delete":   h.del,
		"/list/":    h.list,
		"/list":     h.list,
		"/reindex/": h.reindex,
		"/reindex":  h.reindex,
	} {
		r.Get(path, fn)
	}
}

func respond(w stdhttp.ResponseWriter, success bool, message string) {
	phttp.JSON(w, stdhttp.StatusOK, apiResponse{Success: success, Message: message})
}

// gate runs the shared preconditions: API switch, required parameters,
// then the signature over the endpoint's canonical string. It reports
// false after writing the failure envelope
func (h *handlers) gate(w stdhttp.ResponseWriter, r *stdhttp.Request, required []string, canonical func() string) bool {
	if !h.deps.Cfg.Enabled {
		respond(w, false, "API not enabled")
		return false
	}
	q := r.URL.Query()
	if h.deps.Cfg.RequireAuth {
		required = append([]string{"pub", "sig"}, required...)
	}
	for _, name := range required {
		if q.Get(name) == "" {
			respond(w, false, name+" is a required parameter")
			return false
		}
	}
	if h.deps.Cfg.RequireAuth {
		if !h.deps.Validator.ValidateRequest(r.Context(), q.Get("pub"), q.Get("sig"), canonical()) {
			respond(w, false, "invalid signed url")
			return false
		}
	}
	return true
}

// @Summary Add a repository
// @Tags RepoAPI
// @Produce json
// @Param reponame query string true "Unique repository name"
// @Param repourl query string true "Clone URL"
// @Success 200 {object} apiResponse "envelope"
// @Router /api/repo/add/ [get]
func (h *handlers) add(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	ok := h.gate(w, r, []string{"reponame", "repourl"}, func() string {
		return apikeyssvc.CanonicalAdd(
			q.Get("pub"), q.Get("reponame"), q.Get("repourl"), q.Get("repotype"),
			q.Get("repousername"), q.Get("repopassword"), q.Get("reposource"), q.Get("repobranch"),
		)
	})
	if !ok {
		return
	}

	d := reposdom.RepoDescriptor{
		Name:     q.Get("reponame"),
		SCM:      q.Get("repotype"),
		URL:      q.Get("repourl"),
		Username: q.Get("repousername"),
		Password: q.Get("repopassword"),
		Source:   q.Get("reposource"),
		Branch:   q.Get("repobranch"),
	}
	if err := h.deps.Repos.Create(r.Context(), d); err != nil {
		if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
			respond(w, false, "repository name already exists")
			return
		}
		logger.C(r.Context()).Error().Err(err).Str("repo", d.Name).Msg("repo add failed")
		respond(w, false, "failed to add repository")
		return
	}
	respond(w, true, "added repository successfully")
}

// @Summary Queue a repository for deletion
// @Tags RepoAPI
// @Produce json
// @Param reponame query string true "Repository name"
// @Success 200 {object} apiResponse "envelope"
// @Router /api/repo/delete/ [get]
func (h *handlers) del(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	ok := h.gate(w, r, []string{"reponame"}, func() string {
		return apikeyssvc.CanonicalDelete(q.Get("pub"), q.Get("reponame"))
	})
	if !ok {
		return
	}

	d, err := h.deps.Repos.ByName(r.Context(), q.Get("reponame"))
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("repo lookup failed")
		respond(w, false, "failed to delete repository")
		return
	}
	if d == nil {
		respond(w, false, "repository already deleted")
		return
	}
	h.deps.Control.EnqueueDelete(*d)
	respond(w, true, "repository queued for deletion")
}

// @Summary List repositories
// @Tags RepoAPI
// @Produce json
// @Success 200 {object} repoListResponse "envelope with repositories"
// @Router /api/repo/list/ [get]
func (h *handlers) list(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	ok := h.gate(w, r, nil, func() string {
		return apikeyssvc.CanonicalList(q.Get("pub"))
	})
	if !ok {
		return
	}

	repos, err := h.deps.Repos.All(r.Context())
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("repo list failed")
		respond(w, false, "failed to list repositories")
		return
	}
	phttp.JSON(w, stdhttp.StatusOK, repoListResponse{Success: true, Repos: repos})
}

// @Summary Force a full reindex
// @Tags RepoAPI
// @Produce json
// @Success 200 {object} apiResponse "envelope"
// @Router /api/repo/reindex/ [get]
func (h *handlers) reindex(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	ok := h.gate(w, r, nil, func() string {
		return apikeyssvc.CanonicalList(q.Get("pub"))
	})
	if !ok {
		return
	}

	if !h.deps.Control.RebuildAll(r.Context()) {
		respond(w, false, "reindex failed")
		return
	}
	respond(w, true, "reindex forced")
}
