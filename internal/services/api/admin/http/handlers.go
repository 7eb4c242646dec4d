// Package http serves the admin control plane: scheduler switches,
// instance stats, repository paging and API key management. These sit
// behind bearer token auth, unlike the signed repo API.
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"codesift/internal/core/version"
	"codesift/internal/modkit/httpkit"
	perr "codesift/internal/platform/errors"
	"codesift/internal/platform/logger"
	phttp "codesift/internal/platform/net/http"
	apikeysdom "codesift/internal/services/apikeys/domain"
	enqdom "codesift/internal/services/enqueue/domain"
	reposdom "codesift/internal/services/repos/domain"
	searchdom "codesift/internal/services/search/domain"
	searchlogdom "codesift/internal/services/searchlog/domain"
)

// repoPageSize is how many descriptors one admin page carries
const repoPageSize = 100

// Deps are the handler collaborators. SearchLog may be nil when no
// analytics store is configured
type Deps struct {
	Repos     reposdom.ServicePort
	Control   enqdom.ControlPort
	Keys      apikeysdom.ManagerPort
	Index     searchdom.IndexPort
	SearchLog searchlogdom.ServicePort
	StartedAt time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the admin routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// the scheduler switches answer with a bare boolean, matching what
	// the admin UI scripts already consume
	r.Post("/rebuild/", h.rebuild)
	r.Post("/forcequeue/", h.forcequeue)
	r.Post("/togglepause/", h.togglepause)

	httpkit.Get(r, "/stats/", h.stats)
	httpkit.Get(r, "/repos/", h.repos)
	httpkit.PostJSON[AddRepoInput](r, "/repos/add/", h.addRepo)
	httpkit.PostJSON[DeleteRepoInput](r, "/repos/delete/", h.deleteRepo)
	httpkit.Post(r, "/apikeys/", h.createKey)
	httpkit.Get(r, "/apikeys/", h.listKeys)
	r.Delete("/apikeys/", h.deleteKey)
}

// @Summary Purge the index and force a full re-crawl
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {boolean} bool "whether the rebuild started"
// @Router /admin/rebuild/ [post]
func (h *handlers) rebuild(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.JSON(w, stdhttp.StatusOK, h.deps.Control.RebuildAll(r.Context()))
}

// @Summary Run one enqueue pass immediately
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {boolean} bool "whether the pass ran"
// @Router /admin/forcequeue/ [post]
func (h *handlers) forcequeue(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.JSON(w, stdhttp.StatusOK, h.deps.Control.ForceEnqueue(r.Context()))
}

// @Summary Toggle background processing
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {boolean} bool "the new pause state"
// @Router /admin/togglepause/ [post]
func (h *handlers) togglepause(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.JSON(w, stdhttp.StatusOK, h.deps.Control.TogglePause())
}

// StatsResponse is the instance snapshot
type StatsResponse struct {
	RepoCount       int               `json:"repoCount"`
	DocumentCount   int               `json:"documentCount"`
	SearchCount     uint64            `json:"searchCount"`
	DeleteQueueSize int               `json:"deleteQueueSize"`
	Paused          bool              `json:"paused"`
	UptimeSeconds   int64             `json:"uptimeSeconds"`
	Build           version.BuildInfo `json:"build"`
}

// @Summary Instance statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} StatsResponse "ok"
// @Router /admin/stats/ [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	ctx := r.Context()

	repoCount, err := h.deps.Repos.Count(ctx)
	if err != nil {
		return nil, err
	}
	docCount, err := h.deps.Index.TotalDocuments(ctx)
	if err != nil {
		return nil, err
	}
	var searches uint64
	if h.deps.SearchLog != nil {
		if searches, err = h.deps.SearchLog.SearchCount(ctx); err != nil {
			// stats should not fail because analytics are down
			logger.C(ctx).Warn().Err(err).Msg("search count unavailable")
			searches = 0
		}
	}

	return StatsResponse{
		RepoCount:       repoCount,
		DocumentCount:   docCount,
		SearchCount:     searches,
		DeleteQueueSize: h.deps.Control.DeleteQueueSize(),
		Paused:          h.deps.Control.Paused(),
		UptimeSeconds:   int64(time.Since(h.deps.StartedAt) / time.Second),
		Build:           version.Info(),
	}, nil
}

// RepoPageResponse is one page of descriptors
type RepoPageResponse struct {
	Repos  []reposdom.RepoDescriptor `json:"repos"`
	Offset int                       `json:"offset"`
}

// @Summary Page through repositories, optionally filtered
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Page number, 100 per page"
// @Param q query string false "Name or URL filter"
// @Success 200 {object} RepoPageResponse "ok"
// @Router /admin/repos/ [get]
func (h *handlers) repos(r *stdhttp.Request) (any, error) {
	ctx := r.Context()
	q := r.URL.Query()

	if text := q.Get("q"); text != "" {
		repos, err := h.deps.Repos.Search(ctx, text)
		if err != nil {
			return nil, err
		}
		return RepoPageResponse{Repos: repos}, nil
	}

	// a bad offset falls back to the first page rather than erroring
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	repos, err := h.deps.Repos.Paged(ctx, offset*repoPageSize, repoPageSize)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 && offset > 0 {
		offset = 0
		if repos, err = h.deps.Repos.Paged(ctx, 0, repoPageSize); err != nil {
			return nil, err
		}
	}
	return RepoPageResponse{Repos: repos, Offset: offset}, nil
}

// AddRepoInput is the admin form for tracking a new repository
type AddRepoInput struct {
	Name     string `json:"name" validate:"required,min=1,max=200" example:"codesift"`
	SCM      string `json:"scm,omitempty" validate:"omitempty,max=20" example:"git"`
	URL      string `json:"url" validate:"required,min=1,max=2000" example:"https://github.com/example/codesift.git"`
	Username string `json:"username,omitempty" validate:"omitempty,max=200"`
	Password string `json:"password,omitempty" validate:"omitempty,max=200"`
	Source   string `json:"source,omitempty" validate:"omitempty,max=2000"`
	Branch   string `json:"branch,omitempty" validate:"omitempty,max=200" example:"master"`
}

// DeleteRepoInput names the repository to schedule for removal
type DeleteRepoInput struct {
	Name string `json:"name" validate:"required,min=1,max=200" example:"codesift"`
}

// @Summary Track a new repository
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body AddRepoInput true "repository descriptor"
// @Success 200 {boolean} bool "added"
// @Router /admin/repos/add/ [post]
func (h *handlers) addRepo(r *stdhttp.Request, in AddRepoInput) (any, error) {
	err := h.deps.Repos.Create(r.Context(), reposdom.RepoDescriptor{
		Name:     in.Name,
		SCM:      in.SCM,
		URL:      in.URL,
		Username: in.Username,
		Password: in.Password,
		Source:   in.Source,
		Branch:   in.Branch,
	})
	if err != nil {
		return nil, err
	}
	return true, nil
}

// @Summary Schedule a repository for removal
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body DeleteRepoInput true "repository name"
// @Success 200 {boolean} bool "whether the deletion was queued"
// @Router /admin/repos/delete/ [post]
func (h *handlers) deleteRepo(r *stdhttp.Request, in DeleteRepoInput) (any, error) {
	d, err := h.deps.Repos.ByName(r.Context(), in.Name)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return false, nil
	}
	return h.deps.Control.EnqueueDelete(*d), nil
}

// @Summary Issue a new API key pair
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} apikeysdom.APIKey "the full pair, private key shown once"
// @Router /admin/apikeys/ [post]
func (h *handlers) createKey(r *stdhttp.Request) (any, error) {
	return h.deps.Keys.CreateKey(r.Context())
}

// @Summary List issued API keys
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} apikeysdom.APIKey "ok"
// @Router /admin/apikeys/ [get]
func (h *handlers) listKeys(r *stdhttp.Request) (any, error) {
	return h.deps.Keys.AllKeys(r.Context())
}

// @Summary Revoke an API key
// @Tags Admin
// @Security BearerAuth
// @Param pub query string true "Public key to revoke"
// @Success 200 {boolean} bool "revoked"
// @Router /admin/apikeys/ [delete]
func (h *handlers) deleteKey(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	pub := r.URL.Query().Get("pub")
	if pub == "" {
		status, wire := perr.HTTP(perr.InvalidArgf("pub is a required parameter"))
		phttp.JSON(w, status, wire)
		return
	}
	if err := h.deps.Keys.DeleteKey(r.Context(), pub); err != nil {
		status, wire := perr.HTTP(err)
		phttp.JSON(w, status, wire)
		return
	}
	phttp.JSON(w, stdhttp.StatusOK, true)
}
