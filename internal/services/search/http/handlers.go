// Package http provides the codesearch endpoint
package http

import (
	stdhttp "net/http"

	"codesift/internal/modkit/httpkit"
	perr "codesift/internal/platform/errors"
	phttp "codesift/internal/platform/net/http"
	"codesift/internal/services/search/domain"
	svc "codesift/internal/services/search/service"
)

// Register mounts the search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Get("/codesearch/", h.codesearch)
	r.Get("/codesearch", h.codesearch)
}

type handlers struct{ svc svc.Service }

// @Summary Faceted code search
// @Tags Search
// @Produce json
// @Param q query string true "Search query"
// @Param p query string false "Page, 0 to 19"
// @Param repo query []string false "Repository filter"
// @Param lan query []string false "Language filter"
// @Param own query []string false "Owner filter"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /api/codesearch/ [get]
func (h *handlers) codesearch(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	in := domain.SearchInput{
		Query:  q.Get("q"),
		Page:   svc.ParsePage(q.Get("p")),
		Repos:  q["repo"],
		Langs:  q["lan"],
		Owners: q["own"],
	}

	res, err := h.svc.Search(r.Context(), in)
	if err != nil {
		status, wire := perr.HTTP(err)
		phttp.JSON(w, status, wire)
		return
	}
	// raw result body, no envelope; this endpoint predates the rest of the API
	phttp.JSON(w, stdhttp.StatusOK, res)
}
