// Package api composes the HTTP surface: public search, the signed
// repository API, the admin control plane and the meta probes
package api

import (
	"time"

	"codesift/internal/platform/config"
	"codesift/internal/platform/logger"
	phttp "codesift/internal/platform/net/http"
	"codesift/internal/platform/store"

	"codesift/internal/modkit"
	"codesift/internal/modkit/httpkit"
	"codesift/internal/modkit/module"
	"codesift/internal/modkit/swaggerkit"

	"codesift/internal/adapters/index"
	adminhttp "codesift/internal/services/api/admin/http"
	adminmod "codesift/internal/services/api/admin/module"
	metamod "codesift/internal/services/api/meta/module"
	repoapimod "codesift/internal/services/api/repoapi/module"
	apikeysmod "codesift/internal/services/apikeys/module"
	crawlmod "codesift/internal/services/crawl/module"
	crawlsvc "codesift/internal/services/crawl/service"
	enqmod "codesift/internal/services/enqueue/module"
	enqsvc "codesift/internal/services/enqueue/service"
	reposmod "codesift/internal/services/repos/module"
	searchmod "codesift/internal/services/search/module"
	searchsvc "codesift/internal/services/search/service"
	searchlogmod "codesift/internal/services/searchlog/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Index          *index.Engine
	EnableSwagger  bool
	EnableProfiler bool
}

// Runtime hands the background services back to main for supervision
type Runtime struct {
	Scheduler *enqsvc.Service
	Crawler   *crawlsvc.Svc
	Cache     *searchsvc.ResultCache
}

// Mount mounts the whole API onto the given router and returns the
// background runtime
func Mount(r phttp.Router, opt Options) Runtime {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// ports-only modules first, everything downstream pulls from them
	repos := reposmod.New(deps)
	reposPorts := module.MustPortsOf[reposmod.Ports](repos)

	apikeys := apikeysmod.New(deps)
	apikeysPorts := module.MustPortsOf[apikeysmod.Ports](apikeys)

	searchlog := searchlogmod.New(deps)
	searchlogPorts := module.MustPortsOf[searchlogmod.Ports](searchlog)

	// scheduler owns the shared queue set and pause control
	enqueue := enqmod.New(deps, reposPorts.Reader, opt.Index)
	enqueuePorts := module.MustPortsOf[enqmod.Ports](enqueue)

	crawl := crawlmod.New(deps, enqueuePorts.Queues, enqueue.Control(), opt.Index, reposPorts.Writer)

	search := searchmod.New(deps, opt.Index, searchlogPorts.Recorder)

	repoapi := repoapimod.New(deps, reposPorts.Service, enqueuePorts.Control, apikeysPorts.Validator)

	admin := adminmod.New(deps, adminhttp.Deps{
		Repos:     reposPorts.Service,
		Control:   enqueuePorts.Control,
		Keys:      apikeysPorts.Manager,
		Index:     opt.Index,
		SearchLog: searchlogPorts.Log,
		StartedAt: time.Now(),
	})

	meta := metamod.New(deps, opt.Index.TotalDocuments)

	mods := []module.Module{
		repos,
		apikeys,
		searchlog,
		enqueue,
		crawl,
		search,
		repoapi,
		admin,
		meta,
	}

	// the search and repo API paths predate versioned mounting, so the
	// common stack goes on the root router and modules mount their own
	// prefixes directly
	r.Use(httpkit.CommonStack()...)
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}

	return Runtime{
		Scheduler: enqueue.Service(),
		Crawler:   crawl.Service(),
		Cache:     search.Cache(),
	}
}
