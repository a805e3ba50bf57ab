package cmd

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/vtree/appcomponents"
	"github.com/vcrobe/vtree/config"
	"github.com/vcrobe/vtree/console"
	"github.com/vcrobe/vtree/dom"
	"github.com/vcrobe/vtree/events"
	"github.com/vcrobe/vtree/router"
	"github.com/vcrobe/vtree/runtime"
	"github.com/vcrobe/vtree/scheduler"
	"github.com/vcrobe/vtree/ssr"
	"github.com/vcrobe/vtree/ssr/pagecache"
)

const notFoundKey = "404"

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve prerendered pages and a live headless session over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cache *pagecache.Cache
			if opts.cfg.Cache.Enabled {
				c, err := pagecache.Open(opts.cfg.Cache.Path, console.Logger())
				if err != nil {
					return err
				}
				defer c.Close()
				cache = c
			}
			srv, err := newServer(opts.cfg, cache, console.Logger())
			if err != nil {
				return err
			}
			return srv.run(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	_ = opts.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// server serves two things: pages rendered on the server, with an ETag per
// page, and a live session where the application runs in a headless
// document driven by HTTP requests.
type server struct {
	cfg    *config.Config
	site   *appcomponents.App
	routes *router.Table
	pages  *ssr.PageRenderer
	cache  *pagecache.Cache
	live   *liveSession
	logger *zap.Logger
}

// liveSession is a mounted application. mu guards the document, which the
// frame loop and the request handlers share.
type liveSession struct {
	mu     sync.Mutex
	doc    *dom.Document
	app    *appcomponents.App
	root   *runtime.Root
	sched  *scheduler.Scheduler
	unbind func()
}

func newServer(cfg *config.Config, cache *pagecache.Cache, logger *zap.Logger) (*server, error) {
	site := appcomponents.New(nil)
	s := &server{
		cfg:    cfg,
		site:   site,
		routes: site.Routes(),
		pages:  ssr.NewPageRenderer(cfg.Render.Doctype, logger),
		cache:  cache,
		logger: logger.Named("server"),
	}
	live, err := newLiveSession(cfg, logger)
	if err != nil {
		return nil, err
	}
	s.live = live
	return s, nil
}

func newLiveSession(cfg *config.Config, logger *zap.Logger) (*liveSession, error) {
	l := &liveSession{doc: dom.NewDocument(logger)}
	l.sched = scheduler.New(scheduler.WithLocker(&l.mu), scheduler.WithLogger(logger))
	l.app = appcomponents.New(events.NewRegistry(l.doc, l.doc, logger))
	page, err := l.app.Routes().Resolve("/")
	if err != nil {
		return nil, err
	}
	root, err := runtime.RenderToSelector(l.doc, cfg.Render.MountSelector, page,
		runtime.WithLogger(logger),
		runtime.WithScheduler(l.sched),
		runtime.WithRouter(l.app.Routes()),
	)
	if err != nil {
		return nil, err
	}
	l.root = root
	l.unbind = l.app.Bind(root)
	return l, nil
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", s.handleLive)
	mux.HandleFunc("POST /live/click", s.handleLiveClick)
	mux.HandleFunc("POST /live/navigate", s.handleLiveNavigate)
	mux.HandleFunc("GET /", s.handlePage)
	return s.withRequestID(mux)
}

// withRequestID tags each request with a unique id echoed in X-Request-ID.
func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request served",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	// Blueprints are keyed by route pattern and unknown paths share one, so
	// arbitrary paths cannot grow the renderer.
	status, key := http.StatusOK, notFoundKey
	if route, _, err := s.routes.Match(r.URL.Path); err == nil {
		key = route.Path
	} else {
		status = http.StatusNotFound
	}
	node, err := s.routes.Resolve(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	page, stats := s.pages.Render(key, node, s.site.Context())
	if s.cache != nil && status == http.StatusOK {
		entry := pagecache.Entry{Route: r.URL.Path, HTML: page.HTML, ETag: page.ETag, RenderedAt: time.Now()}
		if err := s.cache.Put(entry); err != nil {
			s.logger.Warn("page cache write failed", zap.String("route", r.URL.Path), zap.Error(err))
		}
	}

	w.Header().Set("ETag", page.ETag)
	if match := r.Header.Get("If-None-Match"); status == http.StatusOK && match != "" && etagMatches(match, page.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Serialized-Nodes", strconv.Itoa(stats.Serialized))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page.HTML))
}

func (s *server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.live.doc.Render(w); err != nil {
		s.logger.Warn("live render failed", zap.Error(err))
	}
}

func (s *server) handleLiveClick(w http.ResponseWriter, r *http.Request) {
	selector := r.FormValue("selector")
	if selector == "" {
		http.Error(w, "missing selector", http.StatusBadRequest)
		return
	}
	s.live.mu.Lock()
	defer s.live.mu.Unlock()
	target, err := s.live.doc.Query(selector)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, dom.ErrNoMatch) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	prevented := s.live.doc.Fire("click", &events.NativeEvent{Target: target, Which: 1, Timestamp: float64(time.Now().UnixMilli())})
	if prevented {
		w.Header().Set("X-Default-Prevented", "true")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLiveNavigate(w http.ResponseWriter, r *http.Request) {
	path := r.FormValue("path")
	if path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return
	}
	s.live.mu.Lock()
	defer s.live.mu.Unlock()
	if err := s.live.root.Navigate(path); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// run serves HTTP and drives the frame loop of the live session until ctx
// is done.
func (s *server) run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.handler(),
		ReadTimeout: s.cfg.Server.ReadTimeout,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return s.live.sched.Run(gctx, s.cfg.Scheduler.FrameInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	err := g.Wait()
	s.close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *server) close() {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()
	s.live.unbind()
	s.live.sched.Close()
	if err := s.live.root.Unmount(); err != nil && !errors.Is(err, runtime.ErrNotMounted) {
		s.logger.Warn("unmount failed", zap.Error(err))
	}
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
