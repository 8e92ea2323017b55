package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"outlay/internal/cache"
	"outlay/internal/core"
	"outlay/internal/middleware/ratelimit"
	"outlay/internal/middleware/security"
	"outlay/internal/middleware/trace"
	"outlay/internal/storage"
	appweb "outlay/web"
)

// Options tunes the server's caching and rate limiting.
type Options struct {
	CacheTTL           time.Duration
	CacheMaxEntries    int
	RateLimitPerMinute int
}

// DefaultOptions returns the defaults used when an Options field is zero.
func DefaultOptions() Options {
	return Options{
		CacheTTL:           5 * time.Minute,
		CacheMaxEntries:    200,
		RateLimitPerMinute: 60,
	}
}

type Server struct {
	http.Server
	templates *template.Template
	writer    storage.CostWriter
	reader    storage.CostReader
	limiter   *ratelimit.Limiter

	// Partial data caches keyed by date range; purged on any mutation
	// because a single write can land in arbitrarily many ranges.
	reportCache *cache.LRUCache[[]core.CostRecord]
	chartCache  *cache.LRUCache[map[core.Category]core.Money]
	cacheMgr    *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware, and templates, returning a
// ready-to-run server.
func NewServer(addr string, writer storage.CostWriter, reader storage.CostReader, opts Options) *Server {
	defaults := DefaultOptions()
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaults.CacheTTL
	}
	if opts.CacheMaxEntries <= 0 {
		opts.CacheMaxEntries = defaults.CacheMaxEntries
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = defaults.RateLimitPerMinute
	}

	mux := http.NewServeMux()

	s := &Server{
		writer:      writer,
		reader:      reader,
		limiter:     ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		reportCache: cache.NewLRUCache[[]core.CostRecord](opts.CacheMaxEntries, opts.CacheTTL),
		chartCache:  cache.NewLRUCache[map[core.Category]core.Money](opts.CacheMaxEntries, opts.CacheTTL),
		cacheMgr:    cache.NewManager(),
	}

	s.cacheMgr.Register(s.reportCache)
	s.cacheMgr.Register(s.chartCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	limited := s.limiter.Middleware(trace.ExtractClientIP, nil)

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/costs", limited(http.HandlerFunc(s.handleCreateCost)))
	mux.Handle("/costs/update", limited(http.HandlerFunc(s.handleUpdateCost)))
	mux.Handle("/costs/delete", limited(http.HandlerFunc(s.handleDeleteCost)))
	// UI partials
	mux.HandleFunc("/ui/report", s.handleReport)
	mux.HandleFunc("/ui/chart", s.handleChart)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	traced := trace.NewMiddleware(trace.ExtractClientIP)

	s.Server = http.Server{
		Addr:    addr,
		Handler: headers.Middleware(traced.Middleware(mux)),
	}

	return s
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateRanges drops all cached partial data. Mutations do not know
// which cached ranges they intersect, so everything goes.
func (s *Server) invalidateRanges() {
	s.reportCache.Purge()
	s.chartCache.Purge()
}

func (s *Server) getReport(ctx context.Context, start, end time.Time) ([]core.CostRecord, error) {
	key := rangeKey(start, end)

	if records, found := s.reportCache.Get(key); found {
		slog.DebugContext(ctx, "Report cache hit", "range", key)
		result := make([]core.CostRecord, len(records))
		copy(result, records)
		return result, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	records, err := s.reader.CostsByDateRange(cctx, start, end)
	if err != nil {
		return nil, err
	}

	s.reportCache.Set(key, records)
	slog.DebugContext(ctx, "Report cached", "range", key, "count", len(records))
	return records, nil
}

func (s *Server) getChart(ctx context.Context, start, end time.Time) (map[core.Category]core.Money, error) {
	key := rangeKey(start, end)

	if totals, found := s.chartCache.Get(key); found {
		slog.DebugContext(ctx, "Chart cache hit", "range", key)
		return totals, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	totals, err := s.reader.CostsByCategory(cctx, start, end)
	if err != nil {
		return nil, err
	}

	s.chartCache.Set(key, totals)
	slog.DebugContext(ctx, "Chart cached", "range", key, "categories", len(totals))
	return totals, nil
}
