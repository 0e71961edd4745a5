// Package http exposes the JSON API: dashboard and calendar projections plus
// CRUD for income streams, expense schedules and transactions.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PixelForgeIT-GH/income-hue/internal/cache"
	"github.com/PixelForgeIT-GH/income-hue/internal/core"
	applog "github.com/PixelForgeIT-GH/income-hue/internal/log"
	"github.com/PixelForgeIT-GH/income-hue/internal/services"
)

type Server struct {
	http.Server
	streams     *services.StreamService
	reports     *services.ReportService
	rateLimiter *rateLimiter

	// Projection caches, purged on every write.
	summaryCache  *cache.LRUCache[core.MonthSummary]
	calendarCache *cache.LRUCache[[]core.Payday]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// Options tunes the projection caches.
type Options struct {
	CacheSize          int
	CacheTTL           time.Duration
	CacheCleanInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		CacheSize:          64,
		CacheTTL:           5 * time.Minute,
		CacheCleanInterval: time.Minute,
	}
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, streams *services.StreamService, reports *services.ReportService, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		streams:          streams,
		reports:          reports,
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.NewLRUCache[core.MonthSummary](opts.CacheSize, opts.CacheTTL),
		calendarCache:    cache.NewLRUCache[[]core.Payday](opts.CacheSize, opts.CacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup(opts.CacheCleanInterval)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("/api/calendar", s.withMiddleware(s.handleCalendar))
	mux.HandleFunc("/api/streams", s.withMiddleware(s.handleStreams))
	mux.HandleFunc("/api/streams/next", s.withMiddleware(s.handleNextPays))
	mux.HandleFunc("/api/expenses", s.withMiddleware(s.handleExpenses))
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))

	return s
}

func (s *Server) startCacheCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			summaries := s.summaryCache.CleanExpired()
			calendars := s.calendarCache.CleanExpired()
			if summaries > 0 || calendars > 0 {
				slog.Debug("Cache cleanup completed",
					"summary_entries_removed", summaries,
					"calendar_entries_removed", calendars)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines before the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		if isWrite(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) summaryKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// invalidateProjections drops every cached projection. Any write can move
// occurrences across arbitrary months, so purging beats bookkeeping.
func (s *Server) invalidateProjections() {
	s.summaryCache.Purge()
	s.calendarCache.Purge()
}
