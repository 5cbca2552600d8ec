package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/sanquote/internal/configstore"
	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/quote"
	"github.com/Simplici0/sanquote/internal/services"
	"github.com/Simplici0/sanquote/internal/store"
)

// configAdmin is the part of the config store the admin routes write to.
type configAdmin interface {
	configstore.Writer
	List(ctx context.Context) ([]configstore.StoredDoc, error)
}

type server struct {
	provider *configstore.Provider
	configs  configAdmin
	quotes   *store.Quotes
	book     *quote.Book
	admin    *adminGuard
	log      *zap.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/services", s.handleServicesList)
	r.Post("/services/{service}/compute", s.handleCompute)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleSessionOpen)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionGet)
			r.Delete("/", s.handleSessionClose)
			r.Patch("/inputs", s.handleSessionPatch)
			r.Put("/overrides/{field}", s.handleOverrideSet)
			r.Delete("/overrides/{field}", s.handleOverrideClear)
			r.Post("/sync", s.handleSessionSync)
			r.Post("/accept", s.handleSessionAccept)
		})
	})

	r.Get("/quotes", s.handleQuotesList)
	r.Get("/quotes/{id}", s.handleQuoteGet)
	r.Get("/quotes/{id}/text", s.handleQuoteText)
	r.Get("/quotes/{id}/export", s.handleQuoteExport)

	r.Route("/admin/configs", func(r chi.Router) {
		r.Use(s.adminOnly)
		r.Get("/", s.handleAdminConfigsList)
		r.Get("/{service}", s.handleAdminConfigGet)
		r.Put("/{service}", s.handleAdminConfigPut)
		r.Post("/{service}/refresh", s.handleAdminConfigRefresh)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// loadConfig resolves a service config. A fallback config is still served;
// the warning is logged and reported alongside the result.
func (s *server) loadConfig(ctx context.Context, id services.ID) (pricing.Config, string) {
	cfg, err := s.provider.Load(ctx, id)
	if err != nil {
		s.log.Warn("serving fallback config", zap.String("service", string(id)), zap.Error(err))
		return cfg, err.Error()
	}
	return cfg, ""
}

// syncSessions reprices every live session of a service after its config
// changed.
func (s *server) syncSessions(ctx context.Context, id services.ID) int {
	sessions := s.book.ForService(id)
	for _, sess := range sessions {
		_ = sess.Sync(ctx)
	}
	return len(sessions)
}
