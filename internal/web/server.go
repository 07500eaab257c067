// Package web serves the graphical dashboard and its JSON API.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"sia-analytics/internal/analytics"
	"sia-analytics/internal/experience"
	"sia-analytics/internal/flight"
	"sia-analytics/internal/simulation"
	"sia-analytics/internal/theme"
)

// ShutdownTimeout bounds the graceful drain of in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Analytics is what the dashboard needs from the analytics service.
type Analytics interface {
	Bounds() simulation.Bounds
	SimulateRisk(ctx context.Context, sc simulation.Scenario) (*simulation.Result, error)
	Experience(ctx context.Context, minDistance *float64) (*experience.Summary, error)
	Flight(ctx context.Context) (*flight.Summary, error)
	Overview(ctx context.Context) (*analytics.Overview, error)
	DatasetInfo(ctx context.Context) analytics.DatasetInfo
}

// Handler serves the dashboard pages and the JSON API.
type Handler struct {
	svc   Analytics
	theme theme.Theme
	pages *pageSet
}

// NewRouter wires every route of the dashboard.
func NewRouter(svc Analytics, th theme.Theme, allowedOrigins []string) (http.Handler, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	h := &Handler{svc: svc, theme: th, pages: pages}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Get("/", h.IndexPage)
	r.Get("/flight", h.FlightPage)
	r.Get("/experience", h.ExperiencePage)
	r.Get("/risk", h.RiskPage)
	r.Get("/cloud", h.CloudPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", h.GetOverview)
		r.Get("/flight", h.GetFlight)
		r.Get("/experience", h.GetExperience)
		r.Get("/risk", h.GetRisk)
		r.Get("/risk/bounds", h.GetBounds)
		r.Post("/risk/simulate", h.PostSimulate)
	})

	return r, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Serve runs the HTTP server on ln until ctx is canceled, then drains it.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("Dashboard listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		log.Info().Msg("Shutting down dashboard")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
