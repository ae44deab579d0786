package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aegis-sec/aegis/pkg/domain/model/catalog"
	"github.com/aegis-sec/aegis/pkg/usecase"
	"github.com/aegis-sec/aegis/pkg/utils/logging"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	registry *catalog.Registry
}

type Options func(*Server)

// WithCatalogRegistry overrides the built-in template registry exposed on
// the templates endpoint
func WithCatalogRegistry(registry *catalog.Registry) Options {
	return func(s *Server) {
		s.registry = registry
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		registry: catalog.NewBuiltinRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.listTemplates)

		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", s.createAssessment)
			r.Get("/", s.listAssessments)

			r.Route("/{assessmentID}", func(r chi.Router) {
				r.Get("/", s.getAssessment)
				r.Put("/", s.updateAssessment)
				r.Delete("/", s.deleteAssessment)

				r.Put("/answers", s.putAnswers)
				r.Get("/completion", s.getCompletion)

				r.Post("/runs", s.triggerRun)
				r.Get("/runs", s.listRuns)
				r.Get("/runs/{runID}", s.getRun)
				r.Get("/dashboard", s.getDashboard)

				r.Post("/scenarios", s.createScenario)
				r.Get("/scenarios", s.listScenarios)
			})
		})

		r.Route("/scenarios/{scenarioID}", func(r chi.Router) {
			r.Get("/", s.getScenario)
			r.Put("/", s.updateScenario)
			r.Delete("/", s.deleteScenario)
			r.Get("/progression", s.getProgression)
		})

		r.Route("/controls", func(r chi.Router) {
			r.Get("/", s.listControls)
			r.Put("/{controlID}", s.putControl)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
