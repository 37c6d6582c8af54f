// Package http exposes the builder over a JSON API: project storage,
// rendered diagrams, validation reports and export bundles.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/statuml/statuml/internal/exporter"
	"github.com/statuml/statuml/internal/presentation/puml"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/domain"
	"github.com/statuml/statuml/pkg/ports"
)

// Server routes API requests to the project store and the rendering
// pipeline. Projects are persisted as snapshots, so every read goes through
// the same decode path as files on disk.
type Server struct {
	store  ports.ProjectStore
	fields *validator.FieldConfig
	logger *slog.Logger

	registry       *prometheus.Registry
	pumlRenders    *prometheus.CounterVec
	validationRuns prometheus.Counter
}

// NewHandler creates the HTTP handler. fields may be nil to skip vocabulary
// checks during validation.
func NewHandler(projectStore ports.ProjectStore, fields *validator.FieldConfig, logger *slog.Logger) http.Handler {
	registry := prometheus.NewRegistry()

	s := &Server{
		store:    projectStore,
		fields:   fields,
		logger:   logger,
		registry: registry,
		pumlRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statuml_puml_renders_total",
				Help: "Total number of PlantUML renders served",
			},
			[]string{"scope"},
		),
		validationRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "statuml_validation_runs_total",
				Help: "Total number of validation runs served",
			},
		),
	}
	registry.MustRegister(s.pumlRenders, s.validationRuns)

	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.listProjects)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Put("/", s.putProject)
			r.Get("/", s.getProject)
			r.Delete("/", s.deleteProject)
			r.Get("/puml", s.getCompletePuml)
			r.Get("/topics/{topicID}/puml", s.getTopicPuml)
			r.Get("/validation", s.getValidation)
			r.Get("/bundle", s.getBundle)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"projects": ids})
}

func (s *Server) putProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var body bytes.Buffer
	if _, err := body.ReadFrom(r.Body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return
	}

	// Decode rather than store raw bytes: a snapshot that cannot decode is
	// rejected here instead of poisoning later reads.
	p, err := store.Decode(body.Bytes())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.Save(r.Context(), projectID, p); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("project saved", "project_id", projectID, "topics", len(p.Topics))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	data, err := store.Encode(p)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if err := s.store.Delete(r.Context(), projectID); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getTopicPuml(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	topicID := chi.URLParam(r, "topicID")
	text, ok := puml.GenerateTopic(p, topicID)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("topic %q: %w", topicID, domain.ErrTopicNotFound))
		return
	}

	s.pumlRenders.WithLabelValues("topic").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) getCompletePuml(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	text, ok := puml.GenerateComplete(p)
	if !ok {
		s.writeError(w, http.StatusConflict, domain.ErrNoRootTopic)
		return
	}

	s.pumlRenders.WithLabelValues("complete").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) getValidation(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	issues := validator.Validate(p, s.fields)
	s.validationRuns.Inc()
	if issues == nil {
		issues = []validator.Issue{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"issues":    issues,
		"hasErrors": validator.HasErrors(issues),
	})
}

func (s *Server) getBundle(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	p, ok := s.loadProject(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteBundle(&buf, p, s.fields); err != nil {
		if errors.Is(err, exporter.ErrValidationFailed) {
			s.writeError(w, http.StatusConflict, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", projectID+".zip"))
	_, _ = w.Write(buf.Bytes())
}

// -- Helpers --

func (s *Server) loadProject(w http.ResponseWriter, r *http.Request) (*domain.Project, bool) {
	projectID := chi.URLParam(r, "projectID")
	p, err := s.store.Load(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			s.writeError(w, http.StatusNotFound, err)
		} else {
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return nil, false
	}
	return p, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
