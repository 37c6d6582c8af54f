package statuml

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/statuml/statuml/internal/exporter"
	"github.com/statuml/statuml/internal/presentation/puml"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/domain"
)

// Engine is the high-level entry point for the statuml library.
// It holds a loaded project and provides the rendering, validation and
// export pipeline over it.
type Engine struct {
	project *domain.Project
	fields  *validator.FieldConfig
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithProject injects an in-memory project, bypassing the snapshot file.
func WithProject(p *domain.Project) Option {
	return func(e *Engine) {
		e.project = p
	}
}

// WithFieldConfig sets the field vocabulary used for validation advisories.
func WithFieldConfig(cfg *validator.FieldConfig) Option {
	return func(e *Engine) {
		e.fields = cfg
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine from the snapshot file at path.
// If WithProject is provided, path can be empty and no file is read.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply options first to check whether a project was injected
	for _, opt := range opts {
		opt(eng)
	}

	if eng.project == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no project is provided")
		}

		p, err := store.Load(path)
		if err != nil {
			return nil, err
		}
		eng.project = p
		eng.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	} else if path != "" {
		eng.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("project", eng.Name)
	}

	return eng, nil
}

// Project returns the loaded project.
func (e *Engine) Project() *domain.Project {
	return e.project
}

// TopicPuml renders the PlantUML diagram of a single topic.
func (e *Engine) TopicPuml(topicID string) (string, error) {
	text, ok := puml.GenerateTopic(e.project, topicID)
	if !ok {
		return "", fmt.Errorf("topic %q: %w", topicID, domain.ErrTopicNotFound)
	}
	e.logger.Debug("rendered topic diagram", "topic_id", topicID)
	return text, nil
}

// CompletePuml renders the aggregate diagram covering every topic.
func (e *Engine) CompletePuml() (string, error) {
	text, ok := puml.GenerateComplete(e.project)
	if !ok {
		return "", domain.ErrNoRootTopic
	}
	e.logger.Debug("rendered aggregate diagram", "topics", len(e.project.Topics))
	return text, nil
}

// Validate runs every check over the project.
func (e *Engine) Validate() []validator.Issue {
	return validator.Validate(e.project, e.fields)
}

// WriteBundle writes the export zip to w. It refuses projects that carry
// error-level validation issues; see exporter.ErrValidationFailed.
func (e *Engine) WriteBundle(w io.Writer) error {
	return exporter.WriteBundle(w, e.project, e.fields)
}

// Save persists the project snapshot to the given path.
func (e *Engine) Save(path string) error {
	return store.Save(path, e.project)
}
