package dsl

import (
	"github.com/statuml/statuml/pkg/domain"
)

// Start addresses the topic entry node in Connect and Route calls.
const Start = ""

// Builder manages project construction.
type Builder struct {
	instrument domain.Instrument
	topics     []*TopicBuilder
}

// New creates a new project builder for the given instrument.
func New(instrumentType, revision string) *Builder {
	return &Builder{
		instrument: domain.Instrument{Type: instrumentType, Revision: revision},
	}
}

// Label sets the instrument display label.
func (b *Builder) Label(label string) *Builder {
	b.instrument.Label = label
	return b
}

// Topic creates a new topic in the project.
// If the topic already exists, it returns the existing builder.
func (b *Builder) Topic(id string, kind domain.TopicKind) *TopicBuilder {
	for _, tb := range b.topics {
		if tb.topic.ID == id {
			return tb
		}
	}
	tb := &TopicBuilder{
		topic:  domain.NewTopic(id, kind),
		states: make(map[string]*domain.StateNode),
	}
	b.topics = append(b.topics, tb)
	return tb
}

// Build assembles the project.
func (b *Builder) Build() *domain.Project {
	topics := make([]*domain.Topic, 0, len(b.topics))
	for _, tb := range b.topics {
		topics = append(topics, tb.topic)
	}
	return &domain.Project{
		Instrument: b.instrument,
		Topics:     topics,
	}
}
