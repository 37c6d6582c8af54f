package dsl

import (
	"fmt"

	"github.com/statuml/statuml/pkg/domain"
)

// TopicBuilder provides a fluent API for populating one topic.
type TopicBuilder struct {
	topic  *domain.Topic
	states map[string]*domain.StateNode
}

// Label sets the topic display label.
func (t *TopicBuilder) Label(label string) *TopicBuilder {
	t.topic.Label = label
	return t
}

// State adds a user state addressed by its label.
// If a state with that label already exists, it returns the existing builder.
func (t *TopicBuilder) State(label string) *StateBuilder {
	if s, ok := t.states[label]; ok {
		return &StateBuilder{state: s, topic: t}
	}
	s := domain.NewUserState(label)
	t.topic.Data.AddState(s)
	t.states[label] = s
	return &StateBuilder{state: s, topic: t}
}

// Fork adds a fork node addressed by the given key. Forks carry no label of
// their own; the key only exists inside the builder.
func (t *TopicBuilder) Fork(key string) *StateBuilder {
	if s, ok := t.states[key]; ok {
		return &StateBuilder{state: s, topic: t}
	}
	s := domain.NewSystemNode(domain.SystemFork)
	t.topic.Data.AddState(s)
	t.states[key] = s
	return &StateBuilder{state: s, topic: t}
}

// Connect adds a transition between two states addressed by label.
// Use dsl.Start as from to connect the topic entry node. The transition kind
// is derived from the endpoints.
func (t *TopicBuilder) Connect(from, to, messageType, flowType string) *TopicBuilder {
	fromNode := t.resolve(from)
	toNode := t.resolve(to)
	t.topic.Data.Connect(fromNode.ID, toNode.ID, messageType, flowType)
	return t
}

// Route adds a routing-only transition, as used around forks. It carries no
// message fields.
func (t *TopicBuilder) Route(from, to string) *TopicBuilder {
	return t.Connect(from, to, "", "")
}

func (t *TopicBuilder) resolve(label string) *domain.StateNode {
	if label == Start {
		start := t.topic.Data.StartNode()
		if start == nil {
			panic(fmt.Sprintf("dsl: topic %q has no entry node", t.topic.ID))
		}
		return start
	}
	if s, ok := t.states[label]; ok {
		return s
	}
	panic(fmt.Sprintf("dsl: unknown state %q in topic %q", label, t.topic.ID))
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state *domain.StateNode
	topic *TopicBuilder
}

// Stereotype sets the PlantUML stereotype rendered for the state.
func (s *StateBuilder) Stereotype(stereotype string) *StateBuilder {
	s.state.Stereotype = stereotype
	return s
}

// EndsPositive marks the state as a positive topic end.
func (s *StateBuilder) EndsPositive() *StateBuilder {
	s.state.TopicEndKind = domain.TopicEndPositive
	return s
}

// EndsNegative marks the state as a negative topic end.
func (s *StateBuilder) EndsNegative() *StateBuilder {
	s.state.TopicEndKind = domain.TopicEndNegative
	return s
}

// At sets the canvas position carried through snapshots.
func (s *StateBuilder) At(x, y float64) *StateBuilder {
	s.state.Position = domain.Position{X: x, Y: y}
	return s
}

// Node returns the underlying domain node.
// This is primarily used by the builder itself, but exposed for advanced usage.
func (s *StateBuilder) Node() *domain.StateNode {
	return s.state
}
