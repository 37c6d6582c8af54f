package domain

import "github.com/google/uuid"

// SystemNodeType identifies the structurally fixed node variants. It is a
// closed set: classification, emission aliasing, deletion protection and
// validation all switch on it exhaustively.
type SystemNodeType string

const (
	// SystemTopicStart is the entry node of a non-root topic.
	SystemTopicStart SystemNodeType = "TopicStart"
	// SystemTopicEnd is the explicit end node of a topic.
	SystemTopicEnd SystemNodeType = "TopicEnd"
	// SystemNewInstrument is the entry node of a root topic (instrument creation).
	SystemNewInstrument SystemNodeType = "NewInstrument"
	// SystemInstrumentEnd is the terminal node of the whole instrument.
	SystemInstrumentEnd SystemNodeType = "InstrumentEnd"
	// SystemFork is a routing-only fan-out node. It carries no message
	// semantics and never appears in emitted diagrams.
	SystemFork SystemNodeType = "Fork"
)

// TopicEndKind marks an ordinary state as an end-of-topic junction without
// making the state itself graph-terminal.
type TopicEndKind string

const (
	// TopicEndPositive routes the marked state to the topic's End alias.
	TopicEndPositive TopicEndKind = "positive"
	// TopicEndNegative routes the marked state directly to EndInstrument.
	TopicEndNegative TopicEndKind = "negative"
)

// Well-known tokens for the singleton system nodes of a topic. Forks are not
// singletons and use generated ids like user states.
const (
	NodeIDTopicStart    = "sys-topic-start"
	NodeIDTopicEnd      = "sys-topic-end"
	NodeIDNewInstrument = "sys-new-instrument"
	NodeIDInstrumentEnd = "sys-instrument-end"
)

// Position is a 2D canvas coordinate. Presentation-only: it never influences
// classification, expansion or emission.
type Position struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// StateNode represents one state in a topic graph.
type StateNode struct {
	// ID is opaque and stable: a generated token for user states, a fixed
	// well-known token for singleton system nodes.
	ID string `json:"id" mapstructure:"id"`

	// Label is required for user states. System nodes may leave it empty.
	Label string `json:"label,omitempty" mapstructure:"label"`

	// Stereotype is an optional PlantUML <<stereotype>> annotation.
	Stereotype string `json:"stereotype,omitempty" mapstructure:"stereotype"`

	Position Position `json:"position" mapstructure:"position"`

	// SystemNode marks structurally fixed nodes the user cannot freely
	// relabel or retype.
	SystemNode     bool           `json:"isSystemNode,omitempty" mapstructure:"isSystemNode"`
	SystemNodeType SystemNodeType `json:"systemNodeType,omitempty" mapstructure:"systemNodeType"`

	// TopicEndKind marks a non-system state as a topic-end junction.
	TopicEndKind TopicEndKind `json:"topicEndKind,omitempty" mapstructure:"topicEndKind"`
}

// NewStateID returns a fresh opaque id for a user state.
func NewStateID() string {
	return uuid.NewString()
}

// NewUserState creates an ordinary (non-system) state with a generated id.
func NewUserState(label string) *StateNode {
	return &StateNode{
		ID:    NewStateID(),
		Label: label,
	}
}

// NewSystemNode creates a system node. Singleton variants get their
// well-known id; forks get a generated one.
func NewSystemNode(typ SystemNodeType) *StateNode {
	id := ""
	switch typ {
	case SystemTopicStart:
		id = NodeIDTopicStart
	case SystemTopicEnd:
		id = NodeIDTopicEnd
	case SystemNewInstrument:
		id = NodeIDNewInstrument
	case SystemInstrumentEnd:
		id = NodeIDInstrumentEnd
	case SystemFork:
		id = NewStateID()
	}
	return &StateNode{
		ID:             id,
		SystemNode:     true,
		SystemNodeType: typ,
	}
}

// IsFork reports whether the node is a routing-only fork.
func (n *StateNode) IsFork() bool {
	return n != nil && n.SystemNodeType == SystemFork
}

// IsStartNode reports whether the node is a topic entry point (TopicStart or
// NewInstrument). Start nodes are never deletable.
func (n *StateNode) IsStartNode() bool {
	if n == nil {
		return false
	}
	return n.SystemNodeType == SystemTopicStart || n.SystemNodeType == SystemNewInstrument
}
