package domain

import "github.com/google/uuid"

// TransitionKind is the derived semantic classification of a transition. It is
// a pure function of the endpoint nodes' system types (see Classify) and is
// never independently settable.
type TransitionKind string

const (
	KindNormal          TransitionKind = "normal"
	KindStartTopic      TransitionKind = "startTopic"
	KindStartInstrument TransitionKind = "startInstrument"
	KindEndTopic        TransitionKind = "endTopic"
	KindEndInstrument   TransitionKind = "endInstrument"
)

// RoutingHints carries presentation-only edge routing metadata from the
// editing surface. Irrelevant to emission semantics.
type RoutingHints struct {
	FromSide    string  `json:"fromSide,omitempty" mapstructure:"fromSide"`
	ToSide      string  `json:"toSide,omitempty" mapstructure:"toSide"`
	CurveOffset float64 `json:"curveOffset,omitempty" mapstructure:"curveOffset"`
	Teleport    bool    `json:"teleport,omitempty" mapstructure:"teleport"`
}

// Transition is an edge between two StateNodes of the same topic.
//
// Kind and RoutingOnly are a denormalized cache of Classify over the current
// endpoints. Reconnect is the only place they are written; snapshot loading
// re-derives them as well, so a hand-edited snapshot cannot smuggle in a stale
// classification.
type Transition struct {
	ID   string `json:"id" mapstructure:"id"`
	From string `json:"from" mapstructure:"from"`
	To   string `json:"to" mapstructure:"to"`

	Kind        TransitionKind `json:"kind,omitempty" mapstructure:"kind"`
	RoutingOnly bool           `json:"isRoutingOnly,omitempty" mapstructure:"isRoutingOnly"`

	// MessageType and FlowType are required unless the transition is
	// routing-only or end-classified.
	MessageType string `json:"messageType,omitempty" mapstructure:"messageType"`
	FlowType    string `json:"flowType,omitempty" mapstructure:"flowType"`

	// Optional qualifier overrides. When unset, label emission falls back to
	// the owning Instrument/Topic values (rightward completion).
	Revision   string `json:"revision,omitempty" mapstructure:"revision"`
	Instrument string `json:"instrument,omitempty" mapstructure:"instrument"`
	Topic      string `json:"topic,omitempty" mapstructure:"topic"`

	EndTopicKind TopicEndKind `json:"endTopicKind,omitempty" mapstructure:"endTopicKind"`

	Routing RoutingHints `json:"routing,omitempty" mapstructure:"routing"`
}

// NewTransitionID returns a fresh opaque id for a transition.
func NewTransitionID() string {
	return uuid.NewString()
}

// Classify derives the semantic kind of a transition from its endpoint nodes.
// Source-side checks are evaluated before target-side checks, so an edge from
// NewInstrument straight to TopicEnd classifies as startInstrument, not
// endTopic. Absent endpoints fall back to normal; dangling edges are a
// validation concern, not a classification one.
func Classify(from, to *StateNode) TransitionKind {
	if from == nil || to == nil {
		return KindNormal
	}
	switch {
	case from.SystemNodeType == SystemNewInstrument:
		return KindStartInstrument
	case from.SystemNodeType == SystemTopicStart:
		return KindStartTopic
	case to.SystemNodeType == SystemTopicEnd:
		return KindEndTopic
	case to.SystemNodeType == SystemInstrumentEnd:
		return KindEndInstrument
	default:
		return KindNormal
	}
}

// Reconnect points the transition at new endpoints and re-derives Kind and
// RoutingOnly. It is the single mutation entry point for From/To. A transition
// touching a fork carries no message semantics, so message fields are cleared
// when the edge becomes routing-only.
func (t *Transition) Reconnect(from, to *StateNode) {
	if from != nil {
		t.From = from.ID
	}
	if to != nil {
		t.To = to.ID
	}
	t.Kind = Classify(from, to)
	t.RoutingOnly = from.IsFork() || to.IsFork()
	if t.RoutingOnly {
		t.MessageType = ""
		t.FlowType = ""
	}
}

// Rederive recomputes Kind and RoutingOnly from the transition's current
// endpoint ids. Called at deserialization boundaries so stored values always
// equal the derivation.
func (t *Transition) Rederive(data *TopicData) {
	from := data.State(t.From)
	to := data.State(t.To)
	t.Kind = Classify(from, to)
	t.RoutingOnly = from.IsFork() || to.IsFork()
}
