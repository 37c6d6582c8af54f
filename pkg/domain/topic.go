package domain

// TopicKind distinguishes instrument-entry topics from sub-flow topics.
type TopicKind string

const (
	// TopicRoot topics model instrument entry; they start at a NewInstrument node.
	TopicRoot TopicKind = "root"
	// TopicNormal topics model sub-flows; they start at a TopicStart node.
	TopicNormal TopicKind = "normal"
)

// Topic is one message-flow state machine within an instrument.
type Topic struct {
	// ID is an identifier unique within the project.
	ID    string    `json:"id" mapstructure:"id"`
	Label string    `json:"label,omitempty" mapstructure:"label"`
	Kind  TopicKind `json:"kind" mapstructure:"kind"`

	Data TopicData `json:"data" mapstructure:"data"`
}

// TopicData bundles the graph owned by a topic.
type TopicData struct {
	States      []*StateNode  `json:"states" mapstructure:"states"`
	Transitions []*Transition `json:"transitions" mapstructure:"transitions"`
}

// NewTopic creates a topic with its mandatory start node: NewInstrument for
// root topics, TopicStart otherwise.
func NewTopic(id string, kind TopicKind) *Topic {
	start := SystemTopicStart
	if kind == TopicRoot {
		start = SystemNewInstrument
	}
	return &Topic{
		ID:   id,
		Kind: kind,
		Data: TopicData{
			States: []*StateNode{NewSystemNode(start)},
		},
	}
}

// State returns the state with the given id, or nil.
func (d *TopicData) State(id string) *StateNode {
	for _, s := range d.States {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// StartNode returns the topic's entry node (NewInstrument or TopicStart), or nil.
func (d *TopicData) StartNode() *StateNode {
	for _, s := range d.States {
		if s.IsStartNode() {
			return s
		}
	}
	return nil
}

// Incoming returns the transitions targeting the given state id, in stored order.
func (d *TopicData) Incoming(id string) []*Transition {
	var out []*Transition
	for _, t := range d.Transitions {
		if t.To == id {
			out = append(out, t)
		}
	}
	return out
}

// Outgoing returns the transitions sourced at the given state id, in stored order.
func (d *TopicData) Outgoing(id string) []*Transition {
	var out []*Transition
	for _, t := range d.Transitions {
		if t.From == id {
			out = append(out, t)
		}
	}
	return out
}

// AddState appends a state to the topic.
func (d *TopicData) AddState(s *StateNode) {
	d.States = append(d.States, s)
}

// RemoveState deletes a state and every transition touching it. Start nodes
// are protected and return ErrProtectedNode.
func (d *TopicData) RemoveState(id string) error {
	s := d.State(id)
	if s == nil {
		return nil
	}
	if s.IsStartNode() {
		return ErrProtectedNode
	}

	states := d.States[:0]
	for _, st := range d.States {
		if st.ID != id {
			states = append(states, st)
		}
	}
	d.States = states

	transitions := d.Transitions[:0]
	for _, t := range d.Transitions {
		if t.From != id && t.To != id {
			transitions = append(transitions, t)
		}
	}
	d.Transitions = transitions
	return nil
}

// Connect creates a transition between two existing states. Kind and
// RoutingOnly are derived, never passed in.
func (d *TopicData) Connect(fromID, toID, messageType, flowType string) *Transition {
	t := &Transition{
		ID:          NewTransitionID(),
		From:        fromID,
		To:          toID,
		MessageType: messageType,
		FlowType:    flowType,
	}
	// Reconnect keeps the raw ids when an endpoint is dangling; the validator
	// reports those, classification falls back to normal.
	t.Reconnect(d.State(fromID), d.State(toID))
	d.Transitions = append(d.Transitions, t)
	return t
}

// RemoveTransition deletes the transition with the given id.
func (d *TopicData) RemoveTransition(id string) {
	transitions := d.Transitions[:0]
	for _, t := range d.Transitions {
		if t.ID != id {
			transitions = append(transitions, t)
		}
	}
	d.Transitions = transitions
}
