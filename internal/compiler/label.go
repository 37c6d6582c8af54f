// Package compiler flattens topic graphs into the fork-free transition set the
// PUML emitter consumes, and derives the textual labels of those transitions.
package compiler

import (
	"strings"

	"github.com/statuml/statuml/pkg/domain"
)

// TransitionLabel renders the message label of a transition.
//
// Routing-only and end-classified transitions are unlabeled, as is any
// transition missing a message or flow type. The optional qualifier fields
// (revision, instrument, topic) are emitted as a left-anchored, gap-free
// prefix: setting a more specific field forces every field to its right,
// falling back to the owning instrument/topic values when not overridden.
// MessageType and FlowType always close the label.
func TransitionLabel(t *domain.Transition, instrument domain.Instrument, topic *domain.Topic) string {
	if t.RoutingOnly {
		return ""
	}
	return messageLabel(t, instrument, topic)
}

// messageLabel is TransitionLabel without the routing-only guard. Fork
// expansion labels synthetic edges from the fork-outgoing transition's fields
// even though that edge itself is routing-only.
func messageLabel(t *domain.Transition, instrument domain.Instrument, topic *domain.Topic) string {
	switch t.Kind {
	case domain.KindEndTopic, domain.KindEndInstrument:
		return ""
	}
	if t.MessageType == "" || t.FlowType == "" {
		return ""
	}

	instrumentValue := t.Instrument
	if instrumentValue == "" {
		instrumentValue = instrument.Type
	}
	topicValue := t.Topic
	if topicValue == "" && topic != nil {
		topicValue = topic.ID
	}

	var parts []string
	switch {
	case t.Revision != "":
		parts = append(parts, t.Revision, instrumentValue, topicValue)
	case t.Instrument != "":
		parts = append(parts, instrumentValue, topicValue)
	case t.Topic != "":
		parts = append(parts, topicValue)
	}
	parts = append(parts, t.MessageType, t.FlowType)

	return strings.Join(parts, " ")
}
