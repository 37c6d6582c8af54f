package validator

import (
	"fmt"

	"github.com/statuml/statuml/pkg/domain"
)

// Validate runs every check over the project and returns the full issue list.
// cfg may be nil, which skips the vocabulary checks. Validation never mutates
// the project and never stops at the first finding.
func Validate(p *domain.Project, cfg *FieldConfig) []Issue {
	l := &issueList{}

	validateInstrument(l, p.Instrument)

	if len(p.RootTopics()) == 0 {
		l.warnf("project has no root topic; the aggregate diagram cannot be generated", "", "", "")
	}

	seenTopics := make(map[string]bool)
	for _, topic := range p.Topics {
		validateTopicIdentity(l, topic, seenTopics)
		validateStartNodes(l, topic)
		validateStates(l, topic)
		validateTransitions(l, topic, cfg)
		validateStructure(l, topic)
	}

	return l.issues
}

func validateInstrument(l *issueList, instrument domain.Instrument) {
	if instrument.Type == "" {
		l.errorf("instrument type is required", "", "", ElementInstrument)
	} else if !domain.IsIdentifier(instrument.Type) {
		l.errorf(fmt.Sprintf("instrument type %q is not a valid identifier", instrument.Type), "", "", ElementInstrument)
	}
	if instrument.Revision == "" {
		l.errorf("instrument revision is required", "", "", ElementInstrument)
	} else if !domain.IsIdentifier(instrument.Revision) {
		l.errorf(fmt.Sprintf("instrument revision %q is not a valid identifier", instrument.Revision), "", "", ElementInstrument)
	}
}

func validateTopicIdentity(l *issueList, topic *domain.Topic, seen map[string]bool) {
	if topic.ID == "" {
		l.errorf("topic id is required", "", "", ElementTopic)
		return
	}
	if seen[topic.ID] {
		l.errorf(fmt.Sprintf("topic id %q is not unique", topic.ID), topic.ID, topic.ID, ElementTopic)
	}
	seen[topic.ID] = true

	if !domain.IsIdentifier(topic.ID) {
		l.errorf(fmt.Sprintf("topic id %q is not a valid identifier", topic.ID), topic.ID, topic.ID, ElementTopic)
	}
	if domain.IsReservedIdentifier(topic.ID) {
		l.errorf(fmt.Sprintf("topic id %q is a reserved name", topic.ID), topic.ID, topic.ID, ElementTopic)
	}
}

func validateStartNodes(l *issueList, topic *domain.Topic) {
	wanted := domain.SystemTopicStart
	if topic.Kind == domain.TopicRoot {
		wanted = domain.SystemNewInstrument
	}
	count := 0
	for _, s := range topic.Data.States {
		if s.SystemNodeType == wanted {
			count++
		}
	}
	if count != 1 {
		l.errorf(
			fmt.Sprintf("topic %q must have exactly one %s node, found %d", topic.ID, wanted, count),
			topic.ID, "", ElementTopic,
		)
	}
}

func validateStates(l *issueList, topic *domain.Topic) {
	derived := make(map[string]string) // identifier -> first state id
	for _, s := range topic.Data.States {
		if s.SystemNode {
			continue
		}
		if s.Label == "" {
			l.errorf("state label is required", topic.ID, s.ID, ElementState)
			continue
		}

		ident := domain.LabelToIdentifier(s.Label)
		if domain.IsReservedIdentifier(ident) {
			l.errorf(
				fmt.Sprintf("state label %q derives the reserved identifier %q", s.Label, ident),
				topic.ID, s.ID, ElementState,
			)
		}
		if ident == domain.FallbackIdentifier || !domain.IsIdentifier(ident) {
			l.warnf(
				fmt.Sprintf("state label %q does not derive a usable identifier (%q)", s.Label, ident),
				topic.ID, s.ID, ElementState,
			)
		}
		if firstID, ok := derived[ident]; ok && firstID != s.ID {
			l.warnf(
				fmt.Sprintf("state label %q collides with another state on identifier %q", s.Label, ident),
				topic.ID, s.ID, ElementState,
			)
		} else {
			derived[ident] = s.ID
		}
	}
}

func validateTransitions(l *issueList, topic *domain.Topic, cfg *FieldConfig) {
	for _, t := range topic.Data.Transitions {
		from := topic.Data.State(t.From)
		to := topic.Data.State(t.To)

		if from == nil {
			l.errorf(fmt.Sprintf("transition source %q does not exist", t.From), topic.ID, t.ID, ElementTransition)
		}
		if to == nil {
			l.errorf(fmt.Sprintf("transition target %q does not exist", t.To), topic.ID, t.ID, ElementTransition)
		}

		// Stored kind must match the derivation from current endpoints. With a
		// dangling endpoint the derivation is meaningless, so the check is
		// skipped; the existence errors above cover that case.
		if want := domain.Classify(from, to); from != nil && to != nil && t.Kind != "" && t.Kind != want {
			l.errorf(
				fmt.Sprintf("transition kind %q does not match its endpoints (derives %q)", t.Kind, want),
				topic.ID, t.ID, ElementTransition,
			)
		}
		routing := from.IsFork() || to.IsFork()
		if t.RoutingOnly != routing {
			l.errorf("transition routing flag does not match its endpoints", topic.ID, t.ID, ElementTransition)
		}

		if !routing && labeledKind(t.Kind) {
			if t.MessageType == "" {
				l.errorf("transition message type is required", topic.ID, t.ID, ElementTransition)
			}
			if t.FlowType == "" {
				l.errorf("transition flow type is required", topic.ID, t.ID, ElementTransition)
			}
		}

		if cfg != nil {
			vocabulary := []struct {
				field  string
				values []string
				value  string
			}{
				{"revision", cfg.Revisions, t.Revision},
				{"instrument", cfg.Instruments, t.Instrument},
				{"topic", cfg.Topics, t.Topic},
				{"message type", cfg.MessageTypes, t.MessageType},
				{"flow type", cfg.FlowTypes, t.FlowType},
			}
			for _, v := range vocabulary {
				if outside(v.values, v.value) {
					l.warnf(
						fmt.Sprintf("transition %s %q is not in the configured vocabulary", v.field, v.value),
						topic.ID, t.ID, ElementTransition,
					)
				}
			}
		}
	}
}

// labeledKind reports whether a kind carries a message label and therefore
// requires message/flow types.
func labeledKind(kind domain.TransitionKind) bool {
	switch kind {
	case domain.KindEndTopic, domain.KindEndInstrument:
		return false
	}
	return true
}

func validateStructure(l *issueList, topic *domain.Topic) {
	data := &topic.Data

	start := data.StartNode()
	if start != nil && !hasEffectiveStart(data, start) {
		l.errorf(
			fmt.Sprintf("topic %q has no effective start transition", topic.ID),
			topic.ID, start.ID, ElementState,
		)
	}

	if !hasPathToEnd(data) {
		l.warnf(fmt.Sprintf("topic %q has no path to an end state", topic.ID), topic.ID, "", ElementTopic)
	}

	if start != nil {
		for _, s := range unreachedStates(data, start) {
			l.warnf(
				fmt.Sprintf("state %q is not reachable from the topic start", s.Label),
				topic.ID, s.ID, ElementState,
			)
		}
	}

	for _, s := range data.States {
		in := data.Incoming(s.ID)
		out := data.Outgoing(s.ID)

		if s.IsFork() {
			if len(in) == 0 || len(out) == 0 {
				l.warnf("fork has no incoming or no outgoing transitions and routes nothing", topic.ID, s.ID, ElementState)
			}
			continue
		}
		if s.IsStartNode() {
			continue // covered by the effective-start check
		}
		if len(in) == 0 && len(out) == 0 && s.TopicEndKind == "" {
			l.warnf(fmt.Sprintf("state %q is orphaned", s.Label), topic.ID, s.ID, ElementState)
		}
	}

	// Fork chains are a documented restriction: expansion is single-level.
	for _, t := range data.Transitions {
		if data.State(t.From).IsFork() && data.State(t.To).IsFork() {
			l.warnf("fork-to-fork transitions are not expanded and will not appear in diagrams", topic.ID, t.ID, ElementTransition)
		}
	}
}

// hasEffectiveStart checks that at least one transition out of the start node
// ultimately reaches a non-fork state. The check recurses exactly one fork
// level, matching the expansion engine.
func hasEffectiveStart(data *domain.TopicData, start *domain.StateNode) bool {
	for _, t := range data.Outgoing(start.ID) {
		target := data.State(t.To)
		if target == nil {
			continue
		}
		if !target.IsFork() {
			return true
		}
		for _, out := range data.Outgoing(target.ID) {
			if next := data.State(out.To); next != nil && !next.IsFork() {
				return true
			}
		}
	}
	return false
}

// hasPathToEnd checks that at least one transition reaches an end point: an
// explicit end node or a topic-end-marked state. Symmetric to the start check,
// it looks back through a single fork level.
func hasPathToEnd(data *domain.TopicData) bool {
	isEnd := func(s *domain.StateNode) bool {
		if s == nil {
			return false
		}
		if s.SystemNodeType == domain.SystemTopicEnd || s.SystemNodeType == domain.SystemInstrumentEnd {
			return true
		}
		return !s.SystemNode && s.TopicEndKind != ""
	}

	hasAnyEnd := false
	for _, s := range data.States {
		if isEnd(s) {
			hasAnyEnd = true
			break
		}
	}
	if !hasAnyEnd {
		return false
	}

	for _, t := range data.Transitions {
		target := data.State(t.To)
		if !isEnd(target) {
			continue
		}
		source := data.State(t.From)
		if source == nil {
			continue
		}
		if !source.IsFork() {
			return true
		}
		if len(data.Incoming(source.ID)) > 0 {
			return true
		}
	}

	// A marked state reached by any transition counts even without an edge
	// into an explicit end node.
	for _, s := range data.States {
		if !s.SystemNode && s.TopicEndKind != "" && len(data.Incoming(s.ID)) > 0 {
			return true
		}
	}
	return false
}

// unreachedStates runs a breadth-first scan from the start node and returns
// every non-system state the scan never visits.
func unreachedStates(data *domain.TopicData, start *domain.StateNode) []*domain.StateNode {
	visited := map[string]bool{start.ID: true}
	queue := []string{start.ID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, t := range data.Outgoing(current) {
			if !visited[t.To] && data.State(t.To) != nil {
				visited[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}

	var out []*domain.StateNode
	for _, s := range data.States {
		if !s.SystemNode && !visited[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
