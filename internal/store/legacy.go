package store

import "github.com/statuml/statuml/pkg/domain"

// legacyEndTokens are the node names earlier schema revisions used for ad hoc
// end-of-topic states before topic-end markers existed.
var legacyEndTokens = map[string]bool{
	"EndTopic":  true,
	"endTopic":  true,
	"END_TOPIC": true,
}

func isLegacyEndNode(s *domain.StateNode) bool {
	return legacyEndTokens[s.ID] || legacyEndTokens[s.Label] || legacyEndTokens[s.Stereotype]
}

// NormalizeLegacy migrates a project from the ad hoc EndTopic-node convention
// to the topic-end-marker model. Every legacy end node is removed; each of its
// predecessor states is marked as a positive topic end and the transition into
// the removed node is dropped. Transitions that end a topic but never recorded
// an end kind default to positive. Returns whether anything changed.
func NormalizeLegacy(p *domain.Project) bool {
	changed := false

	for _, topic := range p.Topics {
		data := &topic.Data

		var legacy []string
		for _, s := range data.States {
			if isLegacyEndNode(s) {
				legacy = append(legacy, s.ID)
			}
		}

		for _, id := range legacy {
			for _, t := range data.Incoming(id) {
				if from := data.State(t.From); from != nil && !from.SystemNode {
					from.TopicEndKind = domain.TopicEndPositive
				}
			}
			// RemoveState also drops every transition touching the node,
			// the inbound ones included.
			if err := data.RemoveState(id); err == nil {
				changed = true
			}
		}

		for _, t := range data.Transitions {
			from := data.State(t.From)
			to := data.State(t.To)
			if domain.Classify(from, to) == domain.KindEndTopic && t.EndTopicKind == "" {
				t.EndTopicKind = domain.TopicEndPositive
				changed = true
			}
		}
	}

	return changed
}
