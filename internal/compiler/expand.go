package compiler

import "github.com/statuml/statuml/pkg/domain"

// RenderTransition is the flattened (from, to, label) triple consumed by the
// emitter. Endpoints are state ids; forks never appear.
type RenderTransition struct {
	From  string
	To    string
	Label string
}

// ExpandForks rewrites a topic's transition set without its fork nodes.
//
// Transitions between non-fork states pass through labeled but otherwise
// unchanged. For each fork, the full cross-product of its incoming and
// outgoing edges is emitted as synthetic transitions; the label comes from the
// outgoing edge because the routing-only incoming edge carries no message
// semantics. Exact (from, to, label) duplicates collapse to one.
//
// Expansion is single-level: a fork whose edge touches another fork is not
// resolved further. The validator flags fork chains instead.
func ExpandForks(instrument domain.Instrument, topic *domain.Topic) []RenderTransition {
	data := &topic.Data

	forks := make(map[string]bool)
	for _, s := range data.States {
		if s.IsFork() {
			forks[s.ID] = true
		}
	}

	var out []RenderTransition
	seen := make(map[RenderTransition]bool)
	add := func(rt RenderTransition) {
		if seen[rt] {
			return
		}
		seen[rt] = true
		out = append(out, rt)
	}

	for _, t := range data.Transitions {
		if forks[t.From] || forks[t.To] {
			continue
		}
		add(RenderTransition{From: t.From, To: t.To, Label: TransitionLabel(t, instrument, topic)})
	}

	for _, s := range data.States {
		if !s.IsFork() {
			continue
		}
		for _, in := range data.Incoming(s.ID) {
			if forks[in.From] {
				continue // fork chain, left to validation
			}
			for _, outEdge := range data.Outgoing(s.ID) {
				if forks[outEdge.To] {
					continue
				}
				add(RenderTransition{
					From:  in.From,
					To:    outEdge.To,
					Label: messageLabel(outEdge, instrument, topic),
				})
			}
		}
	}

	return out
}
