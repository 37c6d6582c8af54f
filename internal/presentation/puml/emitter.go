// Package puml renders project topics as PlantUML state diagrams.
//
// Two entry points exist: GenerateTopic for a single topic and
// GenerateComplete for the whole-instrument aggregate. Both are pure functions
// of a project snapshot and produce byte-identical output for identical
// graphs, so exports stay diffable.
package puml

import (
	"fmt"
	"strings"

	"github.com/statuml/statuml/internal/compiler"
	"github.com/statuml/statuml/pkg/domain"
)

// header is emitted right after @startuml in every diagram.
const header = `hide empty description
skinparam state {
  BackgroundColor White
  BorderColor Black
}`

// qualify builds the dot-qualified prefix shared by all aliases of a topic.
func qualify(instrument domain.Instrument, topic *domain.Topic) string {
	return instrument.Type + "." + topic.ID
}

// stateAlias maps a state to its PUML identifier. System nodes use fixed
// aliases; ordinary states derive theirs from the label. Forks have no alias:
// they never appear in output.
func stateAlias(instrument domain.Instrument, topic *domain.Topic, s *domain.StateNode) string {
	switch s.SystemNodeType {
	case domain.SystemNewInstrument:
		return domain.AliasNewInstrument
	case domain.SystemInstrumentEnd:
		return domain.AliasEndInstrument
	case domain.SystemTopicStart:
		return qualify(instrument, topic) + ".Start"
	case domain.SystemTopicEnd:
		return qualify(instrument, topic) + ".End"
	case domain.SystemFork:
		return ""
	default:
		return qualify(instrument, topic) + "." + domain.LabelToIdentifier(s.Label)
	}
}

// topicSection is the rendered body of one topic: its state declarations and
// its transition lines, alias-resolved and fork-free.
type topicSection struct {
	decls []string
	lines []string

	endAlias string
	// declaresEnd reports whether decls contains the End alias, explicit or
	// synthesized from a positive topic-end marker.
	declaresEnd   bool
	startAlias    string
	declaresStart bool
}

// renderTopic flattens one topic. When standalone is false, the instrument
// entry/end nodes are left out of the declarations (the aggregate declares
// them outside the container).
func renderTopic(instrument domain.Instrument, topic *domain.Topic, standalone bool) topicSection {
	sec := topicSection{endAlias: qualify(instrument, topic) + ".End"}

	aliases := make(map[string]string, len(topic.Data.States))
	hasEndNode := false
	hasInstrumentEnd := false

	for _, s := range topic.Data.States {
		alias := stateAlias(instrument, topic, s)
		if alias == "" {
			continue // fork
		}
		aliases[s.ID] = alias

		switch s.SystemNodeType {
		case domain.SystemNewInstrument:
			sec.startAlias = alias
			sec.declaresStart = true
			if standalone {
				sec.decls = append(sec.decls, "state "+domain.AliasNewInstrument)
			}
		case domain.SystemInstrumentEnd:
			hasInstrumentEnd = true
			if standalone {
				sec.decls = append(sec.decls, "state "+domain.AliasEndInstrument)
			}
		case domain.SystemTopicStart:
			sec.startAlias = alias
			sec.declaresStart = true
			sec.decls = append(sec.decls, fmt.Sprintf("state %q as %s", "Start", alias))
		case domain.SystemTopicEnd:
			hasEndNode = true
			sec.decls = append(sec.decls, fmt.Sprintf("state %q as %s", "End", alias))
		default:
			decl := fmt.Sprintf("state %q as %s", s.Label, alias)
			if s.Stereotype != "" {
				decl += fmt.Sprintf(" <<%s>>", s.Stereotype)
			}
			sec.decls = append(sec.decls, decl)
		}
	}

	var positives, negatives []string
	for _, s := range topic.Data.States {
		if s.SystemNode {
			continue
		}
		switch s.TopicEndKind {
		case domain.TopicEndPositive:
			positives = append(positives, aliases[s.ID])
		case domain.TopicEndNegative:
			negatives = append(negatives, aliases[s.ID])
		}
	}

	// Positive markers need an End state to point at; synthesize the
	// declaration when no explicit TopicEnd node exists.
	if len(positives) > 0 && !hasEndNode {
		sec.decls = append(sec.decls, fmt.Sprintf("state %q as %s", "End", sec.endAlias))
	}
	sec.declaresEnd = hasEndNode || len(positives) > 0

	// Negative markers route straight to the instrument end.
	if standalone && len(negatives) > 0 && !hasInstrumentEnd {
		sec.decls = append(sec.decls, "state "+domain.AliasEndInstrument)
	}

	for _, rt := range compiler.ExpandForks(instrument, topic) {
		from, okFrom := aliases[rt.From]
		to, okTo := aliases[rt.To]
		if !okFrom || !okTo {
			continue // dangling endpoint, reported by validation
		}
		line := from + " --> " + to
		if rt.Label != "" {
			line += " : " + rt.Label
		}
		sec.lines = append(sec.lines, line)
	}

	for _, alias := range positives {
		sec.lines = append(sec.lines, alias+" --> "+sec.endAlias)
	}
	for _, alias := range negatives {
		sec.lines = append(sec.lines, alias+" --> "+domain.AliasEndInstrument)
	}

	return sec
}

// GenerateTopic renders a single topic as a @startuml block. The second return
// is false when the topic id is unknown.
func GenerateTopic(p *domain.Project, topicID string) (string, bool) {
	topic := p.Topic(topicID)
	if topic == nil {
		return "", false
	}

	sec := renderTopic(p.Instrument, topic, true)

	var b strings.Builder
	b.WriteString("@startuml\n")
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, d := range sec.decls {
		b.WriteString(d)
		b.WriteString("\n")
	}
	if len(sec.lines) > 0 {
		b.WriteString("\n")
	}
	for _, l := range sec.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("@enduml\n")
	return b.String(), true
}

// GenerateComplete renders the whole instrument: every root topic nested in
// the instrument container, instrument entry/end declared outside it, and —
// when normal topics exist — a New-Topic router pair wiring topic ends back to
// topic starts. The second return is false when the project has no root topic.
func GenerateComplete(p *domain.Project) (string, bool) {
	roots := p.RootTopics()
	if len(roots) == 0 {
		return "", false
	}
	normals := p.NormalTopics()

	sections := make(map[string]topicSection, len(p.Topics))
	var lines []string
	for _, topic := range p.Topics {
		sec := renderTopic(p.Instrument, topic, false)
		sections[topic.ID] = sec
		lines = append(lines, sec.lines...)
	}

	if len(normals) > 0 {
		for _, topic := range roots {
			if sec := sections[topic.ID]; sec.declaresEnd {
				lines = append(lines, sec.endAlias+" --> "+domain.AliasNewTopicOut)
			}
		}
		for _, topic := range normals {
			if sec := sections[topic.ID]; sec.declaresStart {
				lines = append(lines, domain.AliasNewTopicOut+" --> "+sec.startAlias)
			}
		}
		for _, topic := range normals {
			if sec := sections[topic.ID]; sec.declaresEnd {
				lines = append(lines, sec.endAlias+" --> "+domain.AliasNewTopicIn)
			}
		}
		lines = append(lines, domain.AliasNewTopicIn+" --> "+domain.AliasNewTopicOut)
	}

	// EndInstrument is declared only when something actually reaches it.
	endUsed := false
	for _, l := range lines {
		if strings.HasSuffix(l, "--> "+domain.AliasEndInstrument) ||
			strings.Contains(l, "--> "+domain.AliasEndInstrument+" ") {
			endUsed = true
			break
		}
	}

	containerLabel := p.Instrument.Label
	if containerLabel == "" {
		containerLabel = p.Instrument.Type
	}

	var b strings.Builder
	b.WriteString("@startuml\n")
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString("state " + domain.AliasNewInstrument + "\n")
	fmt.Fprintf(&b, "state %q as %s {\n", containerLabel, p.Instrument.Type)
	for _, topic := range p.Topics {
		topicLabel := topic.Label
		if topicLabel == "" {
			topicLabel = topic.ID
		}
		fmt.Fprintf(&b, "  state %q as %s {\n", topicLabel, qualify(p.Instrument, topic))
		for _, d := range sections[topic.ID].decls {
			b.WriteString("    ")
			b.WriteString(d)
			b.WriteString("\n")
		}
		b.WriteString("  }\n")
	}
	if len(normals) > 0 {
		fmt.Fprintf(&b, "  state %q as %s\n", "New Topic", domain.AliasNewTopicIn)
		fmt.Fprintf(&b, "  state %q as %s\n", "New Topic", domain.AliasNewTopicOut)
	}
	b.WriteString("}\n")
	if endUsed {
		b.WriteString("state " + domain.AliasEndInstrument + "\n")
	}
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("@enduml\n")
	return b.String(), true
}
