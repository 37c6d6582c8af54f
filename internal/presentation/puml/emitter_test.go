package puml_test

import (
	"strings"
	"testing"

	"github.com/statuml/statuml/internal/presentation/puml"
	"github.com/statuml/statuml/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rootProject builds the reference scenario: a root topic in which the
// instrument entry leads to Ready, Ready to Completed, and Completed is a
// positive topic-end marker with no explicit end node.
func rootProject() *domain.Project {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	ready := domain.NewUserState("Ready")
	completed := domain.NewUserState("Completed")
	completed.TopicEndKind = domain.TopicEndPositive
	topic.Data.AddState(ready)
	topic.Data.AddState(completed)
	topic.Data.Connect(topic.Data.StartNode().ID, ready.ID, "MSG", "B2B")
	topic.Data.Connect(ready.ID, completed.ID, "DONE", "C2C")

	return &domain.Project{
		Instrument: domain.Instrument{Type: "I", Revision: "R1"},
		Topics:     []*domain.Topic{topic},
	}
}

func TestGenerateTopic_UnknownTopic(t *testing.T) {
	out, ok := puml.GenerateTopic(rootProject(), "missing")
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestGenerateTopic_Envelope(t *testing.T) {
	out, ok := puml.GenerateTopic(rootProject(), "ROOT")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(out, "@startuml\n"))
	assert.True(t, strings.HasSuffix(out, "@enduml\n"))
	assert.Contains(t, out, "skinparam state")
}

func TestGenerateTopic_EndToEndScenario(t *testing.T) {
	out, ok := puml.GenerateTopic(rootProject(), "ROOT")
	require.True(t, ok)

	for _, want := range []string{
		"NewInstrument --> I.ROOT.READY : MSG B2B",
		"I.ROOT.READY --> I.ROOT.COMPLETED : DONE C2C",
		"I.ROOT.COMPLETED --> I.ROOT.End",
		`state "End" as I.ROOT.End`, // synthesized, no explicit end node exists
	} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateTopic_Deterministic(t *testing.T) {
	p := rootProject()
	first, ok := puml.GenerateTopic(p, "ROOT")
	require.True(t, ok)
	second, _ := puml.GenerateTopic(p, "ROOT")
	assert.Equal(t, first, second)
}

func TestGenerateTopic_StereotypeAndSelfLoop(t *testing.T) {
	p := rootProject()
	topic := p.Topic("ROOT")
	pending := domain.NewUserState("Pending")
	pending.Stereotype = "queue"
	topic.Data.AddState(pending)
	topic.Data.Connect(pending.ID, pending.ID, "RETRY", "B2B")

	out, ok := puml.GenerateTopic(p, "ROOT")
	require.True(t, ok)
	assert.Contains(t, out, `state "Pending" as I.ROOT.PENDING <<queue>>`)
	assert.Contains(t, out, "I.ROOT.PENDING --> I.ROOT.PENDING : RETRY B2B")
}

func TestGenerateTopic_NegativeMarkerRoutesToEndInstrument(t *testing.T) {
	p := rootProject()
	topic := p.Topic("ROOT")
	failed := domain.NewUserState("Failed")
	failed.TopicEndKind = domain.TopicEndNegative
	topic.Data.AddState(failed)

	out, ok := puml.GenerateTopic(p, "ROOT")
	require.True(t, ok)
	assert.Contains(t, out, "state EndInstrument")
	assert.Contains(t, out, "I.ROOT.FAILED --> EndInstrument")
}

func TestGenerateTopic_ForksInvisible(t *testing.T) {
	p := rootProject()
	topic := p.Topic("ROOT")
	fork := domain.NewSystemNode(domain.SystemFork)
	a := domain.NewUserState("Split A")
	b := domain.NewUserState("Split B")
	topic.Data.AddState(fork)
	topic.Data.AddState(a)
	topic.Data.AddState(b)
	topic.Data.Connect(topic.Data.State(topic.Data.Transitions[1].To).ID, fork.ID, "", "")
	topic.Data.Connect(fork.ID, a.ID, "", "")
	topic.Data.Connect(fork.ID, b.ID, "", "")

	out, ok := puml.GenerateTopic(p, "ROOT")
	require.True(t, ok)
	assert.NotContains(t, out, fork.ID, "fork ids must never leak into output")
	assert.Contains(t, out, "I.ROOT.COMPLETED --> I.ROOT.SPLIT_A")
	assert.Contains(t, out, "I.ROOT.COMPLETED --> I.ROOT.SPLIT_B")
}

func TestGenerateComplete_NoRootTopic(t *testing.T) {
	p := &domain.Project{
		Instrument: domain.Instrument{Type: "I", Revision: "R1"},
		Topics:     []*domain.Topic{domain.NewTopic("SUB", domain.TopicNormal)},
	}
	out, ok := puml.GenerateComplete(p)
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestGenerateComplete_RootOnly(t *testing.T) {
	out, ok := puml.GenerateComplete(rootProject())
	require.True(t, ok)

	assert.Contains(t, out, "state NewInstrument")
	assert.Contains(t, out, `state "I" as I {`)
	assert.Contains(t, out, `state "ROOT" as I.ROOT {`)
	assert.NotContains(t, out, "NewTopicOut", "no router without normal topics")
	assert.NotContains(t, out, "state EndInstrument", "nothing targets the instrument end")
}

func TestGenerateComplete_RouterWiring(t *testing.T) {
	p := rootProject()
	sub := domain.NewTopic("SUB", domain.TopicNormal)
	step := domain.NewUserState("Step")
	step.TopicEndKind = domain.TopicEndPositive
	sub.Data.AddState(step)
	sub.Data.Connect(sub.Data.StartNode().ID, step.ID, "SUBMSG", "B2B")
	p.Topics = append(p.Topics, sub)

	out, ok := puml.GenerateComplete(p)
	require.True(t, ok)

	for _, want := range []string{
		`state "New Topic" as NewTopicIn`,
		`state "New Topic" as NewTopicOut`,
		"I.ROOT.End --> NewTopicOut",
		"NewTopicOut --> I.SUB.Start",
		"I.SUB.End --> NewTopicIn",
		"NewTopicIn --> NewTopicOut",
		"I.SUB.Start --> I.SUB.STEP : SUBMSG B2B",
	} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateComplete_EndInstrumentOnlyWhenTargeted(t *testing.T) {
	p := rootProject()
	topic := p.Topic("ROOT")
	failed := domain.NewUserState("Failed")
	failed.TopicEndKind = domain.TopicEndNegative
	topic.Data.AddState(failed)

	out, ok := puml.GenerateComplete(p)
	require.True(t, ok)
	assert.Contains(t, out, "state EndInstrument")
	assert.Contains(t, out, "I.ROOT.FAILED --> EndInstrument")
}
