package compiler

import (
	"testing"

	"github.com/statuml/statuml/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInstrument = domain.Instrument{Type: "SETT", Revision: "R1"}

func TestExpandForks_NoForksPassThrough(t *testing.T) {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	a := domain.NewUserState("A")
	b := domain.NewUserState("B")
	topic.Data.AddState(a)
	topic.Data.AddState(b)
	start := topic.Data.StartNode()
	topic.Data.Connect(start.ID, a.ID, "MSG", "B2B")
	topic.Data.Connect(a.ID, b.ID, "DONE", "C2C")

	got := ExpandForks(testInstrument, topic)

	want := []RenderTransition{
		{From: start.ID, To: a.ID, Label: "MSG B2B"},
		{From: a.ID, To: b.ID, Label: "DONE C2C"},
	}
	assert.Equal(t, want, got, "with no forks the expansion is the identity")
}

func TestExpandForks_CrossProduct(t *testing.T) {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	fork := domain.NewSystemNode(domain.SystemFork)
	in1 := domain.NewUserState("In1")
	in2 := domain.NewUserState("In2")
	out1 := domain.NewUserState("Out1")
	out2 := domain.NewUserState("Out2")
	out3 := domain.NewUserState("Out3")
	for _, s := range []*domain.StateNode{fork, in1, in2, out1, out2, out3} {
		topic.Data.AddState(s)
	}
	topic.Data.Connect(in1.ID, fork.ID, "", "")
	topic.Data.Connect(in2.ID, fork.ID, "", "")
	for _, out := range []*domain.StateNode{out1, out2, out3} {
		topic.Data.Connect(fork.ID, out.ID, "", "")
	}

	got := ExpandForks(testInstrument, topic)

	require.Len(t, got, 6, "2 incoming x 3 outgoing")
	for _, rt := range got {
		assert.NotEqual(t, fork.ID, rt.From, "fork id must not appear as source")
		assert.NotEqual(t, fork.ID, rt.To, "fork id must not appear as target")
	}
}

func TestExpandForks_LabelFromOutgoingEdge(t *testing.T) {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	fork := domain.NewSystemNode(domain.SystemFork)
	a := domain.NewUserState("A")
	b := domain.NewUserState("B")
	for _, s := range []*domain.StateNode{fork, a, b} {
		topic.Data.AddState(s)
	}
	topic.Data.Connect(a.ID, fork.ID, "", "")
	// Persisted snapshots may carry message fields on fork-outgoing edges;
	// the synthetic edge takes its label from them.
	out := topic.Data.Connect(fork.ID, b.ID, "", "")
	out.MessageType = "ROUTE"
	out.FlowType = "B2B"

	got := ExpandForks(testInstrument, topic)

	require.Len(t, got, 1)
	assert.Equal(t, RenderTransition{From: a.ID, To: b.ID, Label: "ROUTE B2B"}, got[0])
}

func TestExpandForks_DeduplicatesSyntheticEdges(t *testing.T) {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	fork := domain.NewSystemNode(domain.SystemFork)
	a := domain.NewUserState("A")
	b := domain.NewUserState("B")
	for _, s := range []*domain.StateNode{fork, a, b} {
		topic.Data.AddState(s)
	}
	// Two parallel incoming edges from the same state collapse after expansion.
	topic.Data.Connect(a.ID, fork.ID, "", "")
	topic.Data.Connect(a.ID, fork.ID, "", "")
	topic.Data.Connect(fork.ID, b.ID, "", "")

	got := ExpandForks(testInstrument, topic)

	assert.Len(t, got, 1, "identical (from, to, label) triples collapse")
}

func TestExpandForks_ForkChainNotResolved(t *testing.T) {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	f1 := domain.NewSystemNode(domain.SystemFork)
	f2 := domain.NewSystemNode(domain.SystemFork)
	a := domain.NewUserState("A")
	b := domain.NewUserState("B")
	for _, s := range []*domain.StateNode{f1, f2, a, b} {
		topic.Data.AddState(s)
	}
	topic.Data.Connect(a.ID, f1.ID, "", "")
	topic.Data.Connect(f1.ID, f2.ID, "", "")
	topic.Data.Connect(f2.ID, b.ID, "", "")

	got := ExpandForks(testInstrument, topic)

	// Single-level expansion: the chain hop between the two forks is dropped,
	// nothing is emitted. The validator reports fork chains.
	assert.Empty(t, got)
}
