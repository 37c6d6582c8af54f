package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopic_StartNodes(t *testing.T) {
	root := NewTopic("ROOT", TopicRoot)
	require.NotNil(t, root.Data.StartNode())
	assert.Equal(t, SystemNewInstrument, root.Data.StartNode().SystemNodeType)

	sub := NewTopic("SUB", TopicNormal)
	require.NotNil(t, sub.Data.StartNode())
	assert.Equal(t, SystemTopicStart, sub.Data.StartNode().SystemNodeType)
}

func TestRemoveState_ProtectsStartNodes(t *testing.T) {
	topic := NewTopic("ROOT", TopicRoot)
	start := topic.Data.StartNode()

	err := topic.Data.RemoveState(start.ID)
	assert.ErrorIs(t, err, ErrProtectedNode)
	assert.NotNil(t, topic.Data.State(start.ID), "start node must survive")
}

func TestRemoveState_CascadesTransitions(t *testing.T) {
	topic := NewTopic("ROOT", TopicRoot)
	a := NewUserState("A")
	b := NewUserState("B")
	topic.Data.AddState(a)
	topic.Data.AddState(b)
	topic.Data.Connect(topic.Data.StartNode().ID, a.ID, "MSG", "B2B")
	topic.Data.Connect(a.ID, b.ID, "NEXT", "B2B")

	require.NoError(t, topic.Data.RemoveState(a.ID))

	assert.Nil(t, topic.Data.State(a.ID))
	assert.Empty(t, topic.Data.Transitions, "every transition touching the state must go")
}

func TestConnect_DerivesKindAndRouting(t *testing.T) {
	topic := NewTopic("ROOT", TopicRoot)
	a := NewUserState("A")
	fork := NewSystemNode(SystemFork)
	topic.Data.AddState(a)
	topic.Data.AddState(fork)

	start := topic.Data.Connect(topic.Data.StartNode().ID, a.ID, "MSG", "B2B")
	assert.Equal(t, KindStartInstrument, start.Kind)
	assert.False(t, start.RoutingOnly)

	routed := topic.Data.Connect(a.ID, fork.ID, "MSG", "B2B")
	assert.True(t, routed.RoutingOnly)
	assert.Empty(t, routed.MessageType, "routing-only edges carry no message fields")
}

func TestProjectLookups(t *testing.T) {
	p := &Project{
		Instrument: Instrument{Type: "SETT", Revision: "R1"},
		Topics: []*Topic{
			NewTopic("ROOT", TopicRoot),
			NewTopic("SUB", TopicNormal),
		},
	}

	require.NotNil(t, p.Topic("SUB"))
	assert.Nil(t, p.Topic("missing"))
	assert.Len(t, p.RootTopics(), 1)
	assert.Len(t, p.NormalTopics(), 1)
}
