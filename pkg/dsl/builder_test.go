package dsl_test

import (
	"testing"

	"github.com/statuml/statuml/internal/presentation/puml"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/domain"
	"github.com/statuml/statuml/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildsRenderableProject(t *testing.T) {
	b := dsl.New("SETT", "R1").Label("Settlement")

	root := b.Topic("ROOT", domain.TopicRoot)
	root.State("Ready")
	root.State("Completed").EndsPositive()
	root.Connect(dsl.Start, "Ready", "MSG", "B2B")
	root.Connect("Ready", "Completed", "DONE", "C2C")

	p := b.Build()
	require.Len(t, p.Topics, 1)
	assert.Equal(t, "Settlement", p.Instrument.Label)

	// Kinds are derived, not declared.
	start := p.Topics[0].Data.StartNode()
	out := p.Topics[0].Data.Outgoing(start.ID)
	require.Len(t, out, 1)
	assert.Equal(t, domain.KindStartInstrument, out[0].Kind)

	text, ok := puml.GenerateTopic(p, "ROOT")
	require.True(t, ok)
	assert.Contains(t, text, "NewInstrument --> SETT.ROOT.READY : MSG B2B")

	assert.False(t, validator.HasErrors(validator.Validate(p, nil)))
}

func TestBuilder_ForkAndRoutes(t *testing.T) {
	b := dsl.New("SETT", "R1")

	root := b.Topic("ROOT", domain.TopicRoot)
	root.State("Ready")
	root.State("Settled").EndsPositive()
	root.State("Failed").EndsNegative()
	root.Fork("split")
	root.Connect(dsl.Start, "Ready", "MSG", "B2B")
	root.Route("Ready", "split")
	root.Connect("split", "Settled", "OK", "C2C")
	root.Connect("split", "Failed", "NOK", "C2C")

	p := b.Build()
	data := p.Topics[0].Data

	var fork *domain.StateNode
	for _, s := range data.States {
		if s.IsFork() {
			fork = s
		}
	}
	require.NotNil(t, fork)

	// The edge into the fork is routing-only and carries no message fields.
	in := data.Incoming(fork.ID)
	require.Len(t, in, 1)
	assert.True(t, in[0].RoutingOnly)
	assert.Empty(t, in[0].MessageType)
}

func TestBuilder_TopicAndStateAreIdempotent(t *testing.T) {
	b := dsl.New("SETT", "R1")

	first := b.Topic("ROOT", domain.TopicRoot)
	second := b.Topic("ROOT", domain.TopicRoot)
	assert.Same(t, first, second)

	first.State("Ready").Stereotype("queue")
	first.State("Ready") // returns the existing state
	p := b.Build()

	count := 0
	for _, s := range p.Topics[0].Data.States {
		if s.Label == "Ready" {
			count++
			assert.Equal(t, "queue", s.Stereotype)
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuilder_UnknownStatePanics(t *testing.T) {
	b := dsl.New("SETT", "R1")
	root := b.Topic("ROOT", domain.TopicRoot)

	assert.Panics(t, func() {
		root.Connect("Nope", "AlsoNope", "MSG", "B2B")
	})
}
