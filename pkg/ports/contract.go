package ports

import (
	"context"
	"testing"
	"time"

	"github.com/statuml/statuml/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProjectStoreContract runs a suite of tests to verify that a ProjectStore
// implementation adheres to the defined interface contract.
func RunProjectStoreContract(t *testing.T, store ProjectStore) {
	ctx := context.Background()
	projectID := "contract-test-project-" + time.Now().Format("20060102150405")

	newProject := func() *domain.Project {
		topic := domain.NewTopic("ROOT", domain.TopicRoot)
		ready := domain.NewUserState("Ready")
		topic.Data.AddState(ready)
		topic.Data.Connect(topic.Data.StartNode().ID, ready.ID, "MSG", "B2B")
		return &domain.Project{
			Instrument: domain.Instrument{Type: "SETT", Revision: "R1"},
			Topics:     []*domain.Topic{topic},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		p := newProject()

		err := store.Save(ctx, projectID, p)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, p.Instrument, loaded.Instrument)
		require.Len(t, loaded.Topics, 1)
		assert.Equal(t, "ROOT", loaded.Topics[0].ID)
		require.Len(t, loaded.Topics[0].Data.Transitions, 1)
		assert.Equal(t, domain.KindStartInstrument, loaded.Topics[0].Data.Transitions[0].Kind)
	})

	t.Run("Load returns an independent copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, projectID, newProject()))

		first, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		first.Instrument.Type = "MUTATED"

		second, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "SETT", second.Instrument.Type, "stored project must not observe caller mutations")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+projectID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, projectID, newProject()))

		err := store.Delete(ctx, projectID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, projectID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound, "Load after Delete should return ErrProjectNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := projectID + "-1"
		id2 := projectID + "-2"
		_ = store.Save(ctx, id1, newProject())
		_ = store.Save(ctx, id2, newProject())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		projects, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, projects, id1)
		assert.Contains(t, projects, id2)
	})
}
