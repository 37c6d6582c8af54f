package exporter_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/statuml/statuml/internal/exporter"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() *domain.Project {
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	ready := domain.NewUserState("Ready")
	completed := domain.NewUserState("Completed")
	completed.TopicEndKind = domain.TopicEndPositive
	topic.Data.AddState(ready)
	topic.Data.AddState(completed)
	topic.Data.Connect(topic.Data.StartNode().ID, ready.ID, "MSG", "B2B")
	topic.Data.Connect(ready.ID, completed.ID, "DONE", "C2C")

	return &domain.Project{
		Instrument: domain.Instrument{Type: "SETT", Revision: "R1"},
		Topics:     []*domain.Topic{topic},
	}
}

func readBundle(t *testing.T, raw []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = string(data)
	}
	return entries
}

func TestWriteBundle_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exporter.WriteBundle(&buf, validProject(), nil))

	entries := readBundle(t, buf.Bytes())
	require.Contains(t, entries, "R1/SETT/root.puml")
	require.Contains(t, entries, "R1/SETT/complete.puml")
	require.Contains(t, entries, "builder/statemachine_snapshot.json")

	assert.Contains(t, entries["R1/SETT/root.puml"], "NewInstrument --> SETT.ROOT.READY : MSG B2B")
	assert.Contains(t, entries["R1/SETT/complete.puml"], "@startuml")
}

func TestWriteBundle_SnapshotRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	p := validProject()
	require.NoError(t, exporter.WriteBundle(&buf, p, nil))

	entries := readBundle(t, buf.Bytes())
	loaded, err := store.Decode([]byte(entries["builder/statemachine_snapshot.json"]))
	require.NoError(t, err)
	assert.Equal(t, p.Instrument, loaded.Instrument)
	require.Len(t, loaded.Topics, 1)
	assert.Equal(t, "ROOT", loaded.Topics[0].ID)
}

func TestWriteBundle_RefusesInvalidProject(t *testing.T) {
	p := validProject()
	p.Instrument.Type = "" // instrument type is required

	var buf bytes.Buffer
	err := exporter.WriteBundle(&buf, p, nil)
	assert.ErrorIs(t, err, exporter.ErrValidationFailed)
	assert.Zero(t, buf.Len(), "no bytes should be written for a broken project")
}
