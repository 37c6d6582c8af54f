// Package store persists project snapshots as JSON documents and upgrades
// legacy snapshots on the way in.
//
// Loading is fail-closed: a malformed snapshot yields an error and no project,
// so a caller can never end up with a half-mutated in-memory state. Migrations
// run exactly once, at this deserialization boundary, never inside the pure
// compiler functions.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/statuml/statuml/pkg/domain"
)

// Decode parses a persisted project snapshot. The raw document is decoded
// loosely first so snapshots written by older schema revisions (string-typed
// numbers, extra fields) still load, then normalized and re-derived: every
// transition's kind and routing flag are recomputed from its endpoints, never
// trusted from disk.
func Decode(data []byte) (*domain.Project, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed project snapshot: %w", err)
	}

	var p domain.Project
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("malformed project snapshot: %w", err)
	}

	NormalizeLegacy(&p)

	for _, topic := range p.Topics {
		for _, t := range topic.Data.Transitions {
			t.Rederive(&topic.Data)
		}
	}

	return &p, nil
}

// Encode serializes a project snapshot as indented JSON.
func Encode(p *domain.Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode project snapshot: %w", err)
	}
	return data, nil
}

// Load reads and decodes a snapshot file.
func Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project snapshot: %w", err)
	}
	return Decode(data)
}

// Save writes a snapshot file.
func Save(path string, p *domain.Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project snapshot: %w", err)
	}
	return nil
}
