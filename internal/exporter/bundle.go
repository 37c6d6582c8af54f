// Package exporter assembles deployable zip bundles from a project: one
// rendered diagram per topic, the aggregate diagram, and the snapshot the
// bundle was built from.
package exporter

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/statuml/statuml/internal/presentation/puml"
	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/internal/validator"
	"github.com/statuml/statuml/pkg/domain"
)

// ErrValidationFailed is returned when the project carries error-level
// issues. Bundles are deployment artifacts, so broken projects never leave
// the builder.
var ErrValidationFailed = errors.New("project has validation errors")

const snapshotEntry = "builder/statemachine_snapshot.json"

// WriteBundle validates the project and, when clean of errors, writes a zip
// bundle to w. Layout: <REVISION>/<TYPE>/<topic>.puml per topic, a
// complete.puml aggregate, and the JSON snapshot under builder/.
func WriteBundle(w io.Writer, p *domain.Project, cfg *validator.FieldConfig) error {
	issues := validator.Validate(p, cfg)
	if validator.HasErrors(issues) {
		return fmt.Errorf("%w: %d issue(s)", ErrValidationFailed, len(issues))
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	dir := path.Join(p.Instrument.Revision, p.Instrument.Type)

	for _, topic := range p.Topics {
		text, ok := puml.GenerateTopic(p, topic.ID)
		if !ok {
			continue
		}
		name := path.Join(dir, strings.ToLower(topic.ID)+".puml")
		if err := writeEntry(zw, name, []byte(text)); err != nil {
			return err
		}
	}

	if text, ok := puml.GenerateComplete(p); ok {
		if err := writeEntry(zw, path.Join(dir, "complete.puml"), []byte(text)); err != nil {
			return err
		}
	}

	snapshot, err := store.Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeEntry(zw, snapshotEntry, snapshot); err != nil {
		return err
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create bundle entry %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write bundle entry %s: %w", name, err)
	}
	return nil
}
