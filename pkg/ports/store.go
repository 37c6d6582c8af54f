package ports

import (
	"context"

	"github.com/statuml/statuml/pkg/domain"
)

// ProjectStore persists project snapshots by project ID. Implementations must
// return independent copies: mutating a loaded project never changes the
// stored one.
type ProjectStore interface {
	// Save persists the project under the given ID.
	Save(ctx context.Context, projectID string, p *domain.Project) error

	// Load retrieves the project for a given ID.
	// Returns domain.ErrProjectNotFound if the project does not exist.
	Load(ctx context.Context, projectID string) (*domain.Project, error)

	// Delete removes the project for a given ID.
	Delete(ctx context.Context, projectID string) error

	// List returns the IDs of every stored project.
	List(ctx context.Context) ([]string, error)
}
