package interfaces

import (
	"context"

	"github.com/m-mizutani/salvage/pkg/domain/model"
)

// ArtifactStore defines short-lived retention of reconstructed artifacts
// between conversion and download
type ArtifactStore interface {
	// Put retains an artifact under its ID
	Put(ctx context.Context, artifact *model.Artifact) error

	// Get returns the artifact for the given ID, or an error when the ID
	// is unknown or the artifact has expired
	Get(ctx context.Context, id string) (*model.Artifact, error)

	// Delete removes an artifact; deleting an unknown ID is not an error
	Delete(ctx context.Context, id string) error
}
