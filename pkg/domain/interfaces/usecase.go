package interfaces

import (
	"context"

	"github.com/m-mizutani/salvage/pkg/domain/model"
)

// ConvertUseCase defines the text-to-archive conversion flow
type ConvertUseCase interface {
	// Convert reconstructs a binary artifact from obfuscated text, scans
	// its central directory for entry names, and retains the artifact for
	// download. Reconstruction failures carry a types error tag; the scan
	// never fails and an unreadable directory yields an empty listing.
	Convert(ctx context.Context, text string) (*model.Conversion, error)
}
