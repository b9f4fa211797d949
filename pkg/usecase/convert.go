package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/salvage/pkg/domain/interfaces"
	"github.com/m-mizutani/salvage/pkg/domain/model"
)

type convertUseCase struct {
	store interfaces.ArtifactStore
}

// NewConvert creates a new instance of ConvertUseCase. The store may be nil
// when the caller does not need download retention (e.g. one-shot CLI use).
func NewConvert(store interfaces.ArtifactStore) interfaces.ConvertUseCase {
	return &convertUseCase{
		store: store,
	}
}

// Convert runs the full pipeline: reconstruct the binary artifact from the
// obfuscated text, read the entry listing from its central directory, and
// retain the artifact for download.
func (uc *convertUseCase) Convert(ctx context.Context, text string) (*model.Conversion, error) {
	logger := ctxlog.From(ctx)

	data, err := Reconstruct(text)
	if err != nil {
		// Tagged by Reconstruct; surfaced unmodified so callers can
		// distinguish empty input from a bad encoding.
		return nil, err
	}

	// The listing is advisory: an empty result means the directory could
	// not be read, never that the conversion failed.
	entries := ScanEntryNames(data)

	artifact := model.NewArtifact(data, time.Now())

	logger.Info("Reconstructed artifact",
		"artifact_id", artifact.ID,
		"size_bytes", artifact.Size(),
		"entry_count", len(entries),
	)

	if uc.store != nil {
		if err := uc.store.Put(ctx, artifact); err != nil {
			return nil, goerr.Wrap(err, "failed to retain artifact",
				goerr.V("artifact_id", artifact.ID))
		}
	}

	return &model.Conversion{
		Artifact: artifact,
		Entries:  entries,
	}, nil
}
