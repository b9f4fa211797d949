package model

import (
	"time"

	"github.com/google/uuid"
)

// Artifact represents a reconstructed binary artifact. Data is owned by the
// artifact and must not be mutated after construction; readers such as the
// directory scanner only borrow it.
type Artifact struct {
	ID        string    // Randomly assigned download identifier
	Filename  string    // Suggested filename for download
	Data      []byte    // Reconstructed bytes, immutable once set
	CreatedAt time.Time // Time of reconstruction
}

// NewArtifact wraps reconstructed bytes with a fresh ID and a
// timestamp-derived download filename.
func NewArtifact(data []byte, now time.Time) *Artifact {
	return &Artifact{
		ID:        uuid.NewString(),
		Filename:  "restored-" + now.Format("20060102-150405") + ".zip",
		Data:      data,
		CreatedAt: now,
	}
}

// Size returns the artifact size in bytes
func (a *Artifact) Size() int {
	return len(a.Data)
}
