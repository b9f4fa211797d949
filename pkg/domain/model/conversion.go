package model

// ConversionStatus represents the presentation state of a conversion flow.
// The core operations are stateless; callers thread this value explicitly.
type ConversionStatus string

const (
	StatusIdle       ConversionStatus = "idle"
	StatusProcessing ConversionStatus = "processing"
	StatusSucceeded  ConversionStatus = "succeeded"
	StatusFailed     ConversionStatus = "failed"
)

// Conversion represents the outcome of a successful text-to-archive
// conversion: the reconstructed artifact plus the advisory entry listing
// read from its central directory. Entries preserves central directory
// order and may be empty when the artifact carries no readable directory.
type Conversion struct {
	Artifact *Artifact
	Entries  []string
}
