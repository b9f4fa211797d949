package types

import "github.com/m-mizutani/goerr/v2"

// Error tags for classifying reconstruction failures. Callers branch on
// these via goerr.HasTag to produce accurate diagnostics.
var (
	// TagEmptyInput marks input that is empty after line reversal,
	// concatenation and whitespace stripping.
	TagEmptyInput = goerr.NewTag("empty_input")

	// TagInvalidEncoding marks input that is non-empty but not valid
	// standard base64.
	TagInvalidEncoding = goerr.NewTag("invalid_encoding")
)
