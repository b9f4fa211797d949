package usecase

import (
	"encoding/base64"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/salvage/pkg/domain/types"
)

// Reconstruct inverts the obfuscation applied by the dump producer: the
// original bytes were base64 encoded, the encoding was split into lines, and
// the lines were stored in reverse order. Splitting on line breaks (CRLF or
// bare LF), reversing the line order, joining without separators and
// stripping whitespace recovers the base64 stream.
//
// Pure and deterministic; safe for concurrent use.
func Reconstruct(text string) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var sb strings.Builder
	for i := len(lines) - 1; i >= 0; i-- {
		sb.WriteString(lines[i])
	}

	encoded := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, sb.String())

	if encoded == "" {
		return nil, goerr.New("input text is empty after normalization",
			goerr.T(types.TagEmptyInput))
	}

	// Strict RFC 4648 decoding: wrong length, invalid characters and bad
	// padding are all rejected uniformly.
	data, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, goerr.Wrap(err, "input text is not valid base64",
			goerr.T(types.TagInvalidEncoding),
			goerr.V("encoded_length", len(encoded)))
	}

	return data, nil
}
