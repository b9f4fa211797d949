package usecase_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/salvage/pkg/domain/types"
	"github.com/m-mizutani/salvage/pkg/usecase"
)

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []byte
		wantKind string
	}{
		{
			name:     "empty input",
			input:    "",
			wantKind: "empty_input",
		},
		{
			name:     "whitespace only",
			input:    "  \t\n\r\n   \n",
			wantKind: "empty_input",
		},
		{
			name:     "non-base64 characters",
			input:    "!!!!\n@@@@",
			wantKind: "invalid_encoding",
		},
		{
			name:     "truncated encoding",
			input:    "QUJ",
			wantKind: "invalid_encoding",
		},
		{
			name:  "single line",
			input: "aGVsbG8=",
			want:  []byte("hello"),
		},
		{
			name:  "two lines in reverse order",
			input: "QUJD\nRkdI",
			want:  []byte("FGHABC"),
		},
		{
			name:  "CRLF line breaks",
			input: "QUJD\r\nRkdI",
			want:  []byte("FGHABC"),
		},
		{
			name:  "embedded spaces and tabs",
			input: "QU JD\n\tRk dI",
			want:  []byte("FGHABC"),
		},
		{
			name:  "trailing newline",
			input: "aGVsbG8=\n",
			want:  []byte("hello"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.Reconstruct(tt.input)

			switch tt.wantKind {
			case "empty_input":
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.TagEmptyInput))
				gt.True(t, !goerr.HasTag(err, types.TagInvalidEncoding))
				return
			case "invalid_encoding":
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.TagInvalidEncoding))
				gt.True(t, !goerr.HasTag(err, types.TagEmptyInput))
				return
			}

			gt.NoError(t, err)
			gt.True(t, bytes.Equal(got, tt.want))
		})
	}
}

// TestReconstructRoundTrip verifies the inverse property: encoding bytes,
// splitting the encoding into lines, and reversing the line order must be
// exactly undone by Reconstruct.
func TestReconstructRoundTrip(t *testing.T) {
	original := make([]byte, 1000)
	for i := range original {
		original[i] = byte(i * 7)
	}

	encoded := base64.StdEncoding.EncodeToString(original)

	// Split into fixed-width lines, as a dump producer would
	const width = 76
	var lines []string
	for i := 0; i < len(encoded); i += width {
		end := i + width
		if end > len(encoded) {
			end = len(encoded)
		}
		lines = append(lines, encoded[i:end])
	}

	// Store in reverse order
	var sb bytes.Buffer
	for i := len(lines) - 1; i >= 0; i-- {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}

	got, err := usecase.Reconstruct(sb.String())
	gt.NoError(t, err)
	gt.True(t, bytes.Equal(got, original))
}
