package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/salvage/pkg/domain/interfaces"
	"github.com/m-mizutani/salvage/pkg/domain/model"
	"github.com/m-mizutani/salvage/pkg/domain/types"
)

// ConversionHandler handles conversion and artifact download requests
type ConversionHandler struct {
	convertUC   interfaces.ConvertUseCase
	store       interfaces.ArtifactStore
	maxBodySize int64
}

// NewConversionHandler creates a new ConversionHandler
func NewConversionHandler(
	convertUC interfaces.ConvertUseCase,
	store interfaces.ArtifactStore,
	maxBodySize int64,
) *ConversionHandler {
	return &ConversionHandler{
		convertUC:   convertUC,
		store:       store,
		maxBodySize: maxBodySize,
	}
}

// conversionResponse is the success payload of POST /api/conversions
type conversionResponse struct {
	Status   model.ConversionStatus `json:"status"`
	ID       string                 `json:"id"`
	Filename string                 `json:"filename"`
	Size     int                    `json:"size"`
	Entries  []string               `json:"entries"`
}

// failureResponse is the error payload of POST /api/conversions. Kind
// distinguishes empty input from a bad encoding so that the client can show
// an accurate message.
type failureResponse struct {
	Status model.ConversionStatus `json:"status"`
	Kind   string                 `json:"kind"`
	Error  string                 `json:"error"`
}

// HandleConvert accepts an obfuscated text dump as the request body and
// responds with the reconstructed artifact's metadata and entry listing
func (h *ConversionHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, &failureResponse{
			Status: model.StatusFailed,
			Error:  goerr.Wrap(err, "failed to read request body").Error(),
		})
		return
	}

	conv, err := h.convertUC.Convert(ctx, string(body))
	if err != nil {
		kind := failureKind(err)
		status := http.StatusInternalServerError
		if kind != "" {
			// Reconstruction failures are the client's fault
			status = http.StatusBadRequest
		}

		logger.Warn("Conversion failed", "kind", kind, "error", err)
		writeJSON(ctx, w, status, &failureResponse{
			Status: model.StatusFailed,
			Kind:   kind,
			Error:  err.Error(),
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, &conversionResponse{
		Status:   model.StatusSucceeded,
		ID:       conv.Artifact.ID,
		Filename: conv.Artifact.Filename,
		Size:     conv.Artifact.Size(),
		Entries:  conv.Entries,
	})
}

// HandleDownload serves a retained artifact as a ZIP download
func (h *ConversionHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	id := chi.URLParam(r, "artifactID")

	artifact, err := h.store.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, goerr.New("artifact not found"), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(artifact.Size()))

	if _, err := w.Write(artifact.Data); err != nil {
		logger.Error("Failed to write artifact", "error", err, "artifact_id", id)
	}
}

// failureKind maps a tagged reconstruction error to its wire representation.
// Untagged errors yield an empty string.
func failureKind(err error) string {
	switch {
	case goerr.HasTag(err, types.TagEmptyInput):
		return "empty_input"
	case goerr.HasTag(err, types.TagInvalidEncoding):
		return "invalid_encoding"
	default:
		return ""
	}
}
