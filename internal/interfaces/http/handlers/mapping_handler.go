package handlers

import (
	"net/http"

	"github.com/asad/ReactionDecoder-sub002/internal/application/mapping"
	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// MappingHandler exposes the mapping service over HTTP.  Every endpoint takes
// a JSON body and answers with the common response envelope.
type MappingHandler struct {
	svc          mapping.Service
	logger       logging.Logger
	maxBodyBytes int64
}

// NewMappingHandler creates a new MappingHandler.  maxBodyBytes <= 0 leaves
// request bodies unbounded.
func NewMappingHandler(svc mapping.Service, logger logging.Logger, maxBodyBytes int64) *MappingHandler {
	return &MappingHandler{
		svc:          svc,
		logger:       logger.Named("mapping_handler"),
		maxBodyBytes: maxBodyBytes,
	}
}

// Match handles POST /api/v1/match.
func (h *MappingHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req mtypes.MatchRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.reject(w, r, err)
		return
	}

	resp, err := h.svc.Match(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeData(w, r, resp)
}

// Matrix handles POST /api/v1/matrix.  Per-pair failures are reported inside
// the matrix and do not change the status code.
func (h *MappingHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	var req mtypes.MatrixRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.reject(w, r, err)
		return
	}

	resp, err := h.svc.MatchMatrix(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeData(w, r, resp)
}

// Uncommon handles POST /api/v1/uncommon.
func (h *MappingHandler) Uncommon(w http.ResponseWriter, r *http.Request) {
	var req mtypes.MatchRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.reject(w, r, err)
		return
	}

	resp, err := h.svc.Uncommon(r.Context(), &req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeData(w, r, resp)
}

func (h *MappingHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Debug("request body rejected",
		logging.String("path", r.URL.Path),
		logging.Err(err),
	)
	writeAppError(w, r, err)
}

//Personal.AI order the ending
