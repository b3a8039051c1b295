package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	"github.com/asad/ReactionDecoder-sub002/pkg/types/common"
)

// requestID returns the id assigned by chi's RequestID middleware.
func requestID(r *http.Request) string {
	return chimw.GetReqID(r.Context())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeData wraps data in the success envelope.
func writeData[T any](w http.ResponseWriter, r *http.Request, data T) {
	writeJSON(w, http.StatusOK, common.NewSuccessResponse(requestID(r), data))
}

// writeAppError maps err's code onto an HTTP status and writes the error
// envelope.  Plain 500s are masked; their detail goes to the log only.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	if status == http.StatusInternalServerError {
		err = errors.New(errors.ErrCodeInternal, "internal server error")
	}
	writeJSON(w, status, common.NewErrorResponse(requestID(r), err))
}

// decodeJSON reads exactly one JSON document of at most maxBytes into dst.
// Unknown fields are rejected so that misspelt options fail loudly.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst interface{}) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.Newf(errors.CodeInvalidParam, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return errors.InvalidParam("request body is empty")
		}
		return errors.Wrap(err, errors.CodeInvalidParam, "malformed request body").WithDetail(err.Error())
	}
	if dec.More() {
		return errors.InvalidParam("request body holds more than one JSON document")
	}
	return nil
}

//Personal.AI order the ending
