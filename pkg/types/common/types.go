// Package common holds the small cross-layer types shared by every DTO package:
// identifiers, timestamps and the response envelope printed by the CLI.
package common

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// ID is a string alias for UUID v4.
type ID string

// Validate checks if the ID is a valid UUID.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid ID format: %w", err)
	}
	return nil
}

// NewID generates a new UUID v4.
func NewID() ID {
	return ID(uuid.New().String())
}

// ─────────────────────────────────────────────────────────────────────────────
// Timestamp
// ─────────────────────────────────────────────────────────────────────────────

// Timestamp is a time.Time alias with RFC 3339 JSON serialization.
type Timestamp time.Time

// NewTimestamp returns the current UTC time as a Timestamp.
func NewTimestamp() Timestamp {
	return Timestamp(time.Now().UTC())
}

// ToUnixMilli returns the timestamp in milliseconds since Unix epoch.
func (t Timestamp) ToUnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

// FromUnixMilli converts milliseconds since Unix epoch to a Timestamp.
func FromUnixMilli(msec int64) Timestamp {
	return Timestamp(time.UnixMilli(msec).UTC())
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Envelope
// ─────────────────────────────────────────────────────────────────────────────

// ErrorDetail provides structured error information for output documents.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// NewErrorDetail converts err into an ErrorDetail.  It returns nil for a nil
// error.
func NewErrorDetail(err error) *ErrorDetail {
	if err == nil {
		return nil
	}
	d := &ErrorDetail{Code: string(errors.GetCode(err)), Message: err.Error()}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		d.Message = appErr.Message
		d.Detail = appErr.Detail
	}
	return d
}

// APIResponse is the generic wrapper for every JSON document the tool emits.
type APIResponse[T any] struct {
	Success   bool         `json:"success"`
	Data      T            `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp Timestamp    `json:"timestamp"`
}

// NewSuccessResponse creates a successful APIResponse.
func NewSuccessResponse[T any](requestID string, data T) APIResponse[T] {
	return APIResponse[T]{
		Success:   true,
		Data:      data,
		RequestID: requestID,
		Timestamp: NewTimestamp(),
	}
}

// NewErrorResponse creates a failed APIResponse from err.
func NewErrorResponse(requestID string, err error) APIResponse[any] {
	return APIResponse[any]{
		Success:   false,
		Error:     NewErrorDetail(err),
		RequestID: requestID,
		Timestamp: NewTimestamp(),
	}
}

//Personal.AI order the ending
