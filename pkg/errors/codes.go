package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Aliases used by call sites.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeNotImplemented = ErrCodeNotImplemented
	CodeCacheError     = ErrCodeCacheError
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	CodeMoleculeNotFound = ErrCodeMoleculeNotFound
	CodeQueryAsTarget    = ErrCodeQueryAsTarget
	CodeSearchFailed     = ErrCodeSearchFailed
)

// Molecule Module Error Codes
const (
	ErrCodeMoleculeInvalidFormat    ErrorCode = "MOL_003"
	ErrCodeMoleculeNotFound         ErrorCode = "MOL_004"
	ErrCodeMoleculeParsingFailed    ErrorCode = "MOL_006"
	ErrCodeSubstructureSearchFailed ErrorCode = "MOL_012"
	ErrCodeInvalidGraph             ErrorCode = "MOL_016"
)

// MCS Engine Error Codes
const (
	ErrCodeInvalidSearchConfig   ErrorCode = "MCS_001"
	ErrCodeQueryAsTarget         ErrorCode = "MCS_002"
	ErrCodeCompatibilityTooLarge ErrorCode = "MCS_003"
	ErrCodeSearchFailed          ErrorCode = "MCS_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeMoleculeInvalidFormat:    http.StatusBadRequest,
	ErrCodeMoleculeNotFound:         http.StatusNotFound,
	ErrCodeMoleculeParsingFailed:    http.StatusBadRequest,
	ErrCodeSubstructureSearchFailed: http.StatusInternalServerError,
	ErrCodeInvalidGraph:             http.StatusBadRequest,

	ErrCodeInvalidSearchConfig:   http.StatusBadRequest,
	ErrCodeQueryAsTarget:         http.StatusBadRequest,
	ErrCodeCompatibilityTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeSearchFailed:          http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeMoleculeInvalidFormat:    "unsupported molecule format",
	ErrCodeMoleculeNotFound:         "molecule not found",
	ErrCodeMoleculeParsingFailed:    "failed to parse molecule",
	ErrCodeSubstructureSearchFailed: "substructure search failed",
	ErrCodeInvalidGraph:             "invalid molecule graph",

	ErrCodeInvalidSearchConfig:   "invalid search configuration",
	ErrCodeQueryAsTarget:         "query graph supplied as target",
	ErrCodeCompatibilityTooLarge: "compatibility graph exceeds node limit",
	ErrCodeSearchFailed:          "mcs search failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ExitCodeForCode maps an ErrorCode onto a process exit status for the CLI:
// 2 for caller mistakes, 1 for everything else.
func ExitCodeForCode(code ErrorCode) int {
	if IsClientError(code) {
		return 2
	}
	return 1
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
