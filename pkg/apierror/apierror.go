package apierror

import (
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories the API can report.
// Every kind maps to exactly one HTTP status, machine code and
// user-safe message; callers branch on the code, never on the message.
type Kind int

const (
	KindDatabase Kind = iota
	KindAuth
	KindValidation
	KindNotFound
	KindInternal
	KindBadRequest
	KindUnauthorized
	KindRateLimitExceeded
	KindInvalidTaxID
)

type kindInfo struct {
	status  int
	code    string
	message string
}

var kinds = map[Kind]kindInfo{
	KindDatabase:          {http.StatusInternalServerError, "DATABASE_ERROR", "Database error occurred"},
	KindAuth:              {http.StatusUnauthorized, "AUTH_FAILED", "Invalid credentials"},
	KindValidation:        {http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed"},
	KindNotFound:          {http.StatusNotFound, "NOT_FOUND", "Resource not found"},
	KindInternal:          {http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	KindBadRequest:        {http.StatusBadRequest, "BAD_REQUEST", "Bad request"},
	KindUnauthorized:      {http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
	KindRateLimitExceeded: {http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded"},
	KindInvalidTaxID:      {http.StatusBadRequest, "INVALID_TAX_ID", "Invalid tax identifier"},
}

// APIError is the only error shape that crosses the service boundary.
// Details is caller-supplied context and is serialized only for the
// Validation and BadRequest kinds; Internal carries backend detail for
// the diagnostic log and is never sent to the caller.
type APIError struct {
	Kind       Kind   `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Internal   string `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an APIError of the given kind with its fixed status, code
// and message. Detail text is echoed back to the caller only for kinds
// whose content originated from the caller itself; for every other kind
// it is routed to the diagnostic log.
func New(kind Kind, detail string) *APIError {
	info := kinds[kind]

	err := &APIError{
		Kind:       kind,
		Code:       info.code,
		Message:    info.message,
		HTTPStatus: info.status,
	}

	if kind.EchoesDetails() {
		err.Details = detail
	} else {
		err.Internal = detail
	}

	return err
}

// Wrap attaches an internal cause to a kind. The cause text reaches the
// diagnostic log only.
func Wrap(kind Kind, cause error) *APIError {
	if cause == nil {
		return New(kind, "")
	}

	return New(kind, cause.Error())
}

// EchoesDetails reports whether this kind may include caller-supplied
// context in the response body.
func (k Kind) EchoesDetails() bool {
	return k == KindValidation || k == KindBadRequest
}
