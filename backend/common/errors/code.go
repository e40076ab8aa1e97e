package errors

import "errors"

// Generic error codes
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
)

// Listing error codes
const (
	ErrEmptyID         = "ERR_EMPTY_ID"
	ErrListingNotFound = "ERR_LISTING_NOT_FOUND"
)

// Gate error codes
const (
	ErrBadCredential = "ERR_BAD_CREDENTIAL"
	ErrGateLocked    = "ERR_GATE_LOCKED"
	ErrTokenExpired  = "ERR_TOKEN_EXPIRED"
)

// CodedError carries a stable error code next to the human-readable message.
type CodedError struct {
	Code string
	Msg  string
	Err  error
}

func (e *CodedError) Error() string {
	return e.Msg
}

func (e *CodedError) ErrorCode() string {
	return e.Code
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// New creates a coded error with the given message.
func New(code string, msg string) *CodedError {
	return &CodedError{Code: code, Msg: msg, Err: errors.New(msg)}
}

// Wrap attaches a code and message to an existing error.
func Wrap(err error, code string, msg string) *CodedError {
	return &CodedError{Code: code, Msg: msg, Err: err}
}

// Is reports whether err carries the given error code.
func Is(err error, code string) bool {
	var codedErr *CodedError
	if errors.As(err, &codedErr) {
		return codedErr.Code == code
	}
	return false
}
