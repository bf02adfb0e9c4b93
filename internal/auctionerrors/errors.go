package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrShopNotFound    = errors.New("shop not found")
	ErrInvalidDocument = errors.New("invalid auction document")
)

// Request-level errors. These fail the whole call before any item is processed.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Item-level errors. These are reported per auction and never abort a bulk run.
var (
	ErrNotOwner           = errors.New("caller does not own the auction's shop")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUpdateDataRequired = errors.New("update data is required")
)

// TransitionError reports an action attempted from a status its rule does not allow.
type TransitionError struct {
	Action  string
	Status  string
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// RequestError is a request-level failure with the message returned to the caller.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}
