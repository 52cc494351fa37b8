package server

import "net/http"

// Kind separates client-caused validation failures from domain
// processing failures so the status mapping is explicit rather than a
// matter of catch ordering.
type Kind int

const (
	KindValidation Kind = iota
	KindTooLarge
	KindRemoval
	KindInternal
)

// ConvertError is the structured failure a conversion attempt yields.
type ConvertError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *ConvertError) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func (e *ConvertError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindRemoval:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func validationErr(detail string) *ConvertError {
	return &ConvertError{Kind: KindValidation, Detail: detail}
}

func tooLargeErr(detail string) *ConvertError {
	return &ConvertError{Kind: KindTooLarge, Detail: detail}
}

func removalErr(detail string, err error) *ConvertError {
	return &ConvertError{Kind: KindRemoval, Detail: detail, Err: err}
}

func internalErr(detail string, err error) *ConvertError {
	return &ConvertError{Kind: KindInternal, Detail: detail, Err: err}
}
