package http

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/http.go -package=mocks . IClient
type IClient interface {
	DoHTTPRequest(ctx context.Context, requestParam *RequestParam) error
}

type RequestParam struct {
	RequestURI string
	Method     string
	Header     map[string]string
	// Body may be nil, an io.Reader, a []byte, a string, or any
	// JSON-marshalable value.
	Body interface{}
	// Response receives the response body: a *[]byte takes the raw
	// bytes, anything else is decoded as JSON.
	Response interface{}

	Timeout time.Duration
}
