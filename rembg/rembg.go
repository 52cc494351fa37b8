package rembg

import (
	"context"
	"errors"
)

// ErrSessionUnavailable reports that the background-removal backend
// could not be reached when the process started.
var ErrSessionUnavailable = errors.New("background removal service unavailable")

// Remover strips the background from an encoded image, returning the
// result as encoded bytes with an alpha channel.
type Remover interface {
	Remove(ctx context.Context, data []byte) ([]byte, error)
}

type unavailable struct {
	err error
}

// Unavailable returns a Remover whose every call fails with
// ErrSessionUnavailable. It stands in for a session that failed to
// initialize; there is no cold retry per request.
func Unavailable(err error) Remover {
	return &unavailable{err: err}
}

func (u *unavailable) Remove(ctx context.Context, data []byte) ([]byte, error) {
	if u.err != nil {
		return nil, errors.Join(ErrSessionUnavailable, u.err)
	}
	return nil, ErrSessionUnavailable
}
