package rembg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	nhttp "github.com/chaos-io/photo2gif/util/http"
)

const removePath = "/api/remove"

// Session is a process-wide handle to a rembg-compatible HTTP backend.
// It is created once at startup and is safe for concurrent use; it is
// never mutated afterwards.
type Session struct {
	baseURL string
	cli     nhttp.IClient
}

// NewSession probes the backend and returns a ready session. A probe
// failure means the model server is not up; callers are expected to
// fall back to Unavailable rather than retrying per request.
func NewSession(ctx context.Context, baseURL string) (*Session, error) {
	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		cli:     nhttp.NewHTTPClient(),
	}
	if err := s.ping(ctx); err != nil {
		return nil, fmt.Errorf("probe rembg backend %s: %w", s.baseURL, err)
	}
	return s, nil
}

func (s *Session) ping(ctx context.Context) error {
	return s.cli.DoHTTPRequest(ctx, &nhttp.RequestParam{
		RequestURI: s.baseURL + "/",
		Method:     "GET",
	})
}

// Remove uploads the raw image bytes and returns the backend's
// background-removed rendition (PNG bytes with alpha).
func (s *Session) Remove(ctx context.Context, data []byte) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "input.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	_ = writer.Close()

	var out []byte
	reqParam := &nhttp.RequestParam{
		RequestURI: s.baseURL + removePath,
		Method:     "POST",
		Header:     map[string]string{"Content-Type": writer.FormDataContentType()},
		Body:       body,
		Response:   &out,
	}
	if err := s.cli.DoHTTPRequest(ctx, reqParam); err != nil {
		return nil, fmt.Errorf("remove background: %w", err)
	}
	if len(out) == 0 {
		return nil, errors.New("remove background: empty response")
	}

	return out, nil
}
