package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaos-io/photo2gif/imaging"
	"github.com/chaos-io/photo2gif/rembg"
	"github.com/chaos-io/photo2gif/scratch"
)

const (
	// MaxUploadBytes caps accepted uploads at 10 MiB.
	MaxUploadBytes = 10 << 20

	// maxRemovalEdge caps the longest edge shipped to the removal
	// backend; larger inputs are downscaled first.
	maxRemovalEdge = 2048

	// maxMultipartOverhead is the allowance for multipart boundaries
	// and part headers when the whole request's Content-Length stands
	// in for the file size. A file of exactly MaxUploadBytes must pass
	// the pre-filter; the per-part checks below are authoritative.
	maxMultipartOverhead = 64 << 10
)

var supportedExts = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"}

var (
	tooLargeDetail       = fmt.Sprintf("File too large: limit is %d bytes", MaxUploadBytes)
	unsupportedDetail    = "Unsupported file format, supported: " + strings.Join(supportedExts, ", ")
	unavailableDetail    = "Background removal service unavailable"
	removalFailedDetail  = "Background removal failed"
	internalServerDetail = "Internal server error"
)

type convertResult struct {
	name string
	path string
}

func (s *Server) handleConvert(c *gin.Context) {
	res, cerr := s.convert(c)
	if cerr != nil {
		s.renderError(c, cerr)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.name))
	c.Header("Content-Type", "image/gif")
	c.File(res.path)
}

func (s *Server) renderError(c *gin.Context, cerr *ConvertError) {
	detail := cerr.Detail

	switch cerr.Kind {
	case KindInternal:
		// Full detail stays server-side only.
		s.log.Error("conversion failed", "detail", cerr.Detail, "error", cerr.Err)
		detail = internalServerDetail
	case KindRemoval:
		s.log.Warn("background removal failed", "error", cerr.Err)
		if cerr.Err != nil && !errors.Is(cerr.Err, rembg.ErrSessionUnavailable) {
			detail = cerr.Detail + ": " + firstLine(cerr.Err.Error())
		}
	}

	c.JSON(cerr.Status(), gin.H{"detail": detail})
}

// convert runs the validation sequence and the removal/encode pipeline.
// Every failure short-circuits with a kind-tagged error.
func (s *Server) convert(c *gin.Context) (*convertResult, *ConvertError) {
	// Declared size is an untrusted, coarse pre-filter; the per-part
	// and actual-byte checks below are authoritative. It runs before
	// the form is parsed, so a request that is both oversized and
	// nameless is rejected 413, not 400.
	if c.Request.ContentLength > MaxUploadBytes+maxMultipartOverhead {
		return nil, tooLargeErr(tooLargeDetail)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return nil, validationErr("No filename provided")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !supported(ext) {
		return nil, validationErr(unsupportedDetail)
	}

	if fh.Size > MaxUploadBytes {
		return nil, tooLargeErr(tooLargeDetail)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, internalErr("open upload", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return nil, internalErr("read upload", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, tooLargeErr(tooLargeDetail)
	}

	// Decode probe, independent of the removal call.
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, validationErr("Invalid image file")
	}

	if b := img.Bounds(); max(b.Dx(), b.Dy()) > maxRemovalEdge {
		small := imaging.ResizeWithinMax(imaging.ToNRGBA(img), maxRemovalEdge)
		var buf bytes.Buffer
		if err := png.Encode(&buf, small); err != nil {
			return nil, internalErr("encode resized input", err)
		}
		data = buf.Bytes()
	}

	removed, err := s.remover.Remove(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, rembg.ErrSessionUnavailable) {
			return nil, removalErr(unavailableDetail, err)
		}
		return nil, removalErr(removalFailedDetail, err)
	}

	out, err := imaging.Decode(removed)
	if err != nil {
		return nil, internalErr("decode removal output", err)
	}

	var buf bytes.Buffer
	if err := imaging.EncodeGIF(&buf, imaging.ToNRGBA(out)); err != nil {
		return nil, internalErr("encode gif", err)
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	name := base + scratch.Suffix
	path, err := s.scratch.Write(name, buf.Bytes())
	if err != nil {
		return nil, internalErr("write artifact", err)
	}

	return &convertResult{name: name, path: path}, nil
}

func supported(ext string) bool {
	for _, e := range supportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
