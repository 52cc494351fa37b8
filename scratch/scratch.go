package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
)

// Suffix marks the artifacts this service generates; Sweep only ever
// touches files carrying it.
const Suffix = "_no_bg.gif"

// minSweepAge shields artifacts still being streamed to a caller from
// a scheduled sweep.
const minSweepAge = time.Minute

// Dir is a scratch directory for generated GIF artifacts.
type Dir struct {
	path string
}

// DefaultPath is the platform temp root plus a fixed subfolder.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "photo2gif")
}

// New ensures the directory exists and returns a handle to it.
func New(path string) (*Dir, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// Write persists one artifact and returns its full path. The stored
// name gets a ksuid prefix so concurrent conversions of the same input
// never collide.
func (d *Dir) Write(name string, data []byte) (string, error) {
	p := filepath.Join(d.path, ksuid.New().String()+"_"+filepath.Base(name))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return p, nil
}

// Sweep removes leftover artifacts, best-effort, and reports how many
// files it deleted. Files younger than minSweepAge are left alone so an
// in-flight response keeps its backing file.
func (d *Dir) Sweep() int {
	matches, err := filepath.Glob(filepath.Join(d.path, "*"+Suffix))
	if err != nil {
		return 0
	}
	removed := 0
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || time.Since(info.ModTime()) < minSweepAge {
			continue
		}
		if os.Remove(m) == nil {
			removed++
		}
	}
	return removed
}
