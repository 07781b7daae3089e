package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Artifacts owns a temporary directory of rendered overlay PNGs produced
// for one report. Callers must Close it when the report consumer is done;
// every artifact is removed on Close regardless of how many were written.
type Artifacts struct {
	dir   string
	paths []string
}

// NewArtifacts creates a fresh scoped artifact directory.
func NewArtifacts() (*Artifacts, error) {
	dir, err := os.MkdirTemp("", "xray-insight-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Artifacts{dir: dir}, nil
}

// SavePNG writes a rendered overlay under the given base name and returns
// its path.
func (a *Artifacts) SavePNG(name string, img gocv.Mat) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("refusing to save empty image %q", name)
	}
	path := filepath.Join(a.dir, name+".png")
	if ok := gocv.IMWrite(path, img); !ok {
		return "", fmt.Errorf("failed to write %s", path)
	}
	a.paths = append(a.paths, path)
	return path, nil
}

// Paths returns every artifact written so far.
func (a *Artifacts) Paths() []string {
	out := make([]string, len(a.paths))
	copy(out, a.paths)
	return out
}

// Dir returns the artifact directory.
func (a *Artifacts) Dir() string {
	return a.dir
}

// Close removes the artifact directory and everything in it.
func (a *Artifacts) Close() error {
	if a.dir == "" {
		return nil
	}
	err := os.RemoveAll(a.dir)
	a.dir = ""
	a.paths = nil
	return err
}
