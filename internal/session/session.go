// Package session provides reading session persistence.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// File represents a saved reading session (.xrsession): the analyzed image,
// the findings, and the generated report, so a reading can be reopened and
// reviewed later.
type File struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Image path (relative to the session file when possible)
	ImagePath string `json:"image,omitempty"`

	// Analysis output
	Findings []Finding `json:"findings,omitempty"`
	Markers  []string  `json:"markers,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Report   string    `json:"report,omitempty"`

	// User settings active when the session was saved
	Settings Settings `json:"settings,omitempty"`
}

// Finding is one classifier prediction recorded in the session.
type Finding struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Settings holds the overlay preferences for the session.
type Settings struct {
	OverlayAlpha float64 `json:"overlay_alpha,omitempty"`
	MaxRegions   int     `json:"max_regions,omitempty"`
}

// New creates a new session file.
func New() *File {
	now := time.Now()
	return &File{
		Version:  1,
		Created:  now,
		Modified: now,
	}
}

// Load loads a session from a .xrsession file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sess File
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Save saves the session to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetImage sets the image path, stored relative to the session file when
// both share a common root.
func (f *File) SetImage(sessionPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(sessionPath), imagePath)
	if err != nil {
		f.ImagePath = imagePath
	} else {
		f.ImagePath = rel
	}
	f.Modified = time.Now()
}

// GetImagePath returns the absolute path to the session's image.
func (f *File) GetImagePath(sessionPath string) string {
	if f.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(f.ImagePath) {
		return f.ImagePath
	}
	return filepath.Join(filepath.Dir(sessionPath), f.ImagePath)
}
