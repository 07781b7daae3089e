package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reading.xrsession")

	sess := New()
	sess.SetImage(path, filepath.Join(dir, "scans", "chest.png"))
	sess.Findings = []Finding{
		{Class: "Pneumonia", Confidence: 0.85},
		{Class: "Normal", Confidence: 0.10},
	}
	sess.Summary = "Findings suggest possible Pneumonia"
	sess.Settings = Settings{OverlayAlpha: 0.6, MaxRegions: 3}

	require.NoError(t, sess.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, sess.Findings, loaded.Findings)
	require.Equal(t, sess.Summary, loaded.Summary)
	require.Equal(t, sess.Settings, loaded.Settings)

	// Image path is stored relative and resolved back to absolute
	require.Equal(t, filepath.Join("scans", "chest.png"), loaded.ImagePath)
	require.Equal(t, filepath.Join(dir, "scans", "chest.png"), loaded.GetImagePath(path))
}

func TestSessionAbsoluteImagePathKept(t *testing.T) {
	sess := New()
	sess.ImagePath = "/data/chest.png"
	require.Equal(t, "/data/chest.png", sess.GetImagePath("/elsewhere/reading.xrsession"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xrsession")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
