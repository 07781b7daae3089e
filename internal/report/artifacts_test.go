package report

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestArtifactsLifecycle(t *testing.T) {
	art, err := NewArtifacts()
	require.NoError(t, err)

	img := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
	defer img.Close()

	path, err := art.SavePNG("combined", img)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.Equal(t, []string{path}, art.Paths())

	require.NoError(t, art.Close())
	require.NoFileExists(t, path)

	_, err = os.Stat(art.Dir())
	require.Error(t, err)
}

func TestArtifactsRejectEmptyImage(t *testing.T) {
	art, err := NewArtifacts()
	require.NoError(t, err)
	defer art.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	_, err = art.SavePNG("empty", empty)
	require.Error(t, err)
}
