package capture_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myrjola/snapsolve/internal/capture"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "question.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestSelectFile(t *testing.T) {
	path := writeTestPNG(t)

	payload, err := capture.SelectFile(path)
	require.NoError(t, err)
	require.False(t, payload.Empty())
	require.Equal(t, "image/png", payload.MIMEType)

	preview := payload.PreviewDataURL()
	require.True(t, strings.HasPrefix(preview, "data:image/png;base64,"))
}

func TestSelectFileRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0o600))

	_, err := capture.SelectFile(path)
	require.ErrorIs(t, err, capture.ErrNotImage)
}

func TestSelectFileMissing(t *testing.T) {
	_, err := capture.SelectFile(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
