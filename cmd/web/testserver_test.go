package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"testing"

	"github.com/myrjola/snapsolve/internal/e2etest"
	"github.com/stretchr/testify/require"
)

// TestMain runs the tests from the repository root so that the template and
// static file paths resolve.
func TestMain(m *testing.M) {
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "SNAPSOLVE_ADDR":
		return "localhost:0", true
	case "SNAPSOLVE_ENGINE":
		return "stub", true
	default:
		return "", false
	}
}

func startTestServer(t *testing.T, logSink io.Writer) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(context.Background(), logSink, testLookupEnv, run)
	require.NoError(t, err)
	return server
}

// testImagePNG encodes a small valid PNG for submissions.
func testImagePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 0, A: 255}) //nolint:gosec // bounded
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
