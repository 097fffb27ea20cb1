package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/e2etest"
	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/myrjola/snapsolve/internal/logging"
)

// smokeImage encodes a small PNG so the smoke test does not depend on files.
func smokeImage() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// TestAsk submits an image through the wire contract and checks the result shape.
func TestAsk(client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute) //nolint:mnd // engine latency
	defer cancel()

	img, err := smokeImage()
	if err != nil {
		return errors.Wrap(err, "build smoke image")
	}

	result, err := client.AskImage(ctx, img, answer.QuestionPrompt)
	if err != nil {
		return errors.Wrap(err, "ask image")
	}
	if result.Status != answer.StatusSuccess && result.Status != answer.StatusError {
		return errors.New("unexpected result status", slog.String("status", string(result.Status)))
	}
	if result.Answer == "" {
		return errors.New("empty answer")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestAsk(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing ask", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
