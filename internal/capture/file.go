package capture

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/myrjola/snapsolve/internal/errors"
)

var ErrNotImage = errors.NewSentinel("file is not an image")

// SelectFile reads exactly one file from local storage and returns it as a
// payload. Only image media types are accepted; the image content itself is
// not validated.
func SelectFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, errors.Wrap(err, "read file", slog.String("path", path))
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Payload{}, errors.Wrap(ErrNotImage, "sniff media type",
			slog.String("path", path), slog.String("mimeType", mimeType))
	}
	return Payload{
		Data:     data,
		MIMEType: mimeType,
	}, nil
}
