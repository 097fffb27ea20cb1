package capture

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"log/slog"
	"sync"

	"github.com/myrjola/snapsolve/internal/errors"
)

var (
	// ErrCameraAccess signals that camera permission was denied or no
	// compatible device exists. It is logged and never surfaced as an
	// answer result.
	ErrCameraAccess = errors.NewSentinel("camera access denied or unavailable")
	// ErrSessionActive signals that a capture session is already running.
	ErrSessionActive = errors.NewSentinel("capture session already active")
)

// Track is one hardware track of a camera stream. Every track must be stopped
// when the session ends or the camera indicator stays lit on the device.
type Track interface {
	Stop()
}

// Stream is a live camera stream producing preview frames.
type Stream interface {
	// Frame returns the current video frame.
	Frame() (image.Image, error)
	// Tracks lists the hardware tracks backing the stream.
	Tracks() []Track
}

// Device opens an environment-facing camera stream. Open reports
// ErrCameraAccess when permission is denied or no device is compatible.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Camera coordinates capture sessions over a device. Only one session may be
// active at a time; the guard is explicit rather than an emergent property of
// disabled UI affordances.
type Camera struct {
	device Device
	logger *slog.Logger

	mu     sync.Mutex
	active bool
}

func NewCamera(device Device, logger *slog.Logger) *Camera {
	return &Camera{
		device: device,
		logger: logger.With("source", "Camera"),
	}
}

// StartCapture acquires the camera and begins a live preview session.
func (c *Camera) StartCapture(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return nil, ErrSessionActive
	}
	stream, err := c.device.Open(ctx)
	if err != nil {
		err = errors.Wrap(err, "open camera device")
		// Capture simply stays unavailable; this failure never reaches
		// the answer flow.
		c.logger.LogAttrs(ctx, slog.LevelWarn, "camera unavailable", errors.SlogError(err))
		return nil, errors.Join(ErrCameraAccess, err)
	}
	c.active = true
	return &Session{
		camera: c,
		stream: stream,
	}, nil
}

// Session is an exclusive handle on a live camera stream.
type Session struct {
	camera *Camera
	stream Stream

	releaseOnce sync.Once
}

const jpegQuality = 90

// CaptureFrame draws the current video frame into a raster buffer, encodes it
// as JPEG, and releases the camera. The tracks are stopped on every exit path,
// success or failure.
func (s *Session) CaptureFrame() (Payload, error) {
	defer s.release()

	frame, err := s.stream.Frame()
	if err != nil {
		return Payload{}, errors.Wrap(err, "read video frame")
	}

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Payload{}, errors.Wrap(err, "encode frame")
	}

	return Payload{
		Data:     buf.Bytes(),
		MIMEType: "image/jpeg",
	}, nil
}

// Close releases the camera without capturing. It covers abandonment paths
// such as the user navigating away mid-preview.
func (s *Session) Close() {
	s.release()
}

func (s *Session) release() {
	s.releaseOnce.Do(func() {
		for _, track := range s.stream.Tracks() {
			track.Stop()
		}
		s.camera.mu.Lock()
		s.camera.active = false
		s.camera.mu.Unlock()
	})
}
