package capture_test

import (
	"context"
	"image"
	"io"
	"testing"

	"github.com/myrjola/snapsolve/internal/capture"
	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/myrjola/snapsolve/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

type fakeTrack struct {
	stopped bool
}

func (t *fakeTrack) Stop() {
	t.stopped = true
}

type fakeStream struct {
	tracks   []*fakeTrack
	frame    image.Image
	frameErr error
}

func (s *fakeStream) Frame() (image.Image, error) {
	if s.frameErr != nil {
		return nil, s.frameErr
	}
	return s.frame, nil
}

func (s *fakeStream) Tracks() []capture.Track {
	tracks := make([]capture.Track, len(s.tracks))
	for i, t := range s.tracks {
		tracks[i] = t
	}
	return tracks
}

type fakeDevice struct {
	stream  *fakeStream
	openErr error
}

func (d *fakeDevice) Open(_ context.Context) (capture.Stream, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.stream, nil
}

func newFakeDevice(frameErr error) *fakeDevice {
	return &fakeDevice{
		stream: &fakeStream{
			tracks:   []*fakeTrack{{}, {}},
			frame:    image.NewRGBA(image.Rect(0, 0, 4, 4)),
			frameErr: frameErr,
		},
		openErr: nil,
	}
}

func TestCameraCaptureFrame(t *testing.T) {
	logger := testhelpers.NewLogger(io.Discard)
	device := newFakeDevice(nil)
	camera := capture.NewCamera(device, logger)

	session, err := camera.StartCapture(context.Background())
	require.NoError(t, err)

	payload, err := session.CaptureFrame()
	require.NoError(t, err)
	require.False(t, payload.Empty())
	require.Equal(t, "image/jpeg", payload.MIMEType)

	for _, track := range device.stream.tracks {
		require.True(t, track.stopped, "all tracks must be stopped after capture")
	}
}

func TestCameraCaptureFrameFailureReleasesTracks(t *testing.T) {
	logger := testhelpers.NewLogger(io.Discard)
	device := newFakeDevice(errors.NewSentinel("frame unavailable"))
	camera := capture.NewCamera(device, logger)

	session, err := camera.StartCapture(context.Background())
	require.NoError(t, err)

	_, err = session.CaptureFrame()
	require.Error(t, err)

	for _, track := range device.stream.tracks {
		require.True(t, track.stopped, "tracks must be stopped on the failure path too")
	}

	// The camera is free for a new session after the failed capture.
	session, err = camera.StartCapture(context.Background())
	require.NoError(t, err)
	session.Close()
}

func TestCameraSingleSession(t *testing.T) {
	logger := testhelpers.NewLogger(io.Discard)
	device := newFakeDevice(nil)
	camera := capture.NewCamera(device, logger)

	session, err := camera.StartCapture(context.Background())
	require.NoError(t, err)

	_, err = camera.StartCapture(context.Background())
	require.ErrorIs(t, err, capture.ErrSessionActive)

	// Abandonment path releases the tracks and the session slot.
	session.Close()
	for _, track := range device.stream.tracks {
		require.True(t, track.stopped)
	}

	_, err = camera.StartCapture(context.Background())
	require.NoError(t, err)
}

func TestCameraAccessDenied(t *testing.T) {
	logger := testhelpers.NewLogger(io.Discard)
	device := &fakeDevice{stream: nil, openErr: errors.NewSentinel("permission denied")}
	camera := capture.NewCamera(device, logger)

	_, err := camera.StartCapture(context.Background())
	require.ErrorIs(t, err, capture.ErrCameraAccess)

	// Denied access must not leave the session slot occupied.
	device.openErr = nil
	device.stream = newFakeDevice(nil).stream
	_, err = camera.StartCapture(context.Background())
	require.NoError(t, err)
}
