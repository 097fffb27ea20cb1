package flow_test

import (
	"testing"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/flow"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	c := flow.NewController()
	require.Equal(t, flow.Idle, c.State())
	_, ok := c.Result()
	require.False(t, ok)

	c.Begin()
	require.Equal(t, flow.Loading, c.State())

	first := answer.Result{Status: answer.StatusSuccess, Answer: "first"}
	c.Finish(first)
	require.Equal(t, flow.Presented, c.State())
	got, ok := c.Result()
	require.True(t, ok)
	require.Equal(t, first, got)

	// A new action discards the prior result before Loading is observable.
	c.Begin()
	require.Equal(t, flow.Loading, c.State())
	_, ok = c.Result()
	require.False(t, ok, "prior result must be discarded on Begin")

	second := answer.Result{Status: answer.StatusError, Answer: "second"}
	c.Finish(second)
	got, ok = c.Result()
	require.True(t, ok)
	require.Equal(t, second, got)
}

func TestControllerCameraFlagIsIndependent(t *testing.T) {
	c := flow.NewController()
	require.False(t, c.CameraActive())

	c.SetCameraActive(true)
	c.Begin()
	require.True(t, c.CameraActive(), "answer flow transitions must not touch the camera flag")
	require.Equal(t, flow.Loading, c.State())

	c.SetCameraActive(false)
	require.Equal(t, flow.Loading, c.State())
}
