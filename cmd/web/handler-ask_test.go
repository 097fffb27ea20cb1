package main

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/submit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_ask(t *testing.T) {
	server := startTestServer(t, io.Discard)
	ctx := context.Background()
	img := testImagePNG(t)

	t.Run("success includes answer and diagram", func(t *testing.T) {
		result, err := server.Client().AskImage(ctx, img, "solve this")
		require.NoError(t, err)
		assert.Equal(t, answer.StatusSuccess, result.Status)
		assert.NotEmpty(t, result.Answer)
		assert.True(t, result.HasDiagram())
	})

	t.Run("engine failure maps to error result", func(t *testing.T) {
		result, err := server.Client().AskImage(ctx, img, "fail")
		require.NoError(t, err)
		assert.Equal(t, answer.StatusError, result.Status)
		assert.Equal(t, submit.FailureMessage, result.Answer)
		assert.False(t, result.HasDiagram())
	})

	t.Run("missing image is a client error", func(t *testing.T) {
		body := new(bytes.Buffer)
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("question", "solve this"))
		require.NoError(t, writer.Close())

		resp := postMultipart(t, server.URL()+"/ask", writer.FormDataContentType(), body)
		defer func() {
			require.NoError(t, resp.Body.Close())
		}()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-image payload is rejected", func(t *testing.T) {
		body := new(bytes.Buffer)
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("image", "question-image")
		require.NoError(t, err)
		_, err = part.Write([]byte("plain text, not an image"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		resp := postMultipart(t, server.URL()+"/ask", writer.FormDataContentType(), body)
		defer func() {
			require.NoError(t, resp.Body.Close())
		}()
		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	})
}

func postMultipart(t *testing.T, url, contentType string, body io.Reader) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, body) //nolint:noctx // test helper
	require.NoError(t, err)
	return resp
}
