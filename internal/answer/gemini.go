package answer

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/myrjola/snapsolve/internal/errors"
	"google.golang.org/api/option"
)

// GeminiEngine answers questions through a Gemini multimodal model.
type GeminiEngine struct {
	apiKey string
	model  string
}

func NewGeminiEngine(apiKey, model string) *GeminiEngine {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiEngine{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
}

func (e *GeminiEngine) Name() string {
	return "gemini"
}

func (e *GeminiEngine) Answer(ctx context.Context, image []byte, mimeType, question string) (Result, error) {
	if e.apiKey == "" {
		return Result{}, errors.New("gemini API key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return Result{}, errors.Wrap(err, "new genai client")
	}
	defer func() {
		_ = client.Close()
	}()

	model := client.GenerativeModel(e.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.GenerationConfig.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Text(question),
		&genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		return Result{}, errors.Wrap(err, "generate content")
	}

	var reply strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				reply.WriteString(string(text))
			}
		}
		break
	}

	result, err := ParseReply(reply.String())
	if err != nil {
		return Result{}, errors.Wrap(err, "parse reply")
	}
	return result, nil
}
