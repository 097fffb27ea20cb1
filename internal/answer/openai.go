package answer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/myrjola/snapsolve/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 4096

// OpenAIEngine answers questions through an OpenAI vision-capable chat model.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

func NewOpenAIEngine(apiKey, model string) *OpenAIEngine {
	if model == "" {
		model = openai.GPT4VisionPreview
	}
	return &OpenAIEngine{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (e *OpenAIEngine) Name() string {
	return "openai"
}

func (e *OpenAIEngine) Answer(ctx context.Context, image []byte, mimeType, question string) (Result, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	completion, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     e.model,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeText,
							Text: question,
						},
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL:    dataURL,
								Detail: openai.ImageURLDetailAuto,
							},
						},
					},
				},
			},
		},
	)
	if err != nil {
		return Result{}, errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return Result{}, errors.New("chat completion has no choices")
	}
	result, err := ParseReply(completion.Choices[0].Message.Content)
	if err != nil {
		return Result{}, errors.Wrap(err, "parse reply")
	}
	return result, nil
}
