package repository

import (
	"context"
	"fmt"

	"pdf-text-pipeline/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIChatModel implements domain.ChatModel using the OpenAI API.
type OpenAIChatModel struct {
	client openai.Client
	model  string
	logger domain.Logger
}

// NewOpenAIChatModel creates an OpenAI-backed chat model. Returns an error
// when no API key is configured.
func NewOpenAIChatModel(config domain.Config, logger domain.Logger) (*OpenAIChatModel, error) {
	apiKey := config.GetOpenAIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	model := config.GetOpenAIModel()
	if model == "" {
		return nil, fmt.Errorf("missing OpenAI model name")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIChatModel{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Complete sends a single-message chat completion and returns the reply text.
func (m *OpenAIChatModel) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	completion, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response generated")
	}
	return completion.Choices[0].Message.Content, nil
}
