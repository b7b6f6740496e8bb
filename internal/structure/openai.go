package structure

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/menuscout/menuscout/internal/xerrors"
)

// OpenAIChat adapts any OpenAI-compatible chat endpoint to the Chat
// interface, for deployments that front their models with an
// OpenAI-style API instead of Ollama.
type OpenAIChat struct {
	Inner *openai.Client
	Model string
}

// NewOpenAIChat builds an adapter for baseURL (e.g. a vLLM or LM Studio
// server). apiKey may be empty for unauthenticated local servers.
func NewOpenAIChat(baseURL, apiKey, model string) *OpenAIChat {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIChat{Inner: openai.NewClientWithConfig(cfg), Model: model}
}

func (o *OpenAIChat) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := o.Inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.1,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", xerrors.Wrap(xerrors.KindStructuringUnreachable, err, "openai-compatible chat call")
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", xerrors.New(xerrors.KindStructuringMalformed, "empty assistant content")
	}
	return resp.Choices[0].Message.Content, nil
}
