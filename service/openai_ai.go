package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/tieubaoca/pdfchat-be/types"
)

// OpenAIService generates replies through an OpenAI-compatible endpoint,
// which also covers local servers that speak the same protocol.
type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *OpenAIService) Respond(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Model: s.model,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response generated", types.ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
