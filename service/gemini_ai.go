package service

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tieubaoca/pdfchat-be/types"
)

// GeminiService generates replies through the Gemini API with a fixed
// model. An absent or bad API key is not a startup error; it degrades every
// request to types.ErrUpstream instead.
type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (s *GeminiService) Respond(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no response generated", types.ErrUpstream)
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	if content == "" {
		return "", fmt.Errorf("%w: empty response", types.ErrUpstream)
	}
	return content, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}
