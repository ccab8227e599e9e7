package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// systemPersona fixes the assistant's role for every interpretation request.
const systemPersona = "You are a financial analyst specializing in options strategies."

const (
	defaultModel          = "gpt-4o"
	completionTemperature = 0.7
	completionMaxTokens   = 600
)

// OpenAIService requests a natural-language interpretation of the assembled
// market-data prompt from the OpenAI chat completion API.
type OpenAIService struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewOpenAIService creates a new OpenAI interpretation service. An empty
// model selects the default; a non-empty baseURL redirects the API (tests).
func NewOpenAIService(apiKey, model, baseURL string) *OpenAIService {
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Interpret sends the prompt with the fixed analyst persona and returns the
// free-text response. No retry is attempted; errors surface to the caller.
func (s *OpenAIService) Interpret(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	s.logger.WithField("model", s.model).Debug("Received AI interpretation")
	return resp.Choices[0].Message.Content, nil
}
