package llmservice

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"contract-assistant/internal/config"
)

// NewChatModel creates the hosted chat-completion client used by the RAG chain.
func NewChatModel(cfg *config.OpenAIConfig) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ChatModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing chat model: %w", err)
	}
	return llm, nil
}
