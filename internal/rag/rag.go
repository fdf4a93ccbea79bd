package rag

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"

	"contract-assistant/internal/models"
	"contract-assistant/internal/vectorstore"
)

// Chain answers a question by embedding it, retrieving the nearest chunks,
// and prompting the chat model with the retrieved context.
type Chain struct {
	store    vectorstore.Store
	embedder embeddings.Embedder
	model    llms.Model
	topK     int
}

func NewChain(store vectorstore.Store, embedder embeddings.Embedder, model llms.Model, topK int) *Chain {
	if topK <= 0 {
		topK = models.DefaultTopK
	}
	return &Chain{store: store, embedder: embedder, model: model, topK: topK}
}

// Answer runs one question through the chain and returns the answer with
// deduplicated (file, page) citations.
func (c *Chain) Answer(ctx context.Context, question string) (*models.Answer, error) {
	return c.run(ctx, question, nil)
}

// Stream behaves like Answer but forwards answer tokens to fn as they arrive.
func (c *Chain) Stream(ctx context.Context, question string, fn func(ctx context.Context, chunk []byte) error) (*models.Answer, error) {
	return c.run(ctx, question, fn)
}

func (c *Chain) run(ctx context.Context, question string, streamFn func(ctx context.Context, chunk []byte) error) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question must not be empty")
	}

	queryEmbedding, err := c.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := c.store.Search(ctx, queryEmbedding, c.topK)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("retrieved", len(results)).Str("question", question).Msg("Retrieved context chunks")

	contextTexts := make([]string, len(results))
	for i, r := range results {
		contextTexts[i] = r.Content
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, fmt.Sprintf(models.SystemPromptTemplate, strings.Join(contextTexts, "\n\n"))),
		llms.TextParts(llms.ChatMessageTypeHuman, question),
	}

	opts := []llms.CallOption{llms.WithTemperature(0)}
	if streamFn != nil {
		opts = append(opts, llms.WithStreamingFunc(streamFn))
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat model returned no choices")
	}

	return &models.Answer{
		Text:      resp.Choices[0].Content,
		Citations: citationsFrom(results),
		Context:   contextTexts,
	}, nil
}

// citationsFrom builds the citation list from retrieved chunk metadata,
// deduplicated by (file basename, page number) in first-occurrence order.
func citationsFrom(results []vectorstore.Result) []models.Citation {
	seen := make(map[models.Citation]bool)
	var citations []models.Citation
	for _, r := range results {
		citation := models.Citation{
			SourceFile: filepath.Base(r.SourceFilename),
			PageNumber: r.PageNumber,
		}
		if seen[citation] {
			continue
		}
		seen[citation] = true
		citations = append(citations, citation)
	}
	return citations
}

// Format renders an answer with its citation list for display.
func Format(answer *models.Answer) string {
	var b strings.Builder
	b.WriteString(answer.Text)
	if len(answer.Citations) > 0 {
		b.WriteString("\n\n**Sources:**\n")
		for _, citation := range answer.Citations {
			b.WriteString(fmt.Sprintf("- %s (Page %d)\n", citation.SourceFile, citation.PageNumber))
		}
	}
	return b.String()
}
