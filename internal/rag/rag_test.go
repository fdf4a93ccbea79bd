package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"contract-assistant/internal/models"
	"contract-assistant/internal/vectorstore"
)

type stubStore struct {
	results []vectorstore.Result
	err     error
}

func (s *stubStore) Add(context.Context, []vectorstore.Entry) error { return nil }

func (s *stubStore) Search(context.Context, []float32, int) ([]vectorstore.Result, error) {
	return s.results, s.err
}

func (s *stubStore) Count(context.Context) (int, error) { return len(s.results), nil }

func (s *stubStore) Close() error { return nil }

type stubEmbedder struct{}

func (stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubModel struct {
	answer   string
	err      error
	messages []llms.MessageContent
	tokens   []string
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.StreamingFunc != nil {
		for _, token := range m.tokens {
			if err := opts.StreamingFunc(ctx, []byte(token)); err != nil {
				return nil, err
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.answer}},
	}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.answer, m.err
}

func retrievedResults() []vectorstore.Result {
	return []vectorstore.Result{
		{Content: "termination text", SourceFilename: "/tmp/upload/master.pdf", PageNumber: 3},
		{Content: "more termination text", SourceFilename: "/tmp/upload/master.pdf", PageNumber: 3},
		{Content: "payment text", SourceFilename: "/tmp/upload/master.pdf", PageNumber: 5},
		{Content: "nda text", SourceFilename: "nda.txt", PageNumber: 1},
	}
}

func TestAnswerReturnsTextAndCitations(t *testing.T) {
	model := &stubModel{answer: "The contract terminates after 30 days."}
	chain := NewChain(&stubStore{results: retrievedResults()}, stubEmbedder{}, model, 4)

	answer, err := chain.Answer(context.Background(), "What is the termination clause?")
	require.NoError(t, err)

	assert.Equal(t, "The contract terminates after 30 days.", answer.Text)
	// deduplicated by (basename, page), first-occurrence order
	assert.Equal(t, []models.Citation{
		{SourceFile: "master.pdf", PageNumber: 3},
		{SourceFile: "master.pdf", PageNumber: 5},
		{SourceFile: "nda.txt", PageNumber: 1},
	}, answer.Citations)
}

func TestAnswerPromptContainsRetrievedContext(t *testing.T) {
	model := &stubModel{answer: "ok"}
	chain := NewChain(&stubStore{results: retrievedResults()}, stubEmbedder{}, model, 4)

	_, err := chain.Answer(context.Background(), "question?")
	require.NoError(t, err)

	require.Len(t, model.messages, 2)
	system := model.messages[0]
	assert.Equal(t, llms.ChatMessageTypeSystem, system.Role)
	text, ok := system.Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "termination text")
	assert.Contains(t, text.Text, "payment text")
	assert.Contains(t, text.Text, "expert legal assistant")
}

func TestAnswerEmptyIndex(t *testing.T) {
	chain := NewChain(&stubStore{err: vectorstore.ErrEmptyIndex}, stubEmbedder{}, &stubModel{}, 4)

	_, err := chain.Answer(context.Background(), "anything?")
	assert.ErrorIs(t, err, vectorstore.ErrEmptyIndex)
}

func TestAnswerEmptyQuestion(t *testing.T) {
	chain := NewChain(&stubStore{}, stubEmbedder{}, &stubModel{}, 4)

	_, err := chain.Answer(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAnswerModelFailure(t *testing.T) {
	model := &stubModel{err: errors.New("upstream unavailable")}
	chain := NewChain(&stubStore{results: retrievedResults()}, stubEmbedder{}, model, 4)

	_, err := chain.Answer(context.Background(), "question?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating answer")
}

func TestStreamForwardsTokens(t *testing.T) {
	model := &stubModel{answer: "full answer", tokens: []string{"full ", "answer"}}
	chain := NewChain(&stubStore{results: retrievedResults()}, stubEmbedder{}, model, 4)

	var streamed string
	answer, err := chain.Stream(context.Background(), "question?", func(_ context.Context, chunk []byte) error {
		streamed += string(chunk)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "full answer", streamed)
	assert.Equal(t, "full answer", answer.Text)
	assert.NotEmpty(t, answer.Citations)
}

func TestFormat(t *testing.T) {
	answer := &models.Answer{
		Text: "Concise answer.",
		Citations: []models.Citation{
			{SourceFile: "master.pdf", PageNumber: 3},
			{SourceFile: "nda.txt", PageNumber: 1},
		},
	}

	formatted := Format(answer)

	assert.Contains(t, formatted, "Concise answer.")
	assert.Contains(t, formatted, "**Sources:**")
	assert.Contains(t, formatted, "- master.pdf (Page 3)")
	assert.Contains(t, formatted, "- nda.txt (Page 1)")
}

func TestFormatNoCitations(t *testing.T) {
	formatted := Format(&models.Answer{Text: "Answer."})
	assert.Equal(t, "Answer.", formatted)
}
