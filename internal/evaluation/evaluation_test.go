package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-assistant/internal/models"
)

type stubChain struct {
	answers map[string]string
	err     error
}

func (s *stubChain) Answer(_ context.Context, question string) (*models.Answer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Answer{Text: s.answers[question]}, nil
}

func TestEvaluateAnswer(t *testing.T) {
	assert.True(t, EvaluateAnswer("The contract may be TERMINATED at any time.", []string{"terminate"}))
	assert.True(t, EvaluateAnswer("A late fee applies.", []string{"penalty", "fee"}))
	assert.False(t, EvaluateAnswer("I don't know.", []string{"payment", "invoice"}))
	assert.False(t, EvaluateAnswer("", []string{"anything"}))
}

func TestRunScoresDeterministically(t *testing.T) {
	cases := []models.EvalCase{
		{Question: "q1", Keywords: []string{"termination"}},
		{Question: "q2", Keywords: []string{"penalty"}},
		{Question: "q3", Keywords: []string{"payment"}},
	}
	chain := &stubChain{answers: map[string]string{
		"q1": "The termination clause allows either party to exit.",
		"q2": "No relevant information found.",
		"q3": "Payment is due within 30 days.",
	}}

	report := Run(context.Background(), chain, cases)

	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 3, report.Total)
	assert.InDelta(t, 2.0/3.0, report.Score, 1e-9)
	assert.True(t, report.Results[0].Passed)
	assert.False(t, report.Results[1].Passed)
	assert.True(t, report.Results[2].Passed)
}

func TestRunDefaultsToSampleCases(t *testing.T) {
	chain := &stubChain{answers: map[string]string{}}

	report := Run(context.Background(), chain, nil)

	assert.Equal(t, len(SampleCases), report.Total)
	assert.Equal(t, 0, report.Passed)
}

func TestRunChainErrorFailsCaseButContinues(t *testing.T) {
	cases := []models.EvalCase{
		{Question: "q1", Keywords: []string{"termination"}},
		{Question: "q2", Keywords: []string{"payment"}},
	}
	chain := &stubChain{err: errors.New("index not found")}

	report := Run(context.Background(), chain, cases)

	require.Len(t, report.Results, 2)
	assert.Equal(t, 0, report.Passed)
	assert.Equal(t, 0.0, report.Score)
}
