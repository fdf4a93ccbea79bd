package evaluation

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"contract-assistant/internal/models"
)

// Chain is the part of the RAG chain evaluation needs.
type Chain interface {
	Answer(ctx context.Context, question string) (*models.Answer, error)
}

// SampleCases are the built-in contract questions with their expected keywords.
var SampleCases = []models.EvalCase{
	{
		Question: "What is the termination clause?",
		Keywords: []string{"termination", "terminate", "cancel", "end"},
	},
	{
		Question: "Are there any penalties?",
		Keywords: []string{"penalty", "penalties", "fine", "fee", "breach"},
	},
	{
		Question: "What are the payment terms?",
		Keywords: []string{"payment", "pay", "invoice", "due", "amount"},
	},
}

// Report summarizes one evaluation run.
type Report struct {
	Results []models.EvalResult
	Passed  int
	Total   int
	Score   float64
}

// EvaluateAnswer reports whether the answer contains any expected keyword,
// case-insensitively.
func EvaluateAnswer(answer string, keywords []string) bool {
	lower := strings.ToLower(answer)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// Run sends every case through the chain and scores the answers. A chain
// error fails the case rather than aborting the run.
func Run(ctx context.Context, chain Chain, cases []models.EvalCase) *Report {
	if cases == nil {
		cases = SampleCases
	}

	report := &Report{Total: len(cases)}
	for i, tc := range cases {
		var answerText string
		answer, err := chain.Answer(ctx, tc.Question)
		if err != nil {
			log.Error().Err(err).Str("question", tc.Question).Msg("Evaluation query failed")
		} else {
			answerText = answer.Text
		}

		passed := err == nil && EvaluateAnswer(answerText, tc.Keywords)
		if passed {
			report.Passed++
		}
		report.Results = append(report.Results, models.EvalResult{
			Question: tc.Question,
			Answer:   answerText,
			Keywords: tc.Keywords,
			Passed:   passed,
		})

		status := "FAIL"
		if passed {
			status = "PASS"
		}
		log.Info().Msgf("Test %d/%d: %s — %s", i+1, len(cases), status, tc.Question)
	}

	if report.Total > 0 {
		report.Score = float64(report.Passed) / float64(report.Total)
	}
	log.Info().Msgf("Evaluation complete: %d/%d passed (%.0f%%)", report.Passed, report.Total, report.Score*100)
	return report
}
