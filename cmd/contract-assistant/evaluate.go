package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"contract-assistant/internal/evaluation"
	"contract-assistant/internal/helper"
)

func newEvaluateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the evaluation suite against the ingested index",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := loadConfig()
			store, _, chain := openPipeline(cfg)
			defer store.Close()

			report := evaluation.Run(cmd.Context(), chain, nil)

			if asJSON {
				helper.PrettyPrint(report)
				return
			}

			fmt.Printf("\n%s\n", separator)
			fmt.Printf("Evaluation results: %d/%d passed (%.0f%%)\n", report.Passed, report.Total, report.Score*100)
			fmt.Printf("%s\n", separator)
			for _, result := range report.Results {
				status := "FAIL"
				if result.Passed {
					status = "PASS"
				}
				fmt.Printf("\n[%s] Q: %s\n", status, result.Question)
				fmt.Printf("       A: %s\n", truncate(result.Answer, 150))
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

const separator = "============================================================"

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
