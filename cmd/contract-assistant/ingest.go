package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"contract-assistant/internal/ingest"
)

func newIngestCmd() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest documents into the vector index",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := loadConfig()
			store, embedder, _ := openPipeline(cfg)
			defer store.Close()

			count, err := ingest.Files(cmd.Context(), cfg, embedder, store, files)
			if err != nil {
				log.Fatal().Err(err).Msg("Ingestion failed")
			}
			fmt.Printf("Ingestion complete: %d chunks from %d files saved to the index.\n", count, len(files))
		},
	}

	cmd.Flags().StringSliceVar(&files, "files", nil, "file paths to ingest (PDF, TXT, DOCX, PPTX, XLSX, ODS)")
	_ = cmd.MarkFlagRequired("files")

	return cmd
}
