package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"contract-assistant/internal/ui"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the web UI",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := loadConfig()
			store, embedder, chain := openPipeline(cfg)
			defer store.Close()

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.UIPort)
			log.Info().Msgf("Web UI:  http://%s/", addr)

			if err := ui.New(cfg, embedder, store, chain).ListenAndServe(addr); err != nil {
				log.Fatal().Err(err).Msg("Web UI stopped")
			}
		},
	}
}
