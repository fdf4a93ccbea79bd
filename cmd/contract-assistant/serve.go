package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"contract-assistant/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := loadConfig()
			store, _, chain := openPipeline(cfg)
			defer store.Close()

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.APIPort)
			log.Info().Msgf("API server:  http://%s/contract-assistant/invoke", addr)
			log.Info().Msgf("Playground:  http://%s/contract-assistant/playground", addr)

			if err := server.New(chain).ListenAndServe(addr); err != nil {
				log.Fatal().Err(err).Msg("API server stopped")
			}
		},
	}
}
