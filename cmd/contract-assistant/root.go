package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/embeddings"

	"contract-assistant/internal/config"
	"contract-assistant/internal/embedding"
	"contract-assistant/internal/llmservice"
	"contract-assistant/internal/rag"
	"contract-assistant/internal/vectorstore"
)

const defaultConfigPath = "./configs/config.yaml"

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contract-assistant",
		Short:         "RAG-based contract analysis system",
		Long:          "Contract Assistant answers questions about legal/contract documents using retrieval-augmented generation with source citations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")

	root.AddCommand(
		newIngestCmd(),
		newServeCmd(),
		newUICmd(),
		newEvaluateCmd(),
	)

	return root
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	return cfg
}

// openPipeline wires up the store, embedder and chat model behind the chain.
// Every command that touches the hosted models goes through here so the API
// key check happens uniformly.
func openPipeline(cfg *config.Config) (vectorstore.Store, embeddings.Embedder, *rag.Chain) {
	if err := cfg.ValidateAPIKey(); err != nil {
		log.Fatal().Err(err).Msg("Missing API key")
	}

	store, err := vectorstore.Open(&cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector store")
	}

	embedder, err := embedding.NewEmbedder(&cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	model, err := llmservice.NewChatModel(&cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat model")
	}

	return store, embedder, rag.NewChain(store, embedder, model, cfg.RAG.TopK)
}
