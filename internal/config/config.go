package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"contract-assistant/internal/models"
)

// ErrMissingAPIKey is returned when no OpenAI API key can be found in the
// environment or .env file.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set; create a .env file from .env.example and add your key")

// OpenAIConfig holds connection details for the hosted embedding and chat models.
type OpenAIConfig struct {
	APIKey         string `yaml:"-"`
	BaseURL        string `yaml:"base_url"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

// RAGConfig configures chunking and retrieval.
type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

// StoreConfig selects and configures the vector store backend.
type StoreConfig struct {
	Type        string `yaml:"type"` // "chromem" or "postgres"
	IndexPath   string `yaml:"index_path"`
	Collection  string `yaml:"collection"`
	PostgresDSN string `yaml:"postgres_dsn"`
	Debug       bool   `yaml:"debug"`
}

// ServerConfig configures the API server and the web UI.
type ServerConfig struct {
	Host    string `yaml:"host"`
	APIPort int    `yaml:"api_port"`
	UIPort  int    `yaml:"ui_port"`
}

type Config struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	RAG    RAGConfig    `yaml:"rag"`
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
}

// Load reads the config from path, falling back to defaults when the file
// does not exist. The OpenAI API key is always taken from the environment
// (optionally populated from a .env file), never from the config file.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	applyDefaults(cfg)

	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	if m := os.Getenv("EMBEDDING_MODEL"); m != "" {
		cfg.OpenAI.EmbeddingModel = m
	}
	if m := os.Getenv("CHAT_MODEL"); m != "" {
		cfg.OpenAI.ChatModel = m
	}
	return cfg, nil
}

// ValidateAPIKey fails when no OpenAI API key is configured. Commands that
// talk to the hosted models call this before doing anything else.
func (c *Config) ValidateAPIKey() error {
	if c.OpenAI.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			EmbeddingModel: models.DefaultEmbeddingModel,
			ChatModel:      models.DefaultChatModel,
		},
		RAG: RAGConfig{
			ChunkSize:    models.DefaultChunkSize,
			ChunkOverlap: models.DefaultChunkOverlap,
			TopK:         models.DefaultTopK,
		},
		Store: StoreConfig{
			Type:       "chromem",
			IndexPath:  "./vector_index",
			Collection: "contracts",
		},
		Server: ServerConfig{
			Host:    "localhost",
			APIPort: 8000,
			UIPort:  8091,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = models.DefaultEmbeddingModel
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = models.DefaultChatModel
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = models.DefaultChunkSize
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = models.DefaultChunkOverlap
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = models.DefaultTopK
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "chromem"
	}
	if cfg.Store.IndexPath == "" {
		cfg.Store.IndexPath = "./vector_index"
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = "contracts"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.APIPort == 0 {
		cfg.Server.APIPort = 8000
	}
	if cfg.Server.UIPort == 0 {
		cfg.Server.UIPort = 8091
	}
}
