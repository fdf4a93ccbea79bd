package models

const (
	// DefaultChunkSize and DefaultChunkOverlap mirror the ingestion defaults
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 4

	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultChatModel      = "gpt-4o-mini"

	// EmbeddingDimensions is the vector size of text-embedding-3-small
	EmbeddingDimensions = 1536
)

var (
	SystemPromptTemplate = `You are an expert legal assistant. Use the following pieces of retrieved context to answer the question. If you don't know the answer, say that you don't know. Keep the answer concise.

%s`
)
