package models

// Chunk represents a parsed chunk with metadata
type Chunk struct {
	Content    string
	SourceFile string
	PageNumber int
	ChunkID    int
}

// ChunkEmbedding pairs a chunk with its embedding vector
type ChunkEmbedding struct {
	Content        string
	Embedding      []float32
	SourceFilename string
	PageNumber     int
	ChunkID        int
}

// Citation points back to the (file, page) a retrieved chunk came from
type Citation struct {
	SourceFile string `json:"source_file"`
	PageNumber int    `json:"page_number"`
}

// Answer is the result of one query through the chain, not persisted
type Answer struct {
	Text      string     `json:"answer"`
	Citations []Citation `json:"citations"`
	Context   []string   `json:"-"`
}

// EvalCase is one evaluation question with its expected keywords
type EvalCase struct {
	Question string
	Keywords []string
}

// EvalResult is the outcome of running one EvalCase through the chain
type EvalResult struct {
	Question string
	Answer   string
	Keywords []string
	Passed   bool
}
