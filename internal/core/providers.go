package core

import "context"

// Completer is the text-completion oracle used for answer generation
// and constrained scope judgments.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Describer is the image-captioning oracle. Implementations receive the
// raw base64 payload and the user's question as a content hint.
type Describer interface {
	Describe(ctx context.Context, imageBase64, hintQuery string) (string, error)
}

// Embedder turns text into vectors for the passage index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Searcher is the nearest-neighbor oracle over the indexed corpus.
// Results arrive in relevance order; callers must not re-sort them.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]Passage, error)
}
