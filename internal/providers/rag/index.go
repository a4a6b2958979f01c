package rag

import (
	"context"
	"fmt"

	"github.com/sandevgo/helpbuddy/internal/core"
)

// Index implements core.Searcher over the passage store: the query is
// embedded, then resolved by vector distance. Ranking is whatever the
// store returns; callers never re-sort.
type Index struct {
	embedder core.Embedder
	repo     core.PassageRepository
}

func NewIndex(embedder core.Embedder, repo core.PassageRepository) *Index {
	return &Index{embedder: embedder, repo: repo}
}

func (ix *Index) Search(ctx context.Context, query string, k int) ([]core.Passage, error) {
	vector, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	passages, err := ix.repo.SearchByVector(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return passages, nil
}
