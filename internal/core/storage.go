package core

import (
	"context"
	"time"
)

// PassageRepository persists indexed corpus passages and serves vector
// lookups for the Searcher implementation.
type PassageRepository interface {
	SavePassage(ctx context.Context, passage StoredPassage) error
	SearchByVector(ctx context.Context, vector []float32, k int) ([]Passage, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// StoredPassage is a corpus chunk as written at indexing time.
type StoredPassage struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Page      int       `json:"page"`
	HasPage   bool      `json:"has_page"`
	Source    string    `json:"source"`
	ChunkID   int       `json:"chunk_id"`
	Embedding []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
