package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/helpbuddy/internal/core"
)

type fakeSearcher struct {
	passages []core.Passage
	err      error
	gotQuery string
	gotK     int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]core.Passage, error) {
	f.gotQuery = query
	f.gotK = k
	return f.passages, f.err
}

func TestRetriever_GetContextFormatsRankOrder(t *testing.T) {
	searcher := &fakeSearcher{
		passages: []core.Passage{
			{Content: "Friction opposes motion.", Page: 148, HasPage: true, Score: 0.12},
			{Content: "Rolling reduces friction.", Page: 152, HasPage: true, Score: 0.34},
			{Content: "A note without attribution.", Score: 0.55},
		},
	}
	r := NewRetriever(searcher)

	got := r.GetContext(context.Background(), "what is friction", 5)

	want := "[Context 1 - Page 148]\nFriction opposes motion.\n\n" +
		"[Context 2 - Page 152]\nRolling reduces friction.\n\n" +
		"[Context 3 - Page Unknown]\nA note without attribution."
	assert.Equal(t, want, got)
	assert.Equal(t, "what is friction", searcher.gotQuery)
	assert.Equal(t, 5, searcher.gotK)
}

func TestRetriever_GetContextEmptyResults(t *testing.T) {
	r := NewRetriever(&fakeSearcher{})
	assert.Equal(t, NoContextLiteral, r.GetContext(context.Background(), "anything", 5))
}

func TestRetriever_GetContextSearchErrorFallsBack(t *testing.T) {
	r := NewRetriever(&fakeSearcher{err: errors.New("index offline")})
	assert.Equal(t, NoContextLiteral, r.GetContext(context.Background(), "anything", 5))
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, f.err
}

type fakeRepo struct {
	passages  []core.Passage
	gotVector []float32
	gotK      int
}

func (f *fakeRepo) SavePassage(ctx context.Context, p core.StoredPassage) error { return nil }
func (f *fakeRepo) Count(ctx context.Context) (int, error)                      { return len(f.passages), nil }
func (f *fakeRepo) Reset(ctx context.Context) error                             { return nil }

func (f *fakeRepo) SearchByVector(ctx context.Context, vector []float32, k int) ([]core.Passage, error) {
	f.gotVector = vector
	f.gotK = k
	return f.passages, nil
}

func TestIndex_SearchEmbedsThenDelegates(t *testing.T) {
	repo := &fakeRepo{passages: []core.Passage{{Content: "Sound needs a medium."}}}
	ix := NewIndex(&fakeEmbedder{vector: []float32{0.1, 0.2}}, repo)

	got, err := ix.Search(context.Background(), "how does sound travel", 3)
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.Equal(t, []float32{0.1, 0.2}, repo.gotVector)
	assert.Equal(t, 3, repo.gotK)
}

func TestIndex_SearchEmbedFailure(t *testing.T) {
	ix := NewIndex(&fakeEmbedder{err: errors.New("quota")}, &fakeRepo{})

	_, err := ix.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query")
}
