package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *GeminiEmbedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	e := NewGeminiEmbedder("test-key", "text-embedding-004")
	e.baseURL = srv.URL
	return e
}

func TestGeminiEmbedder_Embed(t *testing.T) {
	var gotPath string

	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float32{0.25, -0.5, 1}},
		})
	})

	vec, err := e.Embed(context.Background(), "what is combustion")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.25, -0.5, 1}, vec)
	assert.Equal(t, "/v1beta/models/text-embedding-004:embedContent", gotPath)
}

func TestGeminiEmbedder_EmbedEmptyVector(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":{"values":[]}}`))
	})

	_, err := e.Embed(context.Background(), "anything")
	require.Error(t, err)
}

func TestGeminiEmbedder_EmbedBatch(t *testing.T) {
	var gotReq struct {
		Requests []embedRequest `json:"requests"`
	}

	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings": []map[string]any{
				{"values": []float32{1, 0}},
				{"values": []float32{0, 1}},
			},
		})
	})

	vecs, err := e.EmbedBatch(context.Background(), []string{"first chunk", "second chunk"})
	require.NoError(t, err)

	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1}, vecs[1])
	require.Len(t, gotReq.Requests, 2)
	assert.Equal(t, "models/text-embedding-004", gotReq.Requests[0].Model)
}

func TestGeminiEmbedder_EmbedBatchCountMismatch(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings":[{"values":[1]}]}`))
	})

	_, err := e.EmbedBatch(context.Background(), []string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 1 vectors for 2 texts")
}
