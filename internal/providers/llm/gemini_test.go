package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGemini("test-key", "gemini-2.0-flash-exp")
	g.baseURL = srv.URL
	return g
}

func TestGemini_Complete(t *testing.T) {
	var gotPath string
	var gotReq geminiRequest

	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "Friction opposes "},
					{"text": "relative motion."},
				}}},
			},
		})
	})

	got, err := g.Complete(context.Background(), "What is friction?")
	require.NoError(t, err)

	assert.Equal(t, "Friction opposes relative motion.", got)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash-exp:generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Equal(t, "What is friction?", gotReq.Contents[0].Parts[0].Text)
	assert.Equal(t, geminiAnswerMaxTokens, gotReq.GenerationConfig.MaxOutputTokens)
}

func TestGemini_DescribeSendsInlineImage(t *testing.T) {
	var gotReq geminiRequest

	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "A pulley diagram."}}}},
			},
		})
	})

	got, err := g.Describe(context.Background(), "aGVsbG8=", "What is this machine?")
	require.NoError(t, err)
	assert.Equal(t, "A pulley diagram.", got)

	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 2)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "What is this machine?")
	require.NotNil(t, gotReq.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "aGVsbG8=", gotReq.Contents[0].Parts[1].InlineData.Data)
	assert.Equal(t, geminiDescribeMaxTokens, gotReq.GenerationConfig.MaxOutputTokens)
}

func TestGemini_ErrorStatusSurfaces(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := g.Complete(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGemini_NoCandidates(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := g.Complete(context.Background(), "anything")
	require.Error(t, err)
}

func TestOpenAICompatible_Complete(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Pressure is force per unit area."}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    srv.URL,
		APIKey:     "sk-test",
		Model:      "gpt-4o-mini",
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})

	got, err := p.Complete(context.Background(), "What is pressure?")
	require.NoError(t, err)

	assert.Equal(t, "Pressure is force per unit area.", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotPayload["model"])
}
