package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const embedderBaseURL = "https://generativelanguage.googleapis.com"

// GeminiEmbedder produces passage and query vectors via the Gemini
// embedContent API. The whole corpus is indexed with these vectors, so
// the embedding model must not change between indexing and querying.
type GeminiEmbedder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewGeminiEmbedder(apiKey, model string) *GeminiEmbedder {
	return &GeminiEmbedder{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: embedderBaseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

type embedContent struct {
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type embedRequest struct {
	Model   string       `json:"model"`
	Content embedContent `json:"content"`
}

func newEmbedRequest(model, text string) embedRequest {
	req := embedRequest{Model: "models/" + model}
	req.Content.Parts = []struct {
		Text string `json:"text"`
	}{{Text: text}}
	return req
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	path := fmt.Sprintf("/v1beta/models/%s:embedContent", e.model)

	var result struct {
		Embedding struct {
			Values []float32 `json:"values"`
		} `json:"embedding"`
	}
	if err := e.post(ctx, path, newEmbedRequest(e.model, text), &result); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(result.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embed: empty vector for text of %d bytes", len(text))
	}
	return result.Embedding.Values, nil
}

func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload := struct {
		Requests []embedRequest `json:"requests"`
	}{}
	for _, text := range texts {
		payload.Requests = append(payload.Requests, newEmbedRequest(e.model, text))
	}

	path := fmt.Sprintf("/v1beta/models/%s:batchEmbedContents", e.model)

	var result struct {
		Embeddings []struct {
			Values []float32 `json:"values"`
		} `json:"embeddings"`
	}
	if err := e.post(ctx, path, payload, &result); err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed batch: got %d vectors for %d texts", len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

func (e *GeminiEmbedder) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
