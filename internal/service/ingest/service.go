package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/providers/rag"
	"github.com/sandevgo/helpbuddy/pkg/log"
	"github.com/sandevgo/helpbuddy/pkg/retry"
)

// embedBatchSize keeps batchEmbedContents requests comfortably under
// the Gemini API limits.
const embedBatchSize = 32

// CorpusEntry is one JSONL line of the source corpus. Page zero means
// the entry carries no page attribution.
type CorpusEntry struct {
	Content string `json:"content"`
	Page    int    `json:"page"`
}

// Service builds the passage index from a JSONL corpus: split, embed,
// store. It runs offline, so embedding calls go through a retrier.
type Service struct {
	embedder core.Embedder
	repo     core.PassageRepository
	chunker  rag.ChunkerConfig
	retrier  *retry.Retrier
}

func NewService(embedder core.Embedder, repo core.PassageRepository, ragCfg *config.RAGConfig) *Service {
	return &Service{
		embedder: embedder,
		repo:     repo,
		chunker:  rag.NewChunkerConfig(ragCfg),
		retrier:  retry.NewDefaultRetrier(),
	}
}

// Run indexes the corpus at corpusPath and returns the number of
// passages written.
func (s *Service) Run(ctx context.Context, corpusPath string) (int, error) {
	logger := log.FromCtx(ctx)

	passages, err := s.loadPassages(corpusPath)
	if err != nil {
		return 0, err
	}
	if len(passages) == 0 {
		return 0, fmt.Errorf("corpus %s contains no entries", corpusPath)
	}
	logger.Info().Int("passages", len(passages)).Str("corpus", corpusPath).Msg("Corpus loaded")

	saved := 0
	for start := 0; start < len(passages); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.Content
		}

		var vectors [][]float32
		err := s.retrier.Do(ctx, func() error {
			var embedErr error
			vectors, embedErr = s.embedder.EmbedBatch(ctx, texts)
			return embedErr
		})
		if err != nil {
			return saved, fmt.Errorf("failed to embed batch at offset %d: %w", start, err)
		}

		for i := range batch {
			batch[i].Embedding = vectors[i]
			if err := s.repo.SavePassage(ctx, batch[i]); err != nil {
				return saved, fmt.Errorf("failed to save passage: %w", err)
			}
			saved++
		}
		logger.Debug().Int("saved", saved).Msg("Batch indexed")
	}

	return saved, nil
}

// loadPassages reads the JSONL corpus and splits oversized entries into
// token-bounded chunks.
func (s *Service) loadPassages(corpusPath string) ([]core.StoredPassage, error) {
	file, err := os.Open(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer file.Close()

	source := filepath.Base(corpusPath)

	var passages []core.StoredPassage
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry CorpusEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("corpus line %d is not valid JSON: %w", lineNo, err)
		}
		if entry.Content == "" {
			continue
		}

		for _, chunk := range rag.ChunkText(entry.Content, s.chunker) {
			passages = append(passages, core.StoredPassage{
				Content: chunk.Text,
				Page:    entry.Page,
				HasPage: entry.Page > 0,
				Source:  source,
				ChunkID: chunk.Index,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return passages, nil
}
