package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

// NoContextLiteral is returned in place of a context block whenever the
// index has nothing for the query or the search fails. The prompt still
// carries it so the model knows the textbook came up empty.
const NoContextLiteral = "No information found in " + core.CorpusName + "."

// Retriever turns a query into a ready-to-prompt block of passages.
type Retriever struct {
	searcher core.Searcher
}

func NewRetriever(searcher core.Searcher) *Retriever {
	return &Retriever{searcher: searcher}
}

// GetContext formats up to maxChunks passages in the order the searcher
// ranked them. All candidates are included; no score thresholding.
func (r *Retriever) GetContext(ctx context.Context, query string, maxChunks int) string {
	logger := log.FromCtx(ctx)

	passages, err := r.searcher.Search(ctx, query, maxChunks)
	if err != nil {
		logger.Warn().Err(err).Msg("passage search failed, answering without context")
		return NoContextLiteral
	}
	if len(passages) == 0 {
		logger.Debug().Str("query", query).Msg("no passages found")
		return NoContextLiteral
	}

	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Context %d - Page %s]\n%s", i+1, p.PageLabel(), p.Content)
	}

	logger.Debug().Int("passages", len(passages)).Msg("context block assembled")
	return b.String()
}

// Search exposes the raw ranked passages, scores included, for
// diagnostics.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]core.Passage, error) {
	return r.searcher.Search(ctx, query, k)
}
