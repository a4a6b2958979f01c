package rag

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/helpbuddy/internal/config"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

// Chunk is one indexable slice of a corpus entry.
type Chunk struct {
	Text      string
	TokenSize int
	Index     int
}

type ChunkerConfig struct {
	MaxTokens     int
	OverlapTokens int
}

func NewChunkerConfig(cfg *config.RAGConfig) ChunkerConfig {
	return ChunkerConfig{
		MaxTokens:     cfg.ChunkMaxTokens,
		OverlapTokens: cfg.ChunkOverlapTokens,
	}
}

// ChunkText splits an oversized corpus entry into token-bounded chunks,
// keeping sentences whole where possible and repeating the trailing
// sentences of each chunk into the next one as overlap.
func ChunkText(text string, cfg ChunkerConfig) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []Chunk
	var current strings.Builder
	currentTokens := 0
	chunkIndex := 0

	flush := func() {
		chunks = append(chunks, Chunk{
			Text:      strings.TrimSpace(current.String()),
			TokenSize: currentTokens,
			Index:     chunkIndex,
		})
		chunkIndex++
		current.Reset()
		currentTokens = 0
	}

	for i, sentence := range sentences {
		sentenceTokens := countTokens(sentence)

		// A single sentence over the limit gets sliced on raw token
		// boundaries instead.
		if sentenceTokens > cfg.MaxTokens {
			if current.Len() > 0 {
				flush()
			}
			for _, sc := range sliceByTokens(sentence, cfg.MaxTokens) {
				chunks = append(chunks, Chunk{
					Text:      strings.TrimSpace(sc.Text),
					TokenSize: sc.TokenSize,
					Index:     chunkIndex,
				})
				chunkIndex++
			}
			continue
		}

		if currentTokens+sentenceTokens > cfg.MaxTokens && current.Len() > 0 {
			flush()

			overlap := overlapFromSentences(sentences, i, cfg.OverlapTokens)
			current.WriteString(overlap)
			currentTokens = countTokens(overlap)
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentTokens += sentenceTokens
	}

	if current.Len() > 0 {
		flush()
	}

	return chunks
}

// sliceByTokens cuts text on raw token boundaries, maxTokens at a time.
func sliceByTokens(text string, maxTokens int) []Chunk {
	enc := getTokenizer()
	tokens := enc.Encode(text, nil, nil)

	var chunks []Chunk
	for i := 0; i < len(tokens); i += maxTokens {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}

		part := tokens[i:end]
		chunks = append(chunks, Chunk{
			Text:      enc.Decode(part),
			TokenSize: len(part),
		})
	}
	return chunks
}

// splitSentences breaks text into sentences, paragraph by paragraph.
// Sentence enders cover Latin and CJK punctuation since NCERT texts
// quote scripts beyond ASCII.
func splitSentences(text string) []string {
	paragraphs := splitParagraphs(text)

	sentenceEnders := map[rune]bool{
		'.': true, '!': true, '?': true,
		'。': true, '！': true, '？': true, '．': true, '…': true,
	}

	var sentences []string

	for _, para := range paragraphs {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)

			if sentenceEnders[r] {
				if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) || isCJK(runes[i+1]) {
					if s := strings.TrimSpace(current.String()); s != "" {
						sentences = append(sentences, s)
					}
					current.Reset()
				}
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 && text != "" {
		return []string{text}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n\n")

	var result []string
	for _, p := range parts {
		// Single newlines inside a paragraph are soft wraps.
		p = strings.ReplaceAll(p, "\n", " ")
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

func countTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}

// overlapFromSentences collects whole sentences preceding currentIdx
// until targetTokens worth of overlap is gathered.
func overlapFromSentences(sentences []string, currentIdx, targetTokens int) string {
	if currentIdx == 0 {
		return ""
	}

	var overlap []string
	tokens := 0

	for i := currentIdx - 1; i >= 0 && tokens < targetTokens; i-- {
		overlap = append([]string{sentences[i]}, overlap...)
		tokens += countTokens(sentences[i])
	}

	return strings.Join(overlap, " ")
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
