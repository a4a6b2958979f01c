package rag

import (
	"testing"
)

func defaultTestChunker() ChunkerConfig {
	return ChunkerConfig{MaxTokens: 400, OverlapTokens: 50}
}

func TestChunkText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		cfg            ChunkerConfig
		expectedChunks []string
	}{
		{
			name:           "Empty input",
			text:           "",
			cfg:            defaultTestChunker(),
			expectedChunks: nil,
		},
		{
			name:           "Whitespace only",
			text:           "   \n\t   ",
			cfg:            defaultTestChunker(),
			expectedChunks: nil,
		},
		{
			name: "Single sentence fits",
			text: "Friction opposes motion.",
			cfg: ChunkerConfig{
				MaxTokens:     10,
				OverlapTokens: 0,
			},
			expectedChunks: []string{"Friction opposes motion."},
		},
		{
			name: "Two sentences fit in one chunk",
			text: "Friction opposes motion. It produces heat.",
			cfg: ChunkerConfig{
				MaxTokens:     12,
				OverlapTokens: 0,
			},
			expectedChunks: []string{"Friction opposes motion. It produces heat."},
		},
		{
			name: "Split by sentence (No Overlap)",
			text: "First sentence. Second sentence.",
			cfg: ChunkerConfig{
				// "First sentence." is ~3 tokens: [First][ sentence][.]
				MaxTokens:     3,
				OverlapTokens: 0,
			},
			expectedChunks: []string{
				"First sentence.",
				"Second sentence.",
			},
		},
		{
			name: "Split by sentence (With Overlap)",
			text: "Sentence one. Sentence two. Sentence three.",
			cfg: ChunkerConfig{
				// "Sentence one." is ~3 tokens; two sentences per chunk,
				// one sentence of overlap.
				MaxTokens:     6,
				OverlapTokens: 3,
			},
			expectedChunks: []string{
				"Sentence one. Sentence two.",
				"Sentence two. Sentence three.",
			},
		},
		{
			name: "Long sentence forced split",
			text: "One two three four five six.",
			cfg: ChunkerConfig{
				MaxTokens:     3,
				OverlapTokens: 0,
			},
			// Tiktoken slices: [One][ two][ three] | [ four][ five][ six] | [.]
			expectedChunks: []string{
				"One two three",
				"four five six",
				".",
			},
		},
		{
			name: "Paragraph soft wraps collapse",
			text: "Crops grown in the\nrainy season are kharif crops.",
			cfg: ChunkerConfig{
				MaxTokens:     50,
				OverlapTokens: 0,
			},
			expectedChunks: []string{"Crops grown in the rainy season are kharif crops."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkText(tt.text, tt.cfg)

			if len(got) != len(tt.expectedChunks) {
				t.Fatalf("expected %d chunks, got %d: %v", len(tt.expectedChunks), len(got), got)
			}
			for i, chunk := range got {
				if chunk.Text != tt.expectedChunks[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tt.expectedChunks[i], chunk.Text)
				}
				if chunk.Index != i {
					t.Errorf("chunk %d: expected index %d, got %d", i, i, chunk.Index)
				}
			}
		})
	}
}

func TestChunkText_SizesRespectLimit(t *testing.T) {
	long := ""
	for i := 0; i < 200; i++ {
		long += "Sound travels through a medium as a vibration. "
	}

	cfg := ChunkerConfig{MaxTokens: 100, OverlapTokens: 10}
	for _, chunk := range ChunkText(long, cfg) {
		if chunk.TokenSize > cfg.MaxTokens+cfg.OverlapTokens {
			t.Errorf("chunk %d exceeds the budget: %d tokens", chunk.Index, chunk.TokenSize)
		}
	}
}
