package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestIsInScope_KeywordShortCircuit(t *testing.T) {
	oracle := &fakeCompleter{}
	c := NewClassifier(oracle)

	inScope, reason := c.IsInScope(context.Background(), "Why does friction warm my hands?")

	assert.True(t, inScope)
	assert.Equal(t, "contains curriculum keyword: friction", reason)
	assert.Zero(t, oracle.calls, "keyword match must not spend an oracle call")
}

func TestIsInScope_OracleVerdicts(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     bool
	}{
		{"yes", "YES", nil, true},
		{"no", "NO", nil, false},
		{"lowercase yes", "yes", nil, true},
		{"padded no", "  no\n", nil, false},
		// Everything outside {YES,NO} resolves to in-scope: rejecting a
		// legitimate question costs more than answering a borderline one.
		{"ambiguous", "MAYBE", nil, true},
		{"empty", "", nil, true},
		{"chatty", "YES, because it relates to biology", nil, true},
		{"oracle failure", "", errors.New("timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeCompleter{response: tt.response, err: tt.err}
			c := NewClassifier(oracle)

			inScope, _ := c.IsInScope(context.Background(), "Tell me about quarterly taxes")

			assert.Equal(t, tt.want, inScope)
			assert.Equal(t, 1, oracle.calls)
		})
	}
}

func TestRefusalMessage(t *testing.T) {
	c := NewClassifier(&fakeCompleter{})

	got := c.RefusalMessage("Who won the IPL?")

	require.Contains(t, got, "'Who won the IPL?'")
	assert.Contains(t, got, "NCERT Science Class 8")
	assert.Contains(t, got, "crop production")
}

func TestCheckSafety(t *testing.T) {
	tests := []struct {
		name    string
		content string
		safe    bool
	}{
		{"science question", "How do microorganisms spoil food?", true},
		{"profanity", "what the fuck is friction", false},
		{"drugs", "how is cocaine made", false},
		{"self harm", "I want to self harm", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSafety(tt.content)
			assert.Equal(t, tt.safe, got.Safe)
		})
	}
}
