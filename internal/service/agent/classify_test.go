package agent

import "testing"

func TestIsHistoryQuestion(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"What was my first question?", true},
		{"How many questions have I asked?", true},
		{"what did we discuss", true},
		{"Show me all questions", true},
		{"Tell me about my previous question", true},
		// A history trigger wins even when follow-up words are present.
		{"how many times did it happen", true},
		{"What is photosynthesis?", false},
		{"Explain friction", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := isHistoryQuestion(tt.query); got != tt.want {
				t.Errorf("isHistoryQuestion(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestIsFollowUp(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"pronoun", "can you explain it in more detail please", true},
		{"demonstrative", "why does that happen when water boils fast", true},
		{"reference word", "you mentioned energy transfer, expand on the process please", true},
		{"multi-word reference", "we talked about magnets during the earlier electricity lesson today", true},
		{"starter what about", "what about pressure", true},
		{"starter and", "and what happens to the crops afterwards exactly", true},
		{"short question", "why though", true},
		{"starter alone", "so", true},
		{"standalone question", "explain the process of photosynthesis in green plants thoroughly", false},
		{"pronoun only as substring", "write about italy's farming methods in winter seasons", false},
		{"empty", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFollowUp(tt.query); got != tt.want {
				t.Errorf("isFollowUp(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
