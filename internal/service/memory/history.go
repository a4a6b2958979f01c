package memory

import (
	"fmt"
	"strings"
)

// scienceTopics is the closed curriculum vocabulary scanned when the
// user asks what has been discussed. Matching is substring-based over
// the concatenated stored questions.
var scienceTopics = []string{
	"photosynthesis", "cell", "force", "motion", "light", "sound",
	"electricity", "magnet", "chemical", "reaction", "acid", "base",
	"animal", "plant", "reproduction", "food", "nutrition",
	"respiration", "excretion", "weeds", "crop", "fertilizer",
}

// HistoryInfo answers meta-questions about the conversation itself
// ("what was my first question", "how many questions have I asked")
// with deterministic substring pattern checks, no oracle involved.
//
// The ladder order is significant: a query matching an earlier rung is
// consumed there even when its inner qualifier fails, in which case the
// answer falls back to recent context rather than a later rung.
func (m *Manager) HistoryInfo(query string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.interactions) == 0 {
		return "No conversation history available."
	}

	q := strings.ToLower(query)
	asksQuestion := strings.Contains(q, "question") || strings.Contains(q, "ask")
	asksResponse := strings.Contains(q, "response") || strings.Contains(q, "answer")

	switch {
	case containsAny(q, "first", "1st", "initial", "start"):
		if asksQuestion {
			return fmt.Sprintf("Your first question was: '%s'", m.interactions[0].UserQuery)
		}
		if asksResponse {
			return fmt.Sprintf("My first response was: '%s'", truncate(m.interactions[0].BotResponse, m.cfg.RecentTruncate))
		}

	case containsAny(q, "last", "recent", "previous", "before"):
		last := m.interactions[len(m.interactions)-1]
		if asksQuestion {
			return fmt.Sprintf("Your last question was: '%s'", last.UserQuery)
		}
		if asksResponse {
			return fmt.Sprintf("My last response was: '%s'", truncate(last.BotResponse, m.cfg.RecentTruncate))
		}

	case strings.Contains(q, "how many") && asksQuestion:
		return fmt.Sprintf("You have asked %d questions so far.", len(m.interactions))

	case strings.Contains(q, "what") && strings.Contains(q, "discuss"):
		topics := m.topicsDiscussedLocked()
		if len(topics) > 0 {
			return "We have discussed: " + strings.Join(topics, ", ")
		}
		return "We haven't discussed any specific science topics yet."

	case strings.Contains(q, "all") && asksQuestion:
		var b strings.Builder
		b.WriteString("All your questions:")
		for i, it := range m.interactions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, it.UserQuery)
		}
		return b.String()
	}

	return m.recentContextLocked(3)
}

// Summary is a coarse statistical view of the conversation.
type Summary struct {
	TotalInteractions int      `json:"total_interactions"`
	TopicsDiscussed   []string `json:"topics_discussed"`
	FirstQuery        string   `json:"first_query,omitempty"`
	LastQuery         string   `json:"last_query,omitempty"`
}

func (m *Manager) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.interactions) == 0 {
		return Summary{TopicsDiscussed: []string{}}
	}

	return Summary{
		TotalInteractions: len(m.interactions),
		TopicsDiscussed:   m.topicsDiscussedLocked(),
		FirstQuery:        truncate(m.interactions[0].UserQuery, 50),
		LastQuery:         truncate(m.interactions[len(m.interactions)-1].UserQuery, 50),
	}
}

// Info reports sizes and limits of the current memory state.
type Info struct {
	Size             int     `json:"size"`
	Conversations    int     `json:"conversations"`
	UserContextItems int     `json:"user_context_items"`
	MemoryUsageBytes int     `json:"memory_usage_bytes"`
	MemoryUsageKB    float64 `json:"memory_usage_kb"`
	MaxHistory       int     `json:"max_history"`
	MaxAgeHours      int     `json:"max_age_hours"`
}

func (m *Manager) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	usage := 0
	for _, it := range m.interactions {
		usage += len(it.UserQuery) + len(it.BotResponse)
		for k, v := range it.Metadata {
			usage += len(k) + len(v.String())
		}
	}
	for k, v := range m.userContext {
		usage += len(k) + len(v.Value.String())
	}

	return Info{
		Size:             len(m.interactions) + len(m.userContext),
		Conversations:    len(m.interactions),
		UserContextItems: len(m.userContext),
		MemoryUsageBytes: usage,
		MemoryUsageKB:    float64(usage) / 1024,
		MaxHistory:       m.cfg.MaxHistory,
		MaxAgeHours:      m.cfg.MaxAgeHours,
	}
}

func (m *Manager) topicsDiscussedLocked() []string {
	var all strings.Builder
	for _, it := range m.interactions {
		all.WriteString(strings.ToLower(it.UserQuery))
		all.WriteString(" ")
	}
	joined := all.String()

	var topics []string
	for _, topic := range scienceTopics {
		if strings.Contains(joined, topic) {
			topics = append(topics, topic)
		}
	}
	return topics
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
