package memory

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/core"
)

// NoHistoryLiteral is what RecentContext returns when nothing is stored.
// The router compares against it to decide whether conversational
// context is usable for a follow-up answer.
const NoHistoryLiteral = "No previous conversation history"

// Manager is a bounded per-session conversation memory. Interactions
// expire by age and by count; both limits are enforced synchronously on
// every insert. One session owns exactly one Manager; the internal mutex
// serializes access when a transport lets requests overlap.
type Manager struct {
	mu  sync.Mutex
	cfg *config.MemoryConfig

	logger zerolog.Logger
	now    func() time.Time

	interactions []core.Interaction
	userContext  map[string]ContextValue
}

// ContextValue is one entry of the open user-context mapping, kept
// alongside conversation history but unused by routing.
type ContextValue struct {
	Value     core.MetaValue
	Timestamp time.Time
}

type Option func(*Manager)

// WithClock substitutes the time source; tests use it to drive age
// eviction deterministically.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

func NewManager(cfg *config.MemoryConfig, opts ...Option) *Manager {
	m := &Manager{
		cfg:         cfg,
		logger:      zerolog.Nop(),
		now:         time.Now,
		userContext: make(map[string]ContextValue),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add appends an interaction stamped with the current time, then evicts
// by age and truncates by count. It never fails.
func (m *Manager) Add(userQuery, botResponse string, meta core.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.interactions = append(m.interactions, core.Interaction{
		Timestamp:   m.now(),
		UserQuery:   userQuery,
		BotResponse: botResponse,
		Metadata:    meta.Clone(),
	})
	m.evictLocked()

	m.logger.Debug().Int("total", len(m.interactions)).Msg("interaction added to memory")
}

// evictLocked drops interactions older than the age cutoff, then if the
// count still exceeds MaxHistory drops the oldest. Age runs first so a
// stale entry can never survive on count slack. Callers hold m.mu.
func (m *Manager) evictLocked() {
	cutoff := m.now().Add(-time.Duration(m.cfg.MaxAgeHours) * time.Hour)

	kept := m.interactions[:0]
	for _, it := range m.interactions {
		if it.Timestamp.After(cutoff) {
			kept = append(kept, it)
		}
	}
	m.interactions = kept

	if len(m.interactions) > m.cfg.MaxHistory {
		excess := len(m.interactions) - m.cfg.MaxHistory
		n := copy(m.interactions, m.interactions[excess:])
		m.interactions = m.interactions[:n]
	}
}

// RecentContext formats the last lastN interactions as a numbered block,
// responses truncated to the configured preview length.
func (m *Manager) RecentContext(lastN int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recentContextLocked(lastN)
}

func (m *Manager) recentContextLocked(lastN int) string {
	if len(m.interactions) == 0 {
		return NoHistoryLiteral
	}

	start := len(m.interactions) - lastN
	if start < 0 {
		start = 0
	}
	recent := m.interactions[start:]

	var b strings.Builder
	b.WriteString("Previous conversation context:")
	for i, it := range recent {
		fmt.Fprintf(&b, "\n\n%d. User: %s", i+1, it.UserQuery)
		fmt.Fprintf(&b, "\n Assistant: %s", truncate(it.BotResponse, m.cfg.RecentTruncate))
	}
	return b.String()
}

// RelatedContext finds stored interactions whose wording overlaps the
// query. Overlap is computed on case-insensitive whitespace tokens with
// set semantics: |query ∩ prior| / max(|query|, 1), measured separately
// against the prior question and the prior answer. An interaction
// qualifies when either ratio clears its threshold; the top three by
// max ratio are formatted. Returns "" when nothing qualifies.
func (m *Manager) RelatedContext(query string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.interactions) == 0 {
		return ""
	}

	queryWords := tokenSet(query)

	type scored struct {
		interaction core.Interaction
		relevance   float64
	}
	var related []scored

	for _, it := range m.interactions {
		queryOverlap := overlapRatio(queryWords, tokenSet(it.UserQuery))
		responseOverlap := overlapRatio(queryWords, tokenSet(it.BotResponse))

		if queryOverlap > m.cfg.QueryOverlap || responseOverlap > m.cfg.ResponseOverlap {
			related = append(related, scored{
				interaction: it,
				relevance:   math.Max(queryOverlap, responseOverlap),
			})
		}
	}

	if len(related) == 0 {
		return ""
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].relevance > related[j].relevance
	})
	if len(related) > 3 {
		related = related[:3]
	}

	var b strings.Builder
	b.WriteString("Related previous discussions:")
	for _, item := range related {
		fmt.Fprintf(&b, "\n\n- Previously asked: %s", item.interaction.UserQuery)
		fmt.Fprintf(&b, "\n Response: %s", truncate(item.interaction.BotResponse, m.cfg.RelatedTruncate))
	}
	return b.String()
}

// Clear empties interactions and user context.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.logger.Debug().Msg("memory cleared")
}

func (m *Manager) clearLocked() {
	m.interactions = nil
	m.userContext = make(map[string]ContextValue)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.interactions)
}

func (m *Manager) IsEmpty() bool {
	return m.Len() == 0
}

// UpdateUserContext stores an out-of-band fact about the user (grade,
// preferred language) keyed by name.
func (m *Manager) UpdateUserContext(key string, value core.MetaValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userContext[key] = ContextValue{Value: value, Timestamp: m.now()}
}

// UserContext returns the stored value for key, if any.
func (m *Manager) UserContext(key string) (core.MetaValue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.userContext[key]
	return item.Value, ok
}

// Export returns a copy of the retained history, oldest first.
func (m *Manager) Export() []core.Interaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]core.Interaction, len(m.interactions))
	for i, it := range m.interactions {
		it.Metadata = it.Metadata.Clone()
		out[i] = it
	}
	return out
}

// SyncHistory replays an externally held transcript into memory,
// clearing current state first when non-empty. Messages are consumed in
// strict (user, assistant) pairs; pairs with unexpected roles are
// skipped without re-pairing. The source timestamp of each user message
// is kept in interaction metadata.
func (m *Manager) SyncHistory(msgs []core.HistoryMessage) bool {
	if len(msgs) == 0 {
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.interactions) > 0 {
		m.clearLocked()
	}

	pairs := 0
	for i := 0; i+1 < len(msgs); i += 2 {
		userMsg, botMsg := msgs[i], msgs[i+1]
		if userMsg.Role != core.RoleUser || botMsg.Role != core.RoleAssistant {
			m.logger.Warn().Int("index", i).Msg("skipping malformed history pair during sync")
			continue
		}

		meta := core.Metadata{}
		if !userMsg.Timestamp.IsZero() {
			meta[core.MetaKeyTimestamp] = core.MetaString(userMsg.Timestamp.Format(time.RFC3339))
		}

		m.interactions = append(m.interactions, core.Interaction{
			Timestamp:   m.now(),
			UserQuery:   userMsg.Content,
			BotResponse: botMsg.Content,
			Metadata:    meta,
		})
		m.evictLocked()
		pairs++
	}

	m.logger.Debug().Int("pairs", pairs).Msg("history synced into memory")
	return true
}

// truncate cuts s to max runes, appending an ellipsis only when content
// was actually dropped.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// tokenSet lowercases and splits on whitespace, collapsing duplicates.
func tokenSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// overlapRatio is |query ∩ other| / max(|query|, 1).
func overlapRatio(query, other map[string]struct{}) float64 {
	shared := 0
	for w := range query {
		if _, ok := other[w]; ok {
			shared++
		}
	}
	denom := len(query)
	if denom < 1 {
		denom = 1
	}
	return float64(shared) / float64(denom)
}
