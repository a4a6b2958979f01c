package memory

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/core"
)

func testConfig() *config.MemoryConfig {
	return &config.MemoryConfig{
		MaxHistory:      10,
		MaxAgeHours:     24,
		QueryOverlap:    0.3,
		ResponseOverlap: 0.2,
		RecentTruncate:  200,
		RelatedTruncate: 150,
	}
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestManager() (*Manager, *fakeClock) {
	clock := newFakeClock()
	return NewManager(testConfig(), WithClock(clock.Now)), clock
}

func TestAdd_CountTruncation(t *testing.T) {
	m, _ := newTestManager()

	for i := 1; i <= 15; i++ {
		m.Add(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i), nil)
	}

	require.Equal(t, 10, m.Len())

	// Oldest five dropped, most recent kept in order.
	exported := m.Export()
	assert.Equal(t, "question 6", exported[0].UserQuery)
	assert.Equal(t, "question 15", exported[9].UserQuery)
}

func TestAdd_AgeEviction(t *testing.T) {
	m, clock := newTestManager()

	m.Add("old question", "old answer", nil)
	clock.Advance(25 * time.Hour)
	m.Add("new question", "new answer", nil)

	require.Equal(t, 1, m.Len())
	assert.Equal(t, "new question", m.Export()[0].UserQuery)
}

func TestAdd_AgeEvictionAtExactCutoff(t *testing.T) {
	m, clock := newTestManager()

	m.Add("boundary question", "answer", nil)
	// An interaction exactly max_age old is evicted: retention requires
	// strictly newer than the cutoff.
	clock.Advance(24 * time.Hour)
	m.Add("fresh question", "answer", nil)

	require.Equal(t, 1, m.Len())
	assert.Equal(t, "fresh question", m.Export()[0].UserQuery)
}

func TestAdd_InvariantsHoldAfterEveryInsert(t *testing.T) {
	m, clock := newTestManager()
	cfg := testConfig()

	for i := 0; i < 40; i++ {
		clock.Advance(time.Duration(i%7) * time.Hour)
		m.Add(fmt.Sprintf("q%d", i), fmt.Sprintf("r%d", i), nil)

		require.LessOrEqual(t, m.Len(), cfg.MaxHistory, "insert %d breaks count bound", i)

		cutoff := clock.Now().Add(-time.Duration(cfg.MaxAgeHours) * time.Hour)
		for _, it := range m.Export() {
			require.True(t, it.Timestamp.After(cutoff), "insert %d retains an expired interaction", i)
		}
	}
}

func TestAdd_MetadataIsCopied(t *testing.T) {
	m, _ := newTestManager()

	meta := core.Metadata{core.MetaKeyHasImage: core.MetaBool(false)}
	m.Add("q", "r", meta)
	meta[core.MetaKeyHasImage] = core.MetaBool(true)

	got, ok := m.Export()[0].Metadata[core.MetaKeyHasImage]
	require.True(t, ok)
	b, _ := got.Bool()
	assert.False(t, b, "stored metadata must not alias the caller's map")
}

func TestRecentContext_EmptyLiteral(t *testing.T) {
	m, _ := newTestManager()
	assert.Equal(t, NoHistoryLiteral, m.RecentContext(5))
}

func TestRecentContext_Format(t *testing.T) {
	m, _ := newTestManager()
	m.Add("What is friction?", "Friction is a force that opposes motion.", nil)
	m.Add("What causes it?", "Surface irregularities interlock.", nil)

	want := "Previous conversation context:" +
		"\n\n1. User: What is friction?" +
		"\n Assistant: Friction is a force that opposes motion." +
		"\n\n2. User: What causes it?" +
		"\n Assistant: Surface irregularities interlock."
	assert.Equal(t, want, m.RecentContext(5))
}

func TestRecentContext_EntryCount(t *testing.T) {
	tests := []struct {
		name    string
		stored  int
		lastN   int
		entries int
	}{
		{name: "fewer stored than requested", stored: 2, lastN: 5, entries: 2},
		{name: "more stored than requested", stored: 8, lastN: 3, entries: 3},
		{name: "exact", stored: 4, lastN: 4, entries: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager()
			for i := 0; i < tt.stored; i++ {
				m.Add(fmt.Sprintf("q%d", i), "r", nil)
			}
			got := strings.Count(m.RecentContext(tt.lastN), "\n\n")
			assert.Equal(t, tt.entries, got)
		})
	}
}

func TestRecentContext_TruncatesLongResponses(t *testing.T) {
	m, _ := newTestManager()
	long := strings.Repeat("x", 250)
	m.Add("q", long, nil)

	got := m.RecentContext(1)
	assert.Contains(t, got, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, got, strings.Repeat("x", 201))
}

func TestRelatedContext_IdenticalQueryAlwaysQualifies(t *testing.T) {
	m, _ := newTestManager()
	m.Add("what is photosynthesis", "Plants make food from light.", nil)

	got := m.RelatedContext("what is photosynthesis")
	require.NotEmpty(t, got)
	assert.Contains(t, got, "Previously asked: what is photosynthesis")
}

func TestRelatedContext_ThresholdsAreStrict(t *testing.T) {
	m, _ := newTestManager()
	// Query has exactly 10 distinct words; 3 shared gives 0.3 which must
	// NOT qualify, 2 shared in the response gives 0.2 which must not
	// qualify either.
	m.Add("alpha beta gamma nothing else here at all today friend", "alpha beta unrelated", nil)

	got := m.RelatedContext("alpha beta gamma one two three four five six seven")
	assert.Empty(t, got)
}

func TestRelatedContext_RankedByRelevanceTopThree(t *testing.T) {
	m, _ := newTestManager()
	// Relevance per entry against the two-word query "force pressure":
	// 0.5 (one shared word), 1.0 (both), 0.5 via response, and a
	// non-qualifying entry.
	m.Add("force basics intro lecture", "irrelevant text entirely", nil)           // 1/2 = 0.5
	m.Add("force pressure", "matter pushes", nil)                                  // 2/2 = 1.0
	m.Add("completely different topic", "pressure explained simply for you", nil)  // response 1/2 = 0.5
	m.Add("nothing shared whatsoever", "nothing to see", nil)                      // 0

	got := m.RelatedContext("force pressure")
	require.NotEmpty(t, got)

	first := strings.Index(got, "force pressure")
	second := strings.Index(got, "force basics intro lecture")
	third := strings.Index(got, "completely different topic")
	assert.True(t, first >= 0 && second >= 0 && third >= 0, "all qualifying entries present: %q", got)
	assert.Less(t, first, second, "highest relevance listed first")
	assert.Less(t, second, third, "stable order among equal relevance")
	assert.NotContains(t, got, "nothing shared whatsoever")
}

func TestRelatedContext_CapsAtThreeEntries(t *testing.T) {
	m, _ := newTestManager()
	for i := 0; i < 5; i++ {
		m.Add("force pressure friction", fmt.Sprintf("answer %d", i), nil)
	}

	got := m.RelatedContext("force pressure friction")
	assert.Equal(t, 3, strings.Count(got, "Previously asked:"))
}

func TestRelatedContext_EmptyCases(t *testing.T) {
	m, _ := newTestManager()
	assert.Empty(t, m.RelatedContext("anything"), "empty memory yields empty related context")

	m.Add("completely unrelated question", "completely unrelated answer", nil)
	assert.Empty(t, m.RelatedContext("gravity"), "no qualifying interaction yields empty string")
}

func TestClear(t *testing.T) {
	m, _ := newTestManager()
	m.Add("q", "r", nil)
	m.UpdateUserContext("grade", core.MetaString("8"))

	m.Clear()

	assert.Equal(t, 0, m.Len())
	_, ok := m.UserContext("grade")
	assert.False(t, ok)
	assert.Equal(t, NoHistoryLiteral, m.RecentContext(3))
}

func TestUserContext(t *testing.T) {
	m, _ := newTestManager()

	_, ok := m.UserContext("language")
	require.False(t, ok)

	m.UpdateUserContext("language", core.MetaString("english"))
	got, ok := m.UserContext("language")
	require.True(t, ok)
	s, _ := got.Text()
	assert.Equal(t, "english", s)
}

func TestExport_ReturnsCopy(t *testing.T) {
	m, _ := newTestManager()
	m.Add("q", "r", core.Metadata{"k": core.MetaString("v")})

	exported := m.Export()
	exported[0].UserQuery = "mutated"
	exported[0].Metadata["k"] = core.MetaString("mutated")

	fresh := m.Export()
	assert.Equal(t, "q", fresh[0].UserQuery)
	v, _ := fresh[0].Metadata["k"].Text()
	assert.Equal(t, "v", v)
}

func TestSyncHistory_ReplaysPairsInOrder(t *testing.T) {
	m, _ := newTestManager()
	ts := time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)

	ok := m.SyncHistory([]core.HistoryMessage{
		{Role: core.RoleUser, Content: "What is a cell?", Timestamp: ts},
		{Role: core.RoleAssistant, Content: "The basic unit of life."},
		{Role: core.RoleUser, Content: "What about tissue?", Timestamp: ts.Add(time.Minute)},
		{Role: core.RoleAssistant, Content: "A group of similar cells."},
	})

	require.True(t, ok)
	require.Equal(t, 2, m.Len())

	exported := m.Export()
	assert.Equal(t, "What is a cell?", exported[0].UserQuery)
	assert.Equal(t, "The basic unit of life.", exported[0].BotResponse)

	stamp, found := exported[0].Metadata[core.MetaKeyTimestamp]
	require.True(t, found, "source timestamp kept in metadata")
	s, _ := stamp.Text()
	assert.Equal(t, ts.Format(time.RFC3339), s)
}

func TestSyncHistory_ClearsExistingMemoryFirst(t *testing.T) {
	m, _ := newTestManager()
	m.Add("stale question", "stale answer", nil)

	ok := m.SyncHistory([]core.HistoryMessage{
		{Role: core.RoleUser, Content: "fresh question"},
		{Role: core.RoleAssistant, Content: "fresh answer"},
	})

	require.True(t, ok)
	require.Equal(t, 1, m.Len())
	assert.Equal(t, "fresh question", m.Export()[0].UserQuery)
}

func TestSyncHistory_SkipsMalformedPairs(t *testing.T) {
	m, _ := newTestManager()

	ok := m.SyncHistory([]core.HistoryMessage{
		{Role: core.RoleAssistant, Content: "answer without question"},
		{Role: core.RoleUser, Content: "question one"},
		{Role: core.RoleUser, Content: "question two"},
		{Role: core.RoleAssistant, Content: "answer two"},
	})

	require.True(t, ok)
	// Pairing strides two messages at a time without re-alignment, so
	// only the final well-formed pair lands.
	require.Equal(t, 1, m.Len())
	assert.Equal(t, "question two", m.Export()[0].UserQuery)
}

func TestSyncHistory_EmptyInputIsNoop(t *testing.T) {
	m, _ := newTestManager()
	m.Add("kept", "kept", nil)

	require.True(t, m.SyncHistory(nil))
	assert.Equal(t, 1, m.Len())
}

func TestSyncHistory_RoundTripThroughAllQuestions(t *testing.T) {
	m, _ := newTestManager()

	msgs := []core.HistoryMessage{
		{Role: core.RoleUser, Content: "What is friction?"},
		{Role: core.RoleAssistant, Content: "A force."},
		{Role: core.RoleUser, Content: "What is pressure?"},
		{Role: core.RoleAssistant, Content: "Force per area."},
		{Role: core.RoleUser, Content: "What is sound?"},
		{Role: core.RoleAssistant, Content: "A vibration."},
	}
	require.True(t, m.SyncHistory(msgs))

	want := "All your questions:" +
		"\n1. What is friction?" +
		"\n2. What is pressure?" +
		"\n3. What is sound?"
	assert.Equal(t, want, m.HistoryInfo("show me all questions"))
}
