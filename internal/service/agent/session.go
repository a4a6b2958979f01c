package agent

import (
	"context"
	"sync"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/memory"
)

// Session binds one conversation's memory to the shared pipeline. The
// mutex serializes requests within a session; memory is never shared
// across sessions.
type Session struct {
	mu    sync.Mutex
	agent *Agent
	mem   *memory.Manager
}

func NewSession(agent *Agent, mem *memory.Manager) *Session {
	return &Session{agent: agent, mem: mem}
}

func (s *Session) ProcessQuery(ctx context.Context, req core.QueryRequest) core.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent.ProcessQuery(ctx, s.mem, req)
}

func (s *Session) ClearMemory() {
	s.mem.Clear()
}

func (s *Session) HistoryInfo(query string) string {
	return s.mem.HistoryInfo(query)
}

// SyncHistory replays an externally held transcript into this session's
// memory, clearing current state first when non-empty.
func (s *Session) SyncHistory(msgs []core.HistoryMessage) bool {
	return s.mem.SyncHistory(msgs)
}

func (s *Session) Summary() memory.Summary {
	return s.mem.Summary()
}

func (s *Session) MemoryInfo() memory.Info {
	return s.mem.Info()
}

// Sessions hands out one Session per conversation id, creating them on
// demand. Transports key sessions by their own notion of a conversation
// (chat id, terminal).
type Sessions struct {
	mu       sync.Mutex
	agent    *Agent
	memCfg   *config.MemoryConfig
	sessions map[string]*Session
}

func NewSessions(agent *Agent, memCfg *config.MemoryConfig) *Sessions {
	return &Sessions{
		agent:    agent,
		memCfg:   memCfg,
		sessions: make(map[string]*Session),
	}
}

func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		session = NewSession(s.agent, memory.NewManager(s.memCfg))
		s.sessions[id] = session
	}
	return session
}
