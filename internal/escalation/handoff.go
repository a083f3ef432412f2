package escalation

import (
	"context"
	"sync"
	"time"
)

// Handoff marks a conversation as needing a human.
type Handoff struct {
	ConversationID string    `json:"conversation_id"`
	Reason         string    `json:"reason"`
	MarkedAt       time.Time `json:"marked_at"`
}

// HandoffStore records handoffs. Marking the same conversation again
// replaces the reason and timestamp.
type HandoffStore interface {
	MarkHumanRequired(ctx context.Context, conversationID, reason string) (Handoff, error)
}

// MemoryHandoffs keeps handoffs in process memory for the "memory"
// storage driver.
type MemoryHandoffs struct {
	mu       sync.Mutex
	handoffs map[string]Handoff
	now      func() time.Time
}

// NewMemoryHandoffs creates an empty MemoryHandoffs.
func NewMemoryHandoffs() *MemoryHandoffs {
	return &MemoryHandoffs{
		handoffs: make(map[string]Handoff),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// MarkHumanRequired implements HandoffStore.
func (m *MemoryHandoffs) MarkHumanRequired(_ context.Context, conversationID, reason string) (Handoff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := Handoff{ConversationID: conversationID, Reason: reason, MarkedAt: m.now()}
	m.handoffs[conversationID] = h
	return h, nil
}

// Get returns the handoff for conversationID, if any.
func (m *MemoryHandoffs) Get(conversationID string) (Handoff, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handoffs[conversationID]
	return h, ok
}
