package reservation

import (
	"context"
	"sync"

	"github.com/lacabrera/cabrera-mcp/internal/schedule"
)

// MemoryRepository keeps reservations in process memory. It backs tests
// and the "memory" storage driver; nothing survives a restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Record)}
}

// SaveReservation stores rec under its id.
func (m *MemoryRepository) SaveReservation(_ context.Context, rec Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; !ok {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec
	return rec.ID, nil
}

// GetReservation returns the record with id, or ErrNotFound.
func (m *MemoryRepository) GetReservation(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// BookedCovers sums party sizes of reservations on date whose start
// falls in [fromMinutes, toMinutes).
func (m *MemoryRepository) BookedCovers(_ context.Context, date string, fromMinutes, toMinutes int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, id := range m.order {
		rec := m.records[id]
		if rec.Date != date {
			continue
		}
		minutes, err := schedule.ParseMinutes(rec.Time)
		if err != nil {
			continue
		}
		if minutes >= fromMinutes && minutes < toMinutes {
			total += rec.PartySize
		}
	}
	return total, nil
}

// Len returns the number of stored reservations.
func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
