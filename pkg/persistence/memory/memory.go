package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
)

// MemoryPersistence is an in-memory implementation of IRoundPersistence.
// This implementation is intended for TESTING and one-off exports.
//
// All data is stored in memory and will be lost when the process exits.
// Thread-safe using sync.RWMutex for concurrent access.
// Deep copies data to prevent external mutation.
type MemoryPersistence struct {
	mu sync.RWMutex

	// Round storage: roundId -> RoundRecord
	rounds map[uint64]*persistence.RoundRecord

	// Closed flag
	closed bool
}

// NewMemoryPersistence creates a new in-memory persistence layer.
// Prints a loud warning since rounds stored here do not survive the process.
func NewMemoryPersistence() *MemoryPersistence {
	fmt.Println("⚠️  WARNING: Using in-memory persistence - ROUND RECORDS WILL BE LOST ON EXIT")
	fmt.Println("⚠️  Set ALLOC_PERSISTENCE_TYPE=badger or redis to keep exported rounds")

	return &MemoryPersistence{
		rounds: make(map[uint64]*persistence.RoundRecord),
	}
}

// SaveRound persists a round record.
func (m *MemoryPersistence) SaveRound(record *persistence.RoundRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil RoundRecord")
	}

	copied, err := persistence.CopyRoundRecord(record)
	if err != nil {
		return fmt.Errorf("failed to copy RoundRecord: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}

	m.rounds[record.RoundId] = copied
	return nil
}

// LoadRound retrieves a round record by round ID.
func (m *MemoryPersistence) LoadRound(roundId uint64) (*persistence.RoundRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, persistence.ErrClosed
	}

	record, exists := m.rounds[roundId]
	if !exists {
		return nil, nil // Not found is not an error
	}

	return persistence.CopyRoundRecord(record)
}

// ListRounds returns all round records sorted by round ID.
func (m *MemoryPersistence) ListRounds() ([]*persistence.RoundRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, persistence.ErrClosed
	}

	ids := make([]uint64, 0, len(m.rounds))
	for id := range m.rounds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	result := make([]*persistence.RoundRecord, 0, len(ids))
	for _, id := range ids {
		copied, err := persistence.CopyRoundRecord(m.rounds[id])
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}

	return result, nil
}

// DeleteRound removes a round record.
func (m *MemoryPersistence) DeleteRound(roundId uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}

	delete(m.rounds, roundId)
	return nil
}

// Close marks the persistence layer as closed.
func (m *MemoryPersistence) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// HealthCheck always succeeds unless closed.
func (m *MemoryPersistence) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return persistence.ErrClosed
	}
	return nil
}
