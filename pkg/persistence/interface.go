package persistence

// IRoundPersistence defines the interface for storing exported registration rounds.
// All implementations must be thread-safe.
//
// The interface supports:
// - Round record management (save, load, list, delete)
// - Lifecycle management (close, health check)
type IRoundPersistence interface {
	// Round Management

	// SaveRound persists a round record indexed by its round ID.
	// Overwrites any existing record for the same round.
	SaveRound(record *RoundRecord) error

	// LoadRound retrieves a round record by round ID.
	// Returns nil if the round doesn't exist, error only on storage failure.
	LoadRound(roundId uint64) (*RoundRecord, error)

	// ListRounds returns all persisted rounds sorted by round ID (ascending).
	// Returns empty slice if no rounds exist, error only on storage failure.
	ListRounds() ([]*RoundRecord, error)

	// DeleteRound removes a round record.
	// Idempotent - returns nil if the round doesn't exist.
	DeleteRound(roundId uint64) error

	// Lifecycle Management

	// Close cleanly shuts down the persistence layer.
	// Idempotent - safe to call multiple times.
	// After Close(), all other operations should return errors.
	Close() error

	// HealthCheck verifies the persistence layer is operational.
	HealthCheck() error
}
