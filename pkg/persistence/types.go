package persistence

import (
	"errors"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
)

// ErrClosed is returned by every operation after Close
var ErrClosed = errors.New("persistence layer is closed")

// RoundRecord is the durable result of exporting one registration round.
type RoundRecord struct {
	// RoundId is the registration round (the contract's exportAll id).
	// This serves as the primary key for round storage.
	RoundId uint64 `json:"roundId"`

	// RunId identifies the export run that produced this record
	RunId string `json:"runId"`

	// RegistrationAddress is the contract the allocations were read from.
	// Empty when the round was built from a listing file.
	RegistrationAddress string `json:"registrationAddress,omitempty"`

	// ChainId of the registration contract, 0 for listing builds
	ChainId uint64 `json:"chainId,omitempty"`

	// Source describes where allocations came from (contract or listing path)
	Source string `json:"source"`

	// CreatedAt is the Unix timestamp of the export
	CreatedAt int64 `json:"createdAt"`

	// Artifact holds the root and every entry's proof
	Artifact *exporter.Artifact `json:"artifact"`
}

// Root returns the hex root of the round, or "" when there is no artifact
func (r *RoundRecord) Root() string {
	if r == nil || r.Artifact == nil {
		return ""
	}
	return r.Artifact.Root
}
