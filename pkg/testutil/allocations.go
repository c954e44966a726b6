package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/allocation"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// RandomAddress returns a random account address
func RandomAddress() common.Address {
	var addr common.Address
	_, _ = rand.Read(addr[:]) // Ignore error in test helper
	return addr
}

// RandomAllocations creates n allocations with random accounts and distinct amounts
func RandomAllocations(n int) []*types.Allocation {
	allocs := make([]*types.Allocation, n)
	for i := 0; i < n; i++ {
		allocs[i] = &types.Allocation{
			Account: RandomAddress(),
			Amount:  new(big.Int).Mul(big.NewInt(int64(i+1)), big.NewInt(1e15)),
		}
	}
	return allocs
}

// NewTestAllocationTree builds a tree over n random allocations
func NewTestAllocationTree(t *testing.T, n int) (*allocation.AllocationTree, []*types.Allocation) {
	t.Helper()
	allocs := RandomAllocations(n)
	tree, err := allocation.NewAllocationTree(allocs)
	require.NoError(t, err)
	return tree, allocs
}

// NewTestRoundRecord builds a round record with a real, verifiable artifact
func NewTestRoundRecord(t *testing.T, roundId uint64, numEntries int) *persistence.RoundRecord {
	t.Helper()
	tree, _ := NewTestAllocationTree(t, numEntries)
	artifact, err := tree.Export()
	require.NoError(t, err)

	return &persistence.RoundRecord{
		RoundId:             roundId,
		RunId:               uuid.New().String(),
		RegistrationAddress: RandomAddress().Hex(),
		ChainId:             31337,
		Source:              fmt.Sprintf("test-round-%d", roundId),
		CreatedAt:           time.Now().Unix(),
		Artifact:            artifact,
	}
}
