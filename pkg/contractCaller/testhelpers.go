package contractCaller

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

// MockContractCaller serves canned registrations for testing
type MockContractCaller struct {
	mu sync.Mutex

	ChainId *big.Int
	Err     error

	rounds map[string][]*types.Allocation
	calls  int
}

// NewMockContractCaller creates a mock reporting the given chain id
func NewMockContractCaller(chainId uint64) *MockContractCaller {
	return &MockContractCaller{
		ChainId: new(big.Int).SetUint64(chainId),
		rounds:  make(map[string][]*types.Allocation),
	}
}

func roundKey(registrationAddress common.Address, roundId uint64) string {
	return fmt.Sprintf("%s/%d", registrationAddress.Hex(), roundId)
}

// SetRound registers the allocations returned for a round
func (m *MockContractCaller) SetRound(registrationAddress common.Address, roundId uint64, allocs []*types.Allocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[roundKey(registrationAddress, roundId)] = allocs
}

// Calls returns the number of ExportRegistrations calls made
func (m *MockContractCaller) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockContractCaller) ExportRegistrations(ctx context.Context, registrationAddress common.Address, roundId uint64) ([]*types.Allocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.Err != nil {
		return nil, m.Err
	}

	allocs, ok := m.rounds[roundKey(registrationAddress, roundId)]
	if !ok {
		return []*types.Allocation{}, nil
	}

	out := make([]*types.Allocation, len(allocs))
	for i, a := range allocs {
		out[i] = &types.Allocation{Account: a.Account, Amount: new(big.Int).Set(a.Amount)}
	}
	return out, nil
}

func (m *MockContractCaller) GetChainId(ctx context.Context) (*big.Int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return new(big.Int).Set(m.ChainId), nil
}

var _ IContractCaller = (*MockContractCaller)(nil)
