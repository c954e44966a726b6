package registration

import (
	"context"
	"fmt"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/contractCaller"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/listing"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

// SourceInfo describes where a round's allocations were read from
type SourceInfo struct {
	Source              string
	RegistrationAddress string
	ChainId             uint64
}

// AllocationSource supplies the ordered allocations of a round
type AllocationSource interface {
	FetchAllocations(ctx context.Context, roundId uint64) ([]*types.Allocation, error)
	Info() SourceInfo
}

// ChainSource reads allocations from the registration contract
type ChainSource struct {
	caller              contractCaller.IContractCaller
	registrationAddress common.Address
	chainId             uint64
}

// NewChainSource resolves the chain id once so every round record carries it
func NewChainSource(ctx context.Context, caller contractCaller.IContractCaller, registrationAddress common.Address) (*ChainSource, error) {
	chainId, err := caller.GetChainId(ctx)
	if err != nil {
		return nil, err
	}
	return &ChainSource{
		caller:              caller,
		registrationAddress: registrationAddress,
		chainId:             chainId.Uint64(),
	}, nil
}

func (s *ChainSource) FetchAllocations(ctx context.Context, roundId uint64) ([]*types.Allocation, error) {
	return s.caller.ExportRegistrations(ctx, s.registrationAddress, roundId)
}

func (s *ChainSource) Info() SourceInfo {
	return SourceInfo{
		Source:              fmt.Sprintf("contract:%s", s.registrationAddress.Hex()),
		RegistrationAddress: s.registrationAddress.Hex(),
		ChainId:             s.chainId,
	}
}

// ListingSource reads allocations from a listing file; the round id is not used.
type ListingSource struct {
	path string
}

func NewListingSource(path string) *ListingSource {
	return &ListingSource{path: path}
}

func (s *ListingSource) FetchAllocations(ctx context.Context, roundId uint64) ([]*types.Allocation, error) {
	return listing.LoadFile(s.path)
}

func (s *ListingSource) Info() SourceInfo {
	return SourceInfo{Source: fmt.Sprintf("listing:%s", s.path)}
}
