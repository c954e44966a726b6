package contractCaller

import (
	"context"
	"math/big"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

type IContractCaller interface {
	// ExportRegistrations returns the registrations of a round in contract order
	ExportRegistrations(
		ctx context.Context,
		registrationAddress common.Address,
		roundId uint64,
	) ([]*types.Allocation, error)

	GetChainId(ctx context.Context) (*big.Int, error)
}

var _ IContractCaller = (*caller.ContractCaller)(nil)
