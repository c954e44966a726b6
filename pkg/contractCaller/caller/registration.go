package caller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/bindings/IRegisterIdo"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ExportRegistrations reads every registration of a round from the registration contract.
// A round without registrations returns an empty slice.
func (cc *ContractCaller) ExportRegistrations(
	ctx context.Context,
	registrationAddress common.Address,
	roundId uint64,
) ([]*types.Allocation, error) {
	registration, err := IRegisterIdo.NewIRegisterIdoCaller(registrationAddress, cc.backend)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create registration contract instance")
	}

	length, addresses, amounts, err := registration.ExportAll(&bind.CallOpts{Context: ctx}, new(big.Int).SetUint64(roundId))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to export registrations for round %d from %s", roundId, registrationAddress.Hex())
	}

	if length == nil || length.Sign() == 0 {
		cc.logger.Sugar().Infow("No registrations for round",
			"registrationAddress", registrationAddress.Hex(),
			"roundId", roundId,
		)
		return []*types.Allocation{}, nil
	}

	if len(addresses) != len(amounts) {
		return nil, fmt.Errorf("registration export for round %d returned %d addresses and %d amounts", roundId, len(addresses), len(amounts))
	}
	if !length.IsUint64() || length.Uint64() > uint64(len(addresses)) {
		return nil, fmt.Errorf("registration export for round %d reports length %s but returned %d entries", roundId, length.String(), len(addresses))
	}

	count := int(length.Uint64())
	allocs := make([]*types.Allocation, count)
	for i := 0; i < count; i++ {
		if amounts[i] == nil {
			return nil, fmt.Errorf("registration %d of round %d has no amount", i, roundId)
		}
		allocs[i] = &types.Allocation{
			Account: addresses[i],
			Amount:  new(big.Int).Set(amounts[i]),
		}
	}

	cc.logger.Sugar().Infow("Exported registrations",
		"registrationAddress", registrationAddress.Hex(),
		"roundId", roundId,
		"count", count,
	)
	return allocs, nil
}
