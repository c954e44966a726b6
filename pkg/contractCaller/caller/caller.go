package caller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ContractCaller struct {
	ethclient *ethclient.Client
	backend   bind.ContractCaller
	logger    *zap.Logger
}

// NewContractCallerFromRpcUrl dials rpcUrl and returns a caller over the connection
func NewContractCallerFromRpcUrl(
	ctx context.Context,
	rpcUrl string,
	logger *zap.Logger,
) (*ContractCaller, error) {
	client, err := ethclient.DialContext(ctx, rpcUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial ethereum rpc %s", rpcUrl)
	}

	return NewContractCaller(client, logger), nil
}

func NewContractCaller(
	ethclient *ethclient.Client,
	logger *zap.Logger,
) *ContractCaller {
	return &ContractCaller{
		ethclient: ethclient,
		backend:   ethclient,
		logger:    logger,
	}
}

// NewContractCallerWithBackend builds a read-only caller over any contract backend.
// GetChainId is unavailable on callers built this way.
func NewContractCallerWithBackend(
	backend bind.ContractCaller,
	logger *zap.Logger,
) *ContractCaller {
	return &ContractCaller{
		backend: backend,
		logger:  logger,
	}
}

func (cc *ContractCaller) GetChainId(ctx context.Context) (*big.Int, error) {
	if cc.ethclient == nil {
		return nil, fmt.Errorf("contract caller has no ethereum client")
	}
	chainId, err := cc.ethclient.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}
	return chainId, nil
}

// Close releases the underlying RPC connection, if any
func (cc *ContractCaller) Close() {
	if cc.ethclient != nil {
		cc.ethclient.Close()
	}
}
