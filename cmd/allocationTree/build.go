package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/config"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence/factory"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/registration"
	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func buildCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	cfg, err := parseBuildConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := factory.NewRoundPersistence(&cfg.Persistence, l)
	if err != nil {
		return fmt.Errorf("failed to open round store: %w", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	source, closeSource, err := newAllocationSource(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer closeSource()

	exp := registration.NewExporter(source, store, l, registration.WithWorkers(cfg.Workers))
	record, err := exp.ExportRound(ctx, cfg.RoundId)
	if err != nil {
		return err
	}

	if err := exporter.WriteArtifactFile(cfg.OutputPath, record.Artifact, cfg.Legacy); err != nil {
		return err
	}

	l.Sugar().Infow("Wrote artifact",
		"path", cfg.OutputPath,
		"legacy", cfg.Legacy,
		"entries", len(record.Artifact.Entries),
		"runId", record.RunId,
	)
	fmt.Println("root", record.Root())
	return nil
}

func newAllocationSource(ctx context.Context, cfg *config.BuildConfig, l *zap.Logger) (registration.AllocationSource, func(), error) {
	if !cfg.UsesChain() {
		return registration.NewListingSource(cfg.ListingPath), func() {}, nil
	}

	cc, err := caller.NewContractCallerFromRpcUrl(ctx, cfg.RpcUrl, l)
	if err != nil {
		return nil, nil, err
	}

	source, err := registration.NewChainSource(ctx, cc, common.HexToAddress(cfg.RegistrationAddress))
	if err != nil {
		cc.Close()
		return nil, nil, err
	}

	chainId := config.ChainId(source.Info().ChainId)
	if cfg.ChainID != 0 && cfg.ChainID != chainId {
		cc.Close()
		return nil, nil, fmt.Errorf("rpc endpoint is on chain %d, expected %d", chainId, cfg.ChainID)
	}
	if name, ok := config.ChainIdToName[chainId]; ok {
		l.Sugar().Infow("Using chain", "name", name, "chain_id", chainId)
	} else {
		l.Sugar().Warnw("Chain is not a known deployment target", "chain_id", chainId)
	}

	return source, cc.Close, nil
}
