package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/config"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence/factory"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/proofServer"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func serveCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	cfg := parseServerConfig(c)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	artifact, err := loadServedArtifact(cfg, l)
	if err != nil {
		return err
	}
	if err := artifact.Verify(); err != nil {
		return fmt.Errorf("refusing to serve artifact that does not verify: %w", err)
	}

	server, err := proofServer.NewServer(artifact, &proofServer.Config{
		Port:      cfg.Port,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, l)
	if err != nil {
		return err
	}

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start proof server: %w", err)
	}
	l.Sugar().Infow("Available endpoints",
		"root", "GET /root",
		"proof", "GET /proof?address=&amount=",
		"verify", "POST /verify",
		"health", "GET /health")
	l.Sugar().Info("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadServedArtifact(cfg *config.ServerConfig, l *zap.Logger) (*exporter.Artifact, error) {
	if cfg.ArtifactPath != "" {
		return exporter.LoadArtifactFile(cfg.ArtifactPath)
	}

	store, err := factory.NewRoundPersistence(&cfg.Persistence, l)
	if err != nil {
		return nil, fmt.Errorf("failed to open round store: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("no artifact path and no round store configured")
	}
	defer func() { _ = store.Close() }()

	record, err := store.LoadRound(cfg.RoundId)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Artifact == nil {
		return nil, fmt.Errorf("round %d is not in the round store", cfg.RoundId)
	}
	l.Sugar().Infow("Serving round from store", "roundId", record.RoundId, "runId", record.RunId, "source", record.Source)
	return record.Artifact, nil
}
