package main

import (
	"fmt"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/config"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func artifactFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "artifact",
		Aliases:  []string{"a"},
		Usage:    "Path of an exported artifact",
		EnvVars:  []string{config.EnvAllocArtifact},
		Required: required,
	}
}

func listingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "listing",
		Aliases: []string{"l"},
		Usage:   "Listing file (JSON or CSV) to read allocations from instead of the chain",
		EnvVars: []string{config.EnvAllocListing},
	}
}

func buildFlags() []cli.Flag {
	return []cli.Flag{
		listingFlag(),
		&cli.StringFlag{
			Name:    "rpc-url",
			Aliases: []string{"rpc"},
			Usage:   "Ethereum RPC endpoint URL",
			Value:   "http://localhost:8545",
			EnvVars: []string{config.EnvAllocRPCURL},
		},
		&cli.StringFlag{
			Name:    "chain-id",
			Aliases: []string{"chain"},
			Usage:   fmt.Sprintf("Expected chain, by ID or name, checked against the RPC endpoint: %s", config.GetSupportedChainIDsString()),
			EnvVars: []string{config.EnvAllocChainID},
		},
		&cli.StringFlag{
			Name:    "registration-address",
			Aliases: []string{"reg"},
			Usage:   "Registration contract address",
			EnvVars: []string{config.EnvAllocRegistrationAddress},
		},
		&cli.Uint64Flag{
			Name:    "round-id",
			Aliases: []string{"id"},
			Usage:   "Registration round passed to exportAll",
			EnvVars: []string{config.EnvAllocRoundID},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Artifact output path",
			Value:   "registrationMerkleTree.json",
			EnvVars: []string{config.EnvAllocOutput},
		},
		&cli.BoolFlag{
			Name:    "legacy",
			Usage:   "Write the bare [{amount, address, proof}] array instead of the artifact",
			EnvVars: []string{config.EnvAllocLegacy},
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "Goroutines used to hash each tree level (0 or 1 builds sequentially)",
			EnvVars: []string{config.EnvAllocWorkers},
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		artifactFlag(false),
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   8080,
			Usage:   "HTTP server port",
			EnvVars: []string{config.EnvAllocPort},
		},
		&cli.Uint64Flag{
			Name:    "round-id",
			Aliases: []string{"id"},
			Usage:   "Round to serve from the round store when no artifact is given",
			EnvVars: []string{config.EnvAllocRoundID},
		},
		&cli.Float64Flag{
			Name:    "rate-limit",
			Usage:   "Requests per second per client (0 disables limiting)",
			Value:   20,
			EnvVars: []string{config.EnvAllocRateLimit},
		},
		&cli.IntFlag{
			Name:    "burst",
			Usage:   "Request burst per client",
			Value:   40,
			EnvVars: []string{config.EnvAllocRateBurst},
		},
	}
}

func persistenceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "persistence-type",
			Usage:   "Round store: memory, badger or redis (empty disables the store)",
			EnvVars: []string{config.EnvAllocPersistenceType},
		},
		&cli.StringFlag{
			Name:    "data-path",
			Usage:   "Badger data directory",
			Value:   "./data/rounds",
			EnvVars: []string{config.EnvAllocDataPath},
		},
		&cli.StringFlag{
			Name:    "redis-address",
			Usage:   "Redis address (host:port)",
			EnvVars: []string{config.EnvAllocRedisAddress},
		},
		&cli.StringFlag{
			Name:    "redis-password",
			Usage:   "Redis password",
			EnvVars: []string{config.EnvAllocRedisPassword},
		},
		&cli.IntFlag{
			Name:    "redis-db",
			Usage:   "Redis database number",
			EnvVars: []string{config.EnvAllocRedisDB},
		},
		&cli.StringFlag{
			Name:    "redis-key-prefix",
			Usage:   "Prefix for every Redis key",
			EnvVars: []string{config.EnvAllocRedisKeyPrefix},
		},
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("verbose"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

func parsePersistenceConfig(c *cli.Context) config.PersistenceConfig {
	return config.PersistenceConfig{
		Type:     config.PersistenceType(c.String("persistence-type")),
		DataPath: c.String("data-path"),
		Redis: config.RedisConfig{
			Address:   c.String("redis-address"),
			Password:  c.String("redis-password"),
			DB:        c.Int("redis-db"),
			KeyPrefix: c.String("redis-key-prefix"),
		},
	}
}

func parseBuildConfig(c *cli.Context) (*config.BuildConfig, error) {
	chainId, err := config.ParseChain(c.String("chain-id"))
	if err != nil {
		return nil, err
	}
	return &config.BuildConfig{
		ListingPath:         c.String("listing"),
		RpcUrl:              c.String("rpc-url"),
		ChainID:             chainId,
		RegistrationAddress: c.String("registration-address"),
		RoundId:             c.Uint64("round-id"),
		OutputPath:          c.String("output"),
		Legacy:              c.Bool("legacy"),
		Workers:             c.Int("workers"),
		Persistence:         parsePersistenceConfig(c),
		Debug:               c.Bool("verbose"),
	}, nil
}

func parseServerConfig(c *cli.Context) *config.ServerConfig {
	return &config.ServerConfig{
		Port:         c.Int("port"),
		ArtifactPath: c.String("artifact"),
		RateLimit:    c.Float64("rate-limit"),
		Burst:        c.Int("burst"),
		RoundId:      c.Uint64("round-id"),
		Persistence:  parsePersistenceConfig(c),
		Debug:        c.Bool("verbose"),
	}
}
