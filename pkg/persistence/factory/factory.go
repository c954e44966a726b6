package factory

import (
	"fmt"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/config"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence/badger"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence/memory"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence/redis"
	"go.uber.org/zap"
)

// NewRoundPersistence opens the round store selected by cfg.
// It returns nil without error when no store is configured.
func NewRoundPersistence(cfg *config.PersistenceConfig, logger *zap.Logger) (persistence.IRoundPersistence, error) {
	if cfg == nil {
		return nil, nil
	}

	switch cfg.Type {
	case config.PersistenceType_None:
		return nil, nil
	case config.PersistenceType_Memory:
		return memory.NewMemoryPersistence(), nil
	case config.PersistenceType_Badger:
		return badger.NewBadgerPersistence(cfg.DataPath, logger)
	case config.PersistenceType_Redis:
		return redis.NewRedisPersistence(&redis.RedisConfig{
			Address:   cfg.Redis.Address,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported persistence type %q", cfg.Type)
	}
}
