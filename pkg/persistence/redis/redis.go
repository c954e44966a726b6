package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/persistence"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Key prefixes for namespacing in Redis
const (
	keyPrefixRound       = "alloc:round:"
	keySchemaVersion     = "alloc:metadata:schema_version"
	currentSchemaVersion = "v1"

	// Key set for listing operations (Redis doesn't support prefix iteration natively)
	keySetRounds = "alloc:rounds:index"
)

// RedisPersistence is a persistence implementation using Redis.
// Provides shared storage of exported rounds for claim services running on several hosts.
type RedisPersistence struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string // Custom prefix for all keys
	mu        sync.RWMutex
	closed    bool
}

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string
	// Password is the optional Redis password
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix is an optional custom prefix for all keys (for multi-tenant setups).
	// e.g. "ido:" results in keys like "ido:alloc:round:7".
	KeyPrefix string
}

// NewRedisPersistence creates a new Redis-backed persistence layer.
func NewRedisPersistence(cfg *RedisConfig, logger *zap.Logger) (*RedisPersistence, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	rp := &RedisPersistence{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
	}

	if err := rp.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Sugar().Infow("Redis persistence initialized", "address", cfg.Address, "db", cfg.DB, "key_prefix", cfg.KeyPrefix)

	return rp, nil
}

// prefixKey adds the custom key prefix (if configured) to a key
func (r *RedisPersistence) prefixKey(key string) string {
	if r.keyPrefix == "" {
		return key
	}
	return r.keyPrefix + key
}

func (r *RedisPersistence) roundKey(roundId uint64) string {
	return r.prefixKey(keyPrefixRound + strconv.FormatUint(roundId, 10))
}

// initSchema initializes or validates the schema version
func (r *RedisPersistence) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(keySchemaVersion)

	existingVersion, err := r.client.Get(ctx, schemaKey).Result()
	if err == redis.Nil {
		return r.client.Set(ctx, schemaKey, currentSchemaVersion, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if existingVersion != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
	}

	return nil
}

// SaveRound persists a round record
func (r *RedisPersistence) SaveRound(record *persistence.RoundRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil RoundRecord")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx := context.Background()

	data, err := persistence.MarshalRoundRecord(record)
	if err != nil {
		return fmt.Errorf("failed to marshal RoundRecord: %w", err)
	}

	// Store record and index entry together
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.roundKey(record.RoundId), data, 0)
	pipe.SAdd(ctx, r.prefixKey(keySetRounds), strconv.FormatUint(record.RoundId, 10))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save RoundRecord: %w", err)
	}

	return nil
}

// LoadRound retrieves a round record
func (r *RedisPersistence) LoadRound(roundId uint64) (*persistence.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, persistence.ErrClosed
	}

	data, err := r.client.Get(context.Background(), r.roundKey(roundId)).Bytes()
	if err == redis.Nil {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load RoundRecord: %w", err)
	}

	record, err := persistence.UnmarshalRoundRecord(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal RoundRecord: %w", err)
	}

	return record, nil
}

// ListRounds returns all round records sorted by round ID
func (r *RedisPersistence) ListRounds() ([]*persistence.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, persistence.ErrClosed
	}

	ctx := context.Background()
	indexKey := r.prefixKey(keySetRounds)

	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list round ids: %w", err)
	}

	if len(ids) == 0 {
		return []*persistence.RoundRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefixKey(keyPrefixRound + id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch RoundRecords: %w", err)
	}

	records := make([]*persistence.RoundRecord, 0, len(values))
	for i, val := range values {
		if val == nil {
			// Key was in index but doesn't exist - clean up index
			r.client.SRem(ctx, indexKey, ids[i])
			continue
		}

		data, ok := val.(string)
		if !ok {
			r.logger.Sugar().Warnw("Unexpected value type for RoundRecord", "key", keys[i])
			continue
		}

		record, err := persistence.UnmarshalRoundRecord([]byte(data))
		if err != nil {
			r.logger.Sugar().Warnw("Failed to unmarshal RoundRecord, skipping",
				"key", keys[i], "error", err)
			continue
		}

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RoundId < records[j].RoundId
	})

	return records, nil
}

// DeleteRound removes a round record
func (r *RedisPersistence) DeleteRound(roundId uint64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx := context.Background()

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.roundKey(roundId))
	pipe.SRem(ctx, r.prefixKey(keySetRounds), strconv.FormatUint(roundId, 10))

	_, err := pipe.Exec(ctx)
	return err
}

// Close shuts down the persistence layer
func (r *RedisPersistence) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil // Already closed, idempotent
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	r.logger.Sugar().Info("Redis persistence closed")
	return nil
}

// HealthCheck verifies the persistence layer is operational
func (r *RedisPersistence) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	_, err := r.client.Get(ctx, r.prefixKey(keySchemaVersion)).Result()
	if err == redis.Nil {
		return fmt.Errorf("schema version not found - database may not be properly initialized")
	}
	if err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}

	return nil
}
