package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the allocation tree tooling
const (
	EnvAllocRPCURL              = "ALLOC_RPC_URL"
	EnvAllocChainID             = "ALLOC_CHAIN_ID"
	EnvAllocRegistrationAddress = "ALLOC_REGISTRATION_ADDRESS"
	EnvAllocRoundID             = "ALLOC_ROUND_ID"
	EnvAllocListing             = "ALLOC_LISTING"
	EnvAllocOutput              = "ALLOC_OUTPUT"
	EnvAllocWorkers             = "ALLOC_WORKERS"
	EnvAllocPersistenceType     = "ALLOC_PERSISTENCE_TYPE"
	EnvAllocDataPath            = "ALLOC_DATA_PATH"
	EnvAllocRedisAddress        = "ALLOC_REDIS_ADDRESS"
	EnvAllocRedisPassword       = "ALLOC_REDIS_PASSWORD"
	EnvAllocRedisDB             = "ALLOC_REDIS_DB"
	EnvAllocRedisKeyPrefix      = "ALLOC_REDIS_KEY_PREFIX"
	EnvAllocPort                = "ALLOC_PORT"
	EnvAllocArtifact            = "ALLOC_ARTIFACT"
	EnvAllocRateLimit           = "ALLOC_RATE_LIMIT"
	EnvAllocRateBurst           = "ALLOC_RATE_BURST"
	EnvAllocLegacy              = "ALLOC_LEGACY"
	EnvAllocVerbose             = "ALLOC_VERBOSE"
)

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_BSCMainnet      ChainId = 56
	ChainId_BSCTestnet      ChainId = 97
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumAnvil   ChainId = 31337
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_BSCMainnet      ChainName = "bsc"
	ChainName_BSCTestnet      ChainName = "bsctest"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumAnvil   ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_BSCMainnet:      ChainName_BSCMainnet,
	ChainId_BSCTestnet:      ChainName_BSCTestnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_BSCMainnet:      ChainId_BSCMainnet,
	ChainName_BSCTestnet:      ChainId_BSCTestnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_EthereumMainnet,
		ChainId_BSCMainnet,
		ChainId_BSCTestnet,
		ChainId_EthereumSepolia,
		ChainId_EthereumAnvil,
	}
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	parts := make([]string, 0, len(ChainIdToName))
	for _, id := range GetSupportedChainIDs() {
		parts = append(parts, fmt.Sprintf("%d (%s)", id, ChainIdToName[id]))
	}
	return strings.Join(parts, ", ")
}

// ParseChain resolves a chain given by numeric id or by name (e.g. "sepolia").
// An empty string yields 0, meaning no expected chain.
func ParseChain(s string) (ChainId, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ChainId(id), nil
	}
	if id, ok := ChainNameToId[ChainName(strings.ToLower(s))]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown chain %q, supported: %s", s, GetSupportedChainIDsString())
}

type PersistenceType string

const (
	PersistenceType_None   PersistenceType = ""
	PersistenceType_Memory PersistenceType = "memory"
	PersistenceType_Badger PersistenceType = "badger"
	PersistenceType_Redis  PersistenceType = "redis"
)

// RedisConfig holds the connection settings of the redis round store
type RedisConfig struct {
	Address   string `json:"address" yaml:"address"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// PersistenceConfig selects where exported rounds are stored.
// An empty Type disables the round store.
type PersistenceConfig struct {
	Type     PersistenceType `json:"type" yaml:"type"`
	DataPath string          `json:"dataPath" yaml:"dataPath"`
	Redis    RedisConfig     `json:"redis" yaml:"redis"`
}

func (pc *PersistenceConfig) Validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList
	switch pc.Type {
	case PersistenceType_None, PersistenceType_Memory:
	case PersistenceType_Badger:
		if pc.DataPath == "" {
			allErrors = append(allErrors, field.Required(path.Child("dataPath"), "dataPath is required for badger persistence"))
		}
	case PersistenceType_Redis:
		if pc.Redis.Address == "" {
			allErrors = append(allErrors, field.Required(path.Child("redis", "address"), "address is required for redis persistence"))
		}
		if pc.Redis.DB < 0 || pc.Redis.DB > 15 {
			allErrors = append(allErrors, field.Invalid(path.Child("redis", "db"), pc.Redis.DB, "db must be between 0-15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(path.Child("type"), pc.Type,
			[]string{string(PersistenceType_Memory), string(PersistenceType_Badger), string(PersistenceType_Redis)}))
	}
	return allErrors
}

// BuildConfig is the configuration of a single registration round export
type BuildConfig struct {
	// Allocation source: either a listing file or the registration contract
	ListingPath         string  `json:"listingPath"`
	RpcUrl              string  `json:"rpcUrl"`
	ChainID             ChainId `json:"chainId"`
	RegistrationAddress string  `json:"registrationAddress"`
	RoundId             uint64  `json:"roundId"`

	// Output
	OutputPath string `json:"outputPath"`
	Legacy     bool   `json:"legacy"`

	// Workers hashes each tree level across this many goroutines (0 or 1 = sequential)
	Workers int `json:"workers"`

	Persistence PersistenceConfig `json:"persistence"`

	Debug bool `json:"debug"`
}

// UsesChain reports whether allocations are read from the registration contract
func (c *BuildConfig) UsesChain() bool {
	return c.ListingPath == ""
}

// Validate validates the build configuration
func (c *BuildConfig) Validate() error {
	var allErrors field.ErrorList

	if c.UsesChain() {
		if c.RpcUrl == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required when no listing is given"))
		}
		if c.RegistrationAddress == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("registrationAddress"), "registrationAddress is required when no listing is given"))
		} else if !common.IsHexAddress(c.RegistrationAddress) {
			allErrors = append(allErrors, field.Invalid(field.NewPath("registrationAddress"), c.RegistrationAddress, "invalid address format"))
		}
		if c.ChainID != 0 {
			if _, ok := ChainIdToName[c.ChainID]; !ok {
				allErrors = append(allErrors, field.Invalid(field.NewPath("chainId"), c.ChainID,
					fmt.Sprintf("unsupported chain ID. Supported: %s", GetSupportedChainIDsString())))
			}
		}
	}

	if c.OutputPath == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("outputPath"), "outputPath is required"))
	}
	if c.Workers < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("workers"), c.Workers, "workers cannot be negative"))
	}

	allErrors = append(allErrors, c.Persistence.Validate(field.NewPath("persistence"))...)

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// ServerConfig is the configuration of the proof HTTP service.
// The served round comes from ArtifactPath, or from the round store when no path is set.
type ServerConfig struct {
	Port         int     `json:"port"`
	ArtifactPath string  `json:"artifactPath"`
	RateLimit    float64 `json:"rateLimit"` // requests per second, 0 disables limiting
	Burst        int     `json:"burst"`

	RoundId     uint64            `json:"roundId"`
	Persistence PersistenceConfig `json:"persistence"`

	Debug bool `json:"debug"`
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	var allErrors field.ErrorList
	if c.Port < 1 || c.Port > 65535 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("port"), c.Port, "port must be between 1-65535"))
	}
	if c.ArtifactPath == "" {
		switch c.Persistence.Type {
		case PersistenceType_Badger, PersistenceType_Redis:
			allErrors = append(allErrors, c.Persistence.Validate(field.NewPath("persistence"))...)
		default:
			allErrors = append(allErrors, field.Required(field.NewPath("artifactPath"), "artifactPath is required unless rounds are served from badger or redis"))
		}
	}
	if c.RateLimit < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateLimit"), c.RateLimit, "rateLimit cannot be negative"))
	}
	if c.RateLimit > 0 && c.Burst < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("burst"), c.Burst, "burst must be at least 1 when rate limiting"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
