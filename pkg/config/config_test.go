package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     BuildConfig
		wantErr string
	}{
		{
			name: "Listing source",
			cfg:  BuildConfig{ListingPath: "allocations.json", OutputPath: "out.json"},
		},
		{
			name: "Chain source",
			cfg: BuildConfig{
				RpcUrl:              "http://localhost:8545",
				ChainID:             ChainId_EthereumAnvil,
				RegistrationAddress: "0x9E55c21f55849d6FBDc89416af34D70668cAA183",
				OutputPath:          "out.json",
			},
		},
		{
			name:    "Chain source missing rpc and address",
			cfg:     BuildConfig{OutputPath: "out.json"},
			wantErr: "rpcUrl",
		},
		{
			name: "Bad registration address",
			cfg: BuildConfig{
				RpcUrl:              "http://localhost:8545",
				RegistrationAddress: "0x1234",
				OutputPath:          "out.json",
			},
			wantErr: "registrationAddress",
		},
		{
			name: "Unsupported chain",
			cfg: BuildConfig{
				RpcUrl:              "http://localhost:8545",
				ChainID:             ChainId(42),
				RegistrationAddress: "0x9E55c21f55849d6FBDc89416af34D70668cAA183",
				OutputPath:          "out.json",
			},
			wantErr: "chainId",
		},
		{
			name:    "Missing output",
			cfg:     BuildConfig{ListingPath: "allocations.json"},
			wantErr: "outputPath",
		},
		{
			name:    "Negative workers",
			cfg:     BuildConfig{ListingPath: "allocations.json", OutputPath: "out.json", Workers: -1},
			wantErr: "workers",
		},
		{
			name: "Badger without path",
			cfg: BuildConfig{
				ListingPath: "allocations.json",
				OutputPath:  "out.json",
				Persistence: PersistenceConfig{Type: PersistenceType_Badger},
			},
			wantErr: "persistence.dataPath",
		},
		{
			name: "Redis without address",
			cfg: BuildConfig{
				ListingPath: "allocations.json",
				OutputPath:  "out.json",
				Persistence: PersistenceConfig{Type: PersistenceType_Redis},
			},
			wantErr: "persistence.redis.address",
		},
		{
			name: "Unknown persistence",
			cfg: BuildConfig{
				ListingPath: "allocations.json",
				OutputPath:  "out.json",
				Persistence: PersistenceConfig{Type: "postgres"},
			},
			wantErr: "persistence.type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestServerConfigValidate(t *testing.T) {
	require.NoError(t, (&ServerConfig{Port: 8080, ArtifactPath: "a.json"}).Validate())
	require.NoError(t, (&ServerConfig{Port: 8080, ArtifactPath: "a.json", RateLimit: 10, Burst: 20}).Validate())
	require.Error(t, (&ServerConfig{Port: 0, ArtifactPath: "a.json"}).Validate())
	require.Error(t, (&ServerConfig{Port: 8080}).Validate())
	require.Error(t, (&ServerConfig{Port: 8080, ArtifactPath: "a.json", RateLimit: 10}).Validate())

	fromStore := &ServerConfig{
		Port:        8080,
		RoundId:     3,
		Persistence: PersistenceConfig{Type: PersistenceType_Badger, DataPath: "./data"},
	}
	require.NoError(t, fromStore.Validate())

	fromStore.Persistence.DataPath = ""
	require.Error(t, fromStore.Validate())

	// A memory store is empty at startup so it cannot back the server
	require.Error(t, (&ServerConfig{Port: 8080, Persistence: PersistenceConfig{Type: PersistenceType_Memory}}).Validate())
}

func TestChainMaps(t *testing.T) {
	for _, id := range GetSupportedChainIDs() {
		name, ok := ChainIdToName[id]
		require.True(t, ok)
		require.Equal(t, id, ChainNameToId[name])
	}
}

func TestParseChain(t *testing.T) {
	tests := []struct {
		in      string
		want    ChainId
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "11155111", want: ChainId_EthereumSepolia},
		{in: "sepolia", want: ChainId_EthereumSepolia},
		{in: "BSC", want: ChainId_BSCMainnet},
		{in: " devnet ", want: ChainId_EthereumAnvil},
		{in: "holesky", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseChain(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	require.Contains(t, GetSupportedChainIDsString(), "11155111 (sepolia)")
}
