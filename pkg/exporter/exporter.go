package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/util"
	"github.com/ethereum/go-ethereum/common"
)

// ErrEmptyTree is returned when there is nothing to export
var ErrEmptyTree = errors.New("cannot export empty allocation tree")

// Artifact is the document handed to claim tooling: the root once and one proof per entry.
type Artifact struct {
	Root    string          `json:"root"`
	Entries []ArtifactEntry `json:"entries"`
}

// ArtifactEntry is a single entry of the round and its proof.
// Index is part of the leaf and is needed to rebuild it when claiming.
type ArtifactEntry struct {
	Index   uint64   `json:"index"`
	Address string   `json:"address"`
	Amount  string   `json:"amount"`
	Proof   []string `json:"proof"`
}

// LegacyProof is the record shape written by the original registration export script
type LegacyProof struct {
	Amount  string   `json:"amount"`
	Address string   `json:"address"`
	Proof   []string `json:"proof"`
}

// Export emits the root and a proof record for every entry.
// entries must be the ordered entries tree was built from.
func Export(entries []*types.Entry, tree *merkle.MerkleTree) (*Artifact, error) {
	if len(entries) == 0 || tree == nil {
		return nil, ErrEmptyTree
	}
	if len(entries) != tree.LeafCount() {
		return nil, fmt.Errorf("entry count %d does not match tree leaf count %d", len(entries), tree.LeafCount())
	}

	artifact := &Artifact{
		Root:    tree.Root().Hex(),
		Entries: make([]ArtifactEntry, len(entries)),
	}

	for i, entry := range entries {
		if entry == nil || entry.Amount == nil {
			return nil, fmt.Errorf("entry %d: %w", i, types.ErrInvalidEntry)
		}
		if entry.Index != uint64(i) {
			return nil, fmt.Errorf("entry %d has index %d, entries must be in round order", i, entry.Index)
		}

		proof, err := tree.GenerateProof(i)
		if err != nil {
			return nil, fmt.Errorf("failed to generate proof for entry %d: %w", i, err)
		}

		// Catch entries that don't belong to this tree
		leaf, err := merkle.HashEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if leaf != proof.Leaf {
			return nil, fmt.Errorf("entry %d does not match leaf %d of the tree", i, i)
		}

		artifact.Entries[i] = ArtifactEntry{
			Index:   entry.Index,
			Address: entry.Account.Hex(),
			Amount:  entry.Amount.String(),
			Proof:   proof.HexProof(),
		}
	}

	return artifact, nil
}

// Verify checks every record of the artifact against its root.
// Records must sit at their own index and (address, amount) pairs must be unique.
// Returns the first record that fails.
func (a *Artifact) Verify() error {
	if a == nil || len(a.Entries) == 0 {
		return ErrEmptyTree
	}
	seen := make(map[string]int, len(a.Entries))
	for i, e := range a.Entries {
		entry, err := e.Entry()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if entry.Index != uint64(i) {
			return fmt.Errorf("%w: record %d carries index %d", types.ErrInvalidEntry, i, entry.Index)
		}
		key := entry.Allocation().Key()
		if first, ok := seen[key]; ok {
			return fmt.Errorf("%w: record %d repeats (%s, %s) of record %d", types.ErrInvalidEntry, i, e.Address, e.Amount, first)
		}
		seen[key] = i
		leaf, err := merkle.HashEntry(entry)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		ok, err := merkle.VerifyHexProof(leaf.Hex(), e.Proof, a.Root)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if !ok {
			return fmt.Errorf("record %d (%s, %s) does not verify against root %s", i, e.Address, e.Amount, a.Root)
		}
	}
	return nil
}

// Entry parses the record back into an entry
func (e *ArtifactEntry) Entry() (*types.Entry, error) {
	account, err := types.ParseAddress(e.Address)
	if err != nil {
		return nil, err
	}
	amount, err := types.ParseAmount(e.Amount)
	if err != nil {
		return nil, err
	}
	return &types.Entry{Index: e.Index, Account: account, Amount: amount}, nil
}

// Find returns the record for an (account, amount) pair
func (a *Artifact) Find(account common.Address, amount string) (*ArtifactEntry, bool) {
	for i := range a.Entries {
		e := &a.Entries[i]
		if strings.EqualFold(e.Address, account.Hex()) && e.Amount == amount {
			return e, true
		}
	}
	return nil, false
}

// LegacyProofs returns the records in the original export script's shape
func (a *Artifact) LegacyProofs() []LegacyProof {
	return util.Map(a.Entries, func(e ArtifactEntry, _ uint64) LegacyProof {
		return LegacyProof{Amount: e.Amount, Address: e.Address, Proof: e.Proof}
	})
}

// WriteArtifactFile writes the artifact as indented JSON.
// If legacy is set the bare proof array is written instead.
func WriteArtifactFile(path string, artifact *Artifact, legacy bool) error {
	if artifact == nil {
		return ErrEmptyTree
	}

	var v interface{} = artifact
	if legacy {
		v = artifact.LegacyProofs()
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact to %s: %w", path, err)
	}
	return nil
}

// LoadArtifactFile reads an artifact written by WriteArtifactFile
func LoadArtifactFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	return UnmarshalArtifact(data)
}

// MarshalArtifact serializes an artifact to JSON bytes
func MarshalArtifact(artifact *Artifact) ([]byte, error) {
	if artifact == nil {
		return nil, fmt.Errorf("cannot marshal nil Artifact")
	}
	return json.Marshal(artifact)
}

// UnmarshalArtifact deserializes an artifact from JSON bytes
func UnmarshalArtifact(data []byte) (*Artifact, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to Artifact: %w", err)
	}
	return &artifact, nil
}
