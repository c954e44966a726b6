package allocation

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/exporter"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

// ErrEntryNotFound is returned when a proof is requested for an (account, amount)
// pair that is not part of the round.
var ErrEntryNotFound = errors.New("allocation not found")

// AllocationTree commits to the allocations of one registration round.
// It is immutable once built; only the root and the proofs need to outlive it.
type AllocationTree struct {
	entries []*types.Entry
	tree    *merkle.MerkleTree

	// byKey maps Allocation.Key() to the entry index
	byKey map[string]int
}

// NewAllocationTree assigns each allocation its position as index, hashes the
// entries into leaves and builds the tree.
//
// Duplicate (account, amount) pairs are rejected with types.ErrInvalidEntry since
// a proof lookup by pair would be ambiguous.
func NewAllocationTree(allocs []*types.Allocation, opts ...merkle.Option) (*AllocationTree, error) {
	if len(allocs) == 0 {
		return nil, merkle.ErrEmptyInput
	}

	entries := types.NewEntries(allocs)
	byKey := make(map[string]int, len(entries))
	for i, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("entry %d: %w: allocation is nil", i, types.ErrInvalidEntry)
		}
		key := entry.Allocation().Key()
		if prev, ok := byKey[key]; ok {
			return nil, fmt.Errorf("entry %d: %w: duplicate of entry %d (%s, %s)",
				i, types.ErrInvalidEntry, prev, entry.Account.Hex(), amountString(entry.Amount))
		}
		byKey[key] = i
	}

	leaves, err := merkle.HashEntries(entries)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.BuildMerkleTree(leaves, opts...)
	if err != nil {
		return nil, err
	}

	return &AllocationTree{
		entries: entries,
		tree:    tree,
		byKey:   byKey,
	}, nil
}

// Root returns the merkle root
func (at *AllocationTree) Root() common.Hash {
	return at.tree.Root()
}

// HexRoot returns the merkle root as 0x-prefixed hex
func (at *AllocationTree) HexRoot() string {
	return at.tree.Root().Hex()
}

// Tree returns the underlying merkle tree
func (at *AllocationTree) Tree() *merkle.MerkleTree {
	return at.tree
}

// Len returns the number of entries in the round
func (at *AllocationTree) Len() int {
	return len(at.entries)
}

// Entries returns a copy of the indexed entries in round order
func (at *AllocationTree) Entries() []*types.Entry {
	out := make([]*types.Entry, len(at.entries))
	for i, e := range at.entries {
		out[i] = &types.Entry{Index: e.Index, Account: e.Account, Amount: new(big.Int).Set(e.Amount)}
	}
	return out
}

// Lookup returns the entry for an (account, amount) pair
func (at *AllocationTree) Lookup(account common.Address, amount *big.Int) (*types.Entry, error) {
	if amount == nil {
		return nil, fmt.Errorf("%w: amount is nil", types.ErrInvalidEntry)
	}
	key := (&types.Allocation{Account: account, Amount: amount}).Key()
	index, ok := at.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s, %s", ErrEntryNotFound, account.Hex(), amount)
	}
	e := at.entries[index]
	return &types.Entry{Index: e.Index, Account: e.Account, Amount: new(big.Int).Set(e.Amount)}, nil
}

// GetProof returns the sibling path for an (account, amount) pair
func (at *AllocationTree) GetProof(account common.Address, amount *big.Int) ([]common.Hash, error) {
	proof, err := at.proofFor(account, amount)
	if err != nil {
		return nil, err
	}
	return proof.Proof, nil
}

// GetHexProof returns the sibling path as 0x-prefixed hex strings
func (at *AllocationTree) GetHexProof(account common.Address, amount *big.Int) ([]string, error) {
	proof, err := at.proofFor(account, amount)
	if err != nil {
		return nil, err
	}
	return proof.HexProof(), nil
}

func (at *AllocationTree) proofFor(account common.Address, amount *big.Int) (*merkle.MerkleProof, error) {
	entry, err := at.Lookup(account, amount)
	if err != nil {
		return nil, err
	}
	return at.tree.GenerateProof(int(entry.Index))
}

// Export builds the claim artifact for every entry of the round
func (at *AllocationTree) Export() (*exporter.Artifact, error) {
	return exporter.Export(at.entries, at.tree)
}

// VerifyAllocation rebuilds the leaf of (index, account, amount) and checks it against root.
func VerifyAllocation(index uint64, account common.Address, amount *big.Int, proof []common.Hash, root common.Hash) (bool, error) {
	leaf, err := merkle.HashEntry(&types.Entry{Index: index, Account: account, Amount: amount})
	if err != nil {
		return false, err
	}
	return merkle.VerifyProof(leaf, proof, root), nil
}

// VerifyHexAllocation is VerifyAllocation for a hex encoded proof and root.
// Any digest that is not exactly 32 bytes of hex fails with merkle.ErrMalformedProof.
func VerifyHexAllocation(index uint64, account common.Address, amount *big.Int, proof []string, root string) (bool, error) {
	leaf, err := merkle.HashEntry(&types.Entry{Index: index, Account: account, Amount: amount})
	if err != nil {
		return false, err
	}
	return merkle.VerifyHexProof(leaf.Hex(), proof, root)
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "<nil>"
	}
	return amount.String()
}
