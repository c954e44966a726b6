package merkle

import (
	"errors"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInvalidEntry is returned when an entry cannot be encoded into a leaf
	ErrInvalidEntry = types.ErrInvalidEntry

	// ErrEmptyInput is returned when building a tree from no leaves
	ErrEmptyInput = errors.New("cannot build merkle tree from empty leaf list")

	// ErrIndexOutOfRange is returned when a proof is requested for a position the tree does not have
	ErrIndexOutOfRange = errors.New("leaf index out of range")

	// ErrMalformedProof is returned when verifier input is not made of 32 byte digests
	ErrMalformedProof = errors.New("malformed proof")
)

// MerkleTree is an immutable binary merkle tree over an ordered list of leaves.
// The tree uses keccak256 hashing for Solidity compatibility.
type MerkleTree struct {
	// levels stores all tree levels for proof generation
	// levels[0] = leaves, levels[len-1] = [root]
	levels [][]common.Hash
}

// MerkleProof represents a proof that a leaf is included in the tree.
type MerkleProof struct {
	// LeafIndex is the position of the leaf in the input order
	LeafIndex int

	// Leaf is the hash of the leaf being proven
	Leaf common.Hash

	// Proof contains the sibling hashes from leaf to root.
	// Levels where the node was promoted without a sibling contribute nothing.
	Proof []common.Hash
}

// Verify checks the proof against root
func (p *MerkleProof) Verify(root common.Hash) bool {
	if p == nil {
		return false
	}
	return VerifyProof(p.Leaf, p.Proof, root)
}

// HexProof returns the sibling hashes as 0x-prefixed hex strings
func (p *MerkleProof) HexProof() []string {
	out := make([]string, len(p.Proof))
	for i, h := range p.Proof {
		out[i] = h.Hex()
	}
	return out
}
