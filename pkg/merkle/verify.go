package merkle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ComputeRoot folds leaf up through the sibling hashes, bottom to top
func ComputeRoot(leaf common.Hash, proof []common.Hash) common.Hash {
	current := leaf
	for _, sibling := range proof {
		current = HashNode(current, sibling)
	}
	return current
}

// VerifyProof reports whether leaf and proof reconstruct root.
// A mismatch is a normal outcome and is reported as false.
func VerifyProof(leaf common.Hash, proof []common.Hash, root common.Hash) bool {
	return ComputeRoot(leaf, proof) == root
}

// VerifyProofBytes is VerifyProof for raw byte input, matching the on-chain verifier's
// (bytes32 leaf, bytes32[] proof, bytes32 root) boundary.
// Returns ErrMalformedProof if any value is not exactly 32 bytes.
func VerifyProofBytes(leaf []byte, proof [][]byte, root []byte) (bool, error) {
	if len(leaf) != common.HashLength {
		return false, fmt.Errorf("%w: leaf is %d bytes, expected %d", ErrMalformedProof, len(leaf), common.HashLength)
	}
	if len(root) != common.HashLength {
		return false, fmt.Errorf("%w: root is %d bytes, expected %d", ErrMalformedProof, len(root), common.HashLength)
	}

	siblings := make([]common.Hash, len(proof))
	for i, p := range proof {
		if len(p) != common.HashLength {
			return false, fmt.Errorf("%w: proof element %d is %d bytes, expected %d", ErrMalformedProof, i, len(p), common.HashLength)
		}
		siblings[i] = common.BytesToHash(p)
	}

	return VerifyProof(common.BytesToHash(leaf), siblings, common.BytesToHash(root)), nil
}

// VerifyHexProof is VerifyProofBytes for 0x-prefixed hex strings, the shape proofs
// take in exported artifacts.
func VerifyHexProof(leaf string, proof []string, root string) (bool, error) {
	leafBytes, err := hexutil.Decode(leaf)
	if err != nil {
		return false, fmt.Errorf("%w: leaf: %v", ErrMalformedProof, err)
	}
	rootBytes, err := hexutil.Decode(root)
	if err != nil {
		return false, fmt.Errorf("%w: root: %v", ErrMalformedProof, err)
	}
	proofBytes := make([][]byte, len(proof))
	for i, p := range proof {
		b, err := hexutil.Decode(p)
		if err != nil {
			return false, fmt.Errorf("%w: proof element %d: %v", ErrMalformedProof, i, err)
		}
		proofBytes[i] = b
	}
	return VerifyProofBytes(leafBytes, proofBytes, rootBytes)
}
