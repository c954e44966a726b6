package merkle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// GenerateProof creates a merkle proof for the leaf at the given index.
// The proof consists of sibling hashes along the path from leaf to root.
func (mt *MerkleTree) GenerateProof(leafIndex int) (*MerkleProof, error) {
	if leafIndex < 0 || leafIndex >= mt.LeafCount() {
		return nil, fmt.Errorf("%w: leaf index %d (tree has %d leaves)", ErrIndexOutOfRange, leafIndex, mt.LeafCount())
	}

	proof := make([]common.Hash, 0, mt.Depth())
	index := leafIndex

	// Traverse from leaf to root, collecting sibling hashes
	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		// Sibling is the other member of the (even, odd) pair
		siblingIndex := index ^ 1

		// The last node of an odd level has no sibling and is promoted unchanged
		if siblingIndex < len(currentLevel) {
			proof = append(proof, currentLevel[siblingIndex])
		}

		index = index / 2
	}

	return &MerkleProof{
		LeafIndex: leafIndex,
		Leaf:      mt.levels[0][leafIndex],
		Proof:     proof,
	}, nil
}
