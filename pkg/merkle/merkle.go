package merkle

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the number of pairs in a level below which hashing stays on
// the calling goroutine even when workers are configured.
const parallelThreshold = 1024

type buildOptions struct {
	workers int
}

// Option configures tree construction
type Option func(*buildOptions)

// WithWorkers hashes each level across n goroutines. Values below 2 build sequentially.
// The resulting tree is identical to a sequential build.
func WithWorkers(n int) Option {
	return func(o *buildOptions) {
		o.workers = n
	}
}

// BuildMerkleTree creates a binary merkle tree from leaf hashes.
// The leaves are used in the order given: that order determines every proof path.
//
// Adjacent nodes are paired left to right and combined with HashNode.
// If there's an odd number of nodes at any level, the last node is promoted unchanged.
func BuildMerkleTree(leaves []common.Hash, opts ...Option) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}

	o := &buildOptions{}
	for _, opt := range opts {
		opt(o)
	}

	// Own a copy of the leaves so callers can't mutate level 0
	currentLevel := make([]common.Hash, len(leaves))
	copy(currentLevel, leaves)

	levels := [][]common.Hash{currentLevel}
	for len(currentLevel) > 1 {
		currentLevel = hashLevel(currentLevel, o.workers)
		levels = append(levels, currentLevel)
	}

	if len(currentLevel) != 1 {
		return nil, fmt.Errorf("merkle tree construction failed: final level has %d nodes instead of 1", len(currentLevel))
	}

	return &MerkleTree{levels: levels}, nil
}

// hashLevel computes the parent level. Each worker writes only to its own range of
// output slots so the result does not depend on scheduling.
func hashLevel(level []common.Hash, workers int) []common.Hash {
	pairs := len(level) / 2
	next := make([]common.Hash, (len(level)+1)/2)

	hashRange := func(start, end int) {
		for i := start; i < end; i++ {
			next[i] = HashNode(level[2*i], level[2*i+1])
		}
	}

	if workers < 2 || pairs < parallelThreshold {
		hashRange(0, pairs)
	} else {
		chunk := (pairs + workers - 1) / workers
		var eg errgroup.Group
		for start := 0; start < pairs; start += chunk {
			start := start
			end := min(start+chunk, pairs)
			eg.Go(func() error {
				hashRange(start, end)
				return nil
			})
		}
		_ = eg.Wait()
	}

	// Unpaired last node is carried up as is
	if len(level)%2 == 1 {
		next[len(next)-1] = level[len(level)-1]
	}
	return next
}

// HashNode computes keccak256(0x01 || min(a, b) || max(a, b)).
// Ordering the children makes the combine commutative.
func HashNode(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash([]byte{NodePrefix}, a[:], b[:])
}

// Root returns the merkle root hash
func (mt *MerkleTree) Root() common.Hash {
	return mt.levels[len(mt.levels)-1][0]
}

// LeafCount returns the number of leaves the tree was built from
func (mt *MerkleTree) LeafCount() int {
	return len(mt.levels[0])
}

// Depth returns the number of levels above the leaves
func (mt *MerkleTree) Depth() int {
	return len(mt.levels) - 1
}

// Leaf returns the leaf hash at index
func (mt *MerkleTree) Leaf(index int) (common.Hash, error) {
	if index < 0 || index >= mt.LeafCount() {
		return common.Hash{}, fmt.Errorf("%w: leaf index %d (tree has %d leaves)", ErrIndexOutOfRange, index, mt.LeafCount())
	}
	return mt.levels[0][index], nil
}

// Leaves returns a copy of the leaf level
func (mt *MerkleTree) Leaves() []common.Hash {
	out := make([]common.Hash, len(mt.levels[0]))
	copy(out, mt.levels[0])
	return out
}

// Levels returns a copy of every level, leaves first and root last
func (mt *MerkleTree) Levels() [][]common.Hash {
	out := make([][]common.Hash, len(mt.levels))
	for i, level := range mt.levels {
		out[i] = make([]common.Hash, len(level))
		copy(out[i], level)
	}
	return out
}
