package merkle

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// createTestEntries creates n test entries with random accounts and amounts
func createTestEntries(n int) []*types.Entry {
	entries := make([]*types.Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = &types.Entry{
			Index:   uint64(i),
			Account: randomAddress(),
			Amount:  big.NewInt(int64(1000 + i)),
		}
	}
	return entries
}

func randomAddress() common.Address {
	var addr common.Address
	_, _ = rand.Read(addr[:]) // Ignore error in test helper
	return addr
}

func repeatAddress(b byte) common.Address {
	return common.BytesToAddress(bytes.Repeat([]byte{b}, common.AddressLength))
}

func buildTestTree(t *testing.T, entries []*types.Entry, opts ...Option) (*MerkleTree, []common.Hash) {
	t.Helper()
	leaves, err := HashEntries(entries)
	require.NoError(t, err)
	tree, err := BuildMerkleTree(leaves, opts...)
	require.NoError(t, err)
	return tree, leaves
}

// TestBuildMerkleTree tests merkle tree construction with various numbers of entries
func TestBuildMerkleTree(t *testing.T) {
	testCases := []struct {
		name       string
		numEntries int
	}{
		{"Single entry", 1},
		{"Two entries", 2},
		{"Three entries", 3},
		{"Four entries (power of 2)", 4},
		{"Five entries", 5},
		{"Seven entries", 7},
		{"Eight entries (power of 2)", 8},
		{"Fifteen entries", 15},
		{"Sixteen entries (power of 2)", 16},
		{"Seventeen entries", 17},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries := createTestEntries(tc.numEntries)
			tree, leaves := buildTestTree(t, entries)

			require.Equal(t, tc.numEntries, tree.LeafCount())
			require.Equal(t, leaves, tree.Leaves())
			require.NotEqual(t, common.Hash{}, tree.Root())

			// Every entry proves against the root
			for i, entry := range entries {
				proof, err := tree.GenerateProof(i)
				require.NoError(t, err)
				require.Equal(t, i, proof.LeafIndex)

				leaf, err := HashEntry(entry)
				require.NoError(t, err)
				require.Equal(t, leaf, proof.Leaf)
				require.True(t, VerifyProof(leaf, proof.Proof, tree.Root()), "Proof for leaf %d should be valid", i)
				require.True(t, proof.Verify(tree.Root()))
			}
		})
	}
}

// TestBuildMerkleTreeEmpty tests that building a tree from no leaves fails
func TestBuildMerkleTreeEmpty(t *testing.T) {
	tree, err := BuildMerkleTree([]common.Hash{})
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, tree)

	tree, err = BuildMerkleTree(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, tree)
}

func TestSingleLeafTree(t *testing.T) {
	entries := createTestEntries(1)
	tree, leaves := buildTestTree(t, entries)

	require.Equal(t, leaves[0], tree.Root())
	require.Equal(t, 0, tree.Depth())

	proof, err := tree.GenerateProof(0)
	require.NoError(t, err)
	require.Empty(t, proof.Proof)
	require.True(t, proof.Verify(tree.Root()))
}

const (
	knownTreeLeaf0   = "0xf91400fed0a1a461e8c5a55fd342d0f1bf414786b80d936006160ebcbc77b3a5"
	knownTreeLeaf3   = "0xa52418ec7a41d99a6454fb944198b7b8f636e47f85228b034ed2775394d10a81"
	knownTreeRoot    = "0xf3bf1b6f35d37c92ab44c7fcdf56c3b101999a365ea744c989221e4edb285324"
	knownOddTreeRoot = "0xc7e36d3326ebc7f7975e970a9259ee39d50b9ba89cbb163db04e612c35ef928e"
)

// TestKnownTree rebuilds a four entry tree by hand and checks the builder agrees
func TestKnownTree(t *testing.T) {
	entries := types.NewEntries([]*types.Allocation{
		{Account: repeatAddress(0xAA), Amount: big.NewInt(10)},
		{Account: repeatAddress(0xBB), Amount: big.NewInt(20)},
		{Account: repeatAddress(0xCC), Amount: big.NewInt(30)},
		{Account: repeatAddress(0xDD), Amount: big.NewInt(40)},
	})

	manualLeaf := func(index uint64, account common.Address, amount int64) common.Hash {
		data := []byte{0x00}
		data = append(data, common.LeftPadBytes(new(big.Int).SetUint64(index).Bytes(), 32)...)
		data = append(data, account.Bytes()...)
		data = append(data, common.LeftPadBytes(big.NewInt(amount).Bytes(), 32)...)
		return crypto.Keccak256Hash(data)
	}
	manualNode := func(a, b common.Hash) common.Hash {
		if bytes.Compare(a[:], b[:]) > 0 {
			a, b = b, a
		}
		return crypto.Keccak256Hash(append(append([]byte{0x01}, a[:]...), b[:]...))
	}

	l0 := manualLeaf(0, repeatAddress(0xAA), 10)
	l1 := manualLeaf(1, repeatAddress(0xBB), 20)
	l2 := manualLeaf(2, repeatAddress(0xCC), 30)
	l3 := manualLeaf(3, repeatAddress(0xDD), 40)
	expectedRoot := manualNode(manualNode(l0, l1), manualNode(l2, l3))

	tree, leaves := buildTestTree(t, entries)
	require.Equal(t, []common.Hash{l0, l1, l2, l3}, leaves)
	require.Equal(t, expectedRoot, tree.Root())

	// Pinned digests; an on-chain verifier has to reproduce these bytes
	require.Equal(t, knownTreeLeaf0, l0.Hex())
	require.Equal(t, knownTreeLeaf3, l3.Hex())
	require.Equal(t, knownTreeRoot, tree.Root().Hex())

	oddTree, err := BuildMerkleTree([]common.Hash{l0, l1, l2})
	require.NoError(t, err)
	require.Equal(t, knownOddTreeRoot, oddTree.Root().Hex())

	t.Run("Entry 0xCC proves at index 2", func(t *testing.T) {
		proof, err := tree.GenerateProof(2)
		require.NoError(t, err)
		require.Equal(t, []common.Hash{l3, manualNode(l0, l1)}, proof.Proof)
		require.True(t, VerifyProof(l2, proof.Proof, tree.Root()))
	})

	t.Run("Entry 0xBB proof rejects 0xCC leaf", func(t *testing.T) {
		proofB, err := tree.GenerateProof(1)
		require.NoError(t, err)
		require.False(t, VerifyProof(l2, proofB.Proof, tree.Root()))
	})
}

// TestOddLevelCarry checks that the unpaired node is promoted, not duplicated
func TestOddLevelCarry(t *testing.T) {
	entries := createTestEntries(3)
	tree, leaves := buildTestTree(t, entries)

	levels := tree.Levels()
	require.Len(t, levels, 3)

	oddLevels := 0
	for _, level := range levels[:len(levels)-1] {
		if len(level)%2 == 1 {
			oddLevels++
		}
	}
	require.Equal(t, 1, oddLevels)

	// Third leaf carried up unchanged
	require.Equal(t, leaves[2], levels[1][1])
	require.Equal(t, HashNode(HashNode(leaves[0], leaves[1]), leaves[2]), tree.Root())
	require.NotEqual(t, HashNode(HashNode(leaves[0], leaves[1]), HashNode(leaves[2], leaves[2])), tree.Root())

	proof, err := tree.GenerateProof(2)
	require.NoError(t, err)
	require.Equal(t, []common.Hash{levels[1][0]}, proof.Proof)

	for i := range entries {
		proof, err := tree.GenerateProof(i)
		require.NoError(t, err)
		require.True(t, VerifyProof(leaves[i], proof.Proof, tree.Root()))
	}
}

// TestMerkleProofVerification tests proof verification with valid and invalid cases
func TestMerkleProofVerification(t *testing.T) {
	entries := createTestEntries(4)
	tree, _ := buildTestTree(t, entries)

	t.Run("Valid proof", func(t *testing.T) {
		proof, err := tree.GenerateProof(0)
		require.NoError(t, err)
		require.True(t, proof.Verify(tree.Root()))
	})

	t.Run("Invalid proof - wrong root", func(t *testing.T) {
		proof, err := tree.GenerateProof(0)
		require.NoError(t, err)

		invalidRoot := common.Hash{1, 2, 3, 4, 5}
		require.False(t, proof.Verify(invalidRoot))
	})

	t.Run("Invalid proof - tampered leaf", func(t *testing.T) {
		proof, err := tree.GenerateProof(0)
		require.NoError(t, err)

		proof.Leaf[0] ^= 0xFF
		require.False(t, proof.Verify(tree.Root()))
	})

	t.Run("Invalid proof - tampered sibling", func(t *testing.T) {
		proof, err := tree.GenerateProof(0)
		require.NoError(t, err)

		proof.Proof[0][0] ^= 0xFF
		require.False(t, proof.Verify(tree.Root()))
	})

	t.Run("Invalid proof - truncated", func(t *testing.T) {
		proof, err := tree.GenerateProof(0)
		require.NoError(t, err)
		require.False(t, VerifyProof(proof.Leaf, proof.Proof[:1], tree.Root()))
	})

	t.Run("Invalid proof - nil proof", func(t *testing.T) {
		var proof *MerkleProof
		require.False(t, proof.Verify(tree.Root()))
	})

	t.Run("Sibling order does not matter", func(t *testing.T) {
		proof, err := tree.GenerateProof(3)
		require.NoError(t, err)
		require.Equal(t, HashNode(proof.Leaf, proof.Proof[0]), HashNode(proof.Proof[0], proof.Leaf))
	})

	t.Run("Generated proofs do not alias the tree", func(t *testing.T) {
		proof, err := tree.GenerateProof(1)
		require.NoError(t, err)
		root := tree.Root()
		proof.Proof[0][0] ^= 0xFF

		again, err := tree.GenerateProof(1)
		require.NoError(t, err)
		require.True(t, again.Verify(root))
	})
}

// TestCrossEntryRejection checks no entry's proof verifies another entry's leaf
func TestCrossEntryRejection(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13} {
		t.Run(fmt.Sprintf("%d_entries", n), func(t *testing.T) {
			entries := createTestEntries(n)
			tree, leaves := buildTestTree(t, entries)

			for i := range entries {
				proof, err := tree.GenerateProof(i)
				require.NoError(t, err)
				for j := range entries {
					if i == j {
						continue
					}
					require.False(t, VerifyProof(leaves[j], proof.Proof, tree.Root()), "proof %d verified leaf %d", i, j)
				}
			}
		})
	}
}

// TestNegativeMembership checks an entry outside the round never verifies
func TestNegativeMembership(t *testing.T) {
	entries := createTestEntries(9)
	tree, _ := buildTestTree(t, entries)

	outsider := &types.Entry{Index: 4, Account: randomAddress(), Amount: big.NewInt(1004)}
	leaf, err := HashEntry(outsider)
	require.NoError(t, err)

	for i := range entries {
		proof, err := tree.GenerateProof(i)
		require.NoError(t, err)
		require.False(t, VerifyProof(leaf, proof.Proof, tree.Root()))
	}
}

// TestTamperSensitivity flips single bits of an account or amount and checks the root moves
func TestTamperSensitivity(t *testing.T) {
	entries := createTestEntries(6)
	tree, _ := buildTestTree(t, entries)

	for bit := 0; bit < 8; bit++ {
		tampered := createTestEntriesCopy(entries)
		tampered[3].Amount = new(big.Int).Xor(tampered[3].Amount, big.NewInt(1<<bit))
		other, _ := buildTestTree(t, tampered)
		require.NotEqual(t, tree.Root(), other.Root(), "amount bit %d", bit)

		tampered = createTestEntriesCopy(entries)
		tampered[5].Account[19] ^= 1 << bit
		other, _ = buildTestTree(t, tampered)
		require.NotEqual(t, tree.Root(), other.Root(), "account bit %d", bit)
	}
}

func createTestEntriesCopy(entries []*types.Entry) []*types.Entry {
	out := make([]*types.Entry, len(entries))
	for i, e := range entries {
		out[i] = &types.Entry{Index: e.Index, Account: e.Account, Amount: new(big.Int).Set(e.Amount)}
	}
	return out
}

// TestGenerateProofInvalidIndex tests proof generation with invalid indices
func TestGenerateProofInvalidIndex(t *testing.T) {
	entries := createTestEntries(4)
	tree, _ := buildTestTree(t, entries)

	t.Run("Negative index", func(t *testing.T) {
		proof, err := tree.GenerateProof(-1)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		require.Nil(t, proof)
	})

	t.Run("Index out of bounds", func(t *testing.T) {
		proof, err := tree.GenerateProof(4)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
		require.Nil(t, proof)
	})

	t.Run("Leaf out of bounds", func(t *testing.T) {
		_, err := tree.Leaf(10)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

// TestMerkleTreeLargeSet tests with a larger number of entries
func TestMerkleTreeLargeSet(t *testing.T) {
	sizes := []int{50, 100, 333}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("Size_%d", size), func(t *testing.T) {
			entries := createTestEntries(size)
			tree, leaves := buildTestTree(t, entries)
			require.Equal(t, size, tree.LeafCount())

			testIndices := []int{0, size / 4, size / 2, size - 1}
			for _, idx := range testIndices {
				proof, err := tree.GenerateProof(idx)
				require.NoError(t, err)
				require.True(t, VerifyProof(leaves[idx], proof.Proof, tree.Root()))
			}
		})
	}
}

// TestMerkleProofLength tests that proof length is logarithmic
func TestMerkleProofLength(t *testing.T) {
	testCases := []struct {
		numEntries     int
		maxProofLength int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{8, 3},
		{16, 4},
		{100, 7},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d_entries", tc.numEntries), func(t *testing.T) {
			entries := createTestEntries(tc.numEntries)
			tree, _ := buildTestTree(t, entries)
			require.Equal(t, tc.maxProofLength, tree.Depth())

			for i := 0; i < tc.numEntries; i++ {
				proof, err := tree.GenerateProof(i)
				require.NoError(t, err)
				require.LessOrEqual(t, len(proof.Proof), tc.maxProofLength)
			}
		})
	}
}

// TestMerkleTreeDeterminism tests that the same entries always produce the same tree
func TestMerkleTreeDeterminism(t *testing.T) {
	entries := createTestEntries(10)

	tree1, _ := buildTestTree(t, entries)
	tree2, _ := buildTestTree(t, entries)

	require.Equal(t, tree1.Root(), tree2.Root())
	require.Equal(t, tree1.Levels(), tree2.Levels())

	for i := range entries {
		p1, err := tree1.GenerateProof(i)
		require.NoError(t, err)
		p2, err := tree2.GenerateProof(i)
		require.NoError(t, err)
		require.Equal(t, p1, p2)
	}
}

// TestMerkleTreeOrderMatters tests that reordering entries changes the root
func TestMerkleTreeOrderMatters(t *testing.T) {
	entries := createTestEntries(10)
	tree1, leaves := buildTestTree(t, entries)

	reversed := make([]common.Hash, len(leaves))
	for i := range leaves {
		reversed[i] = leaves[len(leaves)-1-i]
	}
	tree2, err := BuildMerkleTree(reversed)
	require.NoError(t, err)

	require.NotEqual(t, tree1.Root(), tree2.Root())
}

// TestParallelBuildMatchesSequential checks worker count never changes the result
func TestParallelBuildMatchesSequential(t *testing.T) {
	leaves := make([]common.Hash, 5*parallelThreshold+3)
	for i := range leaves {
		leaves[i] = crypto.Keccak256Hash(big.NewInt(int64(i)).Bytes())
	}

	sequential, err := BuildMerkleTree(leaves)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 64} {
		parallel, err := BuildMerkleTree(leaves, WithWorkers(workers))
		require.NoError(t, err)
		require.Equal(t, sequential.Root(), parallel.Root(), "workers=%d", workers)
		require.Equal(t, sequential.Levels(), parallel.Levels(), "workers=%d", workers)
	}
}

// TestBuildDoesNotAliasInput checks mutating the caller's slice leaves the tree intact
func TestBuildDoesNotAliasInput(t *testing.T) {
	entries := createTestEntries(5)
	leaves, err := HashEntries(entries)
	require.NoError(t, err)

	tree, err := BuildMerkleTree(leaves)
	require.NoError(t, err)
	root := tree.Root()

	leaves[0][0] ^= 0xFF
	require.Equal(t, root, tree.Root())

	returned := tree.Leaves()
	returned[1][0] ^= 0xFF
	proof, err := tree.GenerateProof(1)
	require.NoError(t, err)
	require.True(t, proof.Verify(root))
}
