package merkle

import (
	"fmt"
	"math/big"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

const (
	// LeafPrefix is prepended to the encoded entry before hashing a leaf
	LeafPrefix byte = 0x00

	// NodePrefix is prepended to the ordered children before hashing an internal node
	NodePrefix byte = 0x01

	// EncodedEntryLength is uint256 index || 20 byte address || uint256 amount
	EncodedEntryLength = 32 + common.AddressLength + 32
)

// EncodeEntry serializes an entry into its fixed width leaf preimage:
// index (32 bytes, big endian) || account (20 bytes) || amount (32 bytes, big endian).
func EncodeEntry(entry *types.Entry) ([]byte, error) {
	if entry == nil {
		return nil, fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}
	return EncodeFields(entry.Index, entry.Account.Bytes(), entry.Amount)
}

// EncodeFields is EncodeEntry for raw field values.
func EncodeFields(index uint64, account []byte, amount *big.Int) ([]byte, error) {
	if len(account) != common.AddressLength {
		return nil, fmt.Errorf("%w: account must be %d bytes, got %d", ErrInvalidEntry, common.AddressLength, len(account))
	}
	if amount == nil {
		return nil, fmt.Errorf("%w: amount is nil", ErrInvalidEntry)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: amount %s is negative", ErrInvalidEntry, amount)
	}
	amount256, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, fmt.Errorf("%w: amount %s does not fit in 256 bits", ErrInvalidEntry, amount)
	}

	indexBytes := uint256.NewInt(index).Bytes32()
	amountBytes := amount256.Bytes32()

	data := make([]byte, 0, EncodedEntryLength)
	data = append(data, indexBytes[:]...)
	data = append(data, account...)
	data = append(data, amountBytes[:]...)
	return data, nil
}

// HashLeaf computes keccak256(0x00 || encoded)
func HashLeaf(encoded []byte) common.Hash {
	return crypto.Keccak256Hash([]byte{LeafPrefix}, encoded)
}

// HashEntry encodes an entry and hashes it into a leaf
func HashEntry(entry *types.Entry) (common.Hash, error) {
	encoded, err := EncodeEntry(entry)
	if err != nil {
		return common.Hash{}, err
	}
	return HashLeaf(encoded), nil
}

// HashEntries hashes every entry in order.
// Fails on the first entry that cannot be encoded.
func HashEntries(entries []*types.Entry) ([]common.Hash, error) {
	leaves := make([]common.Hash, len(entries))
	for i, entry := range entries {
		leaf, err := HashEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		leaves[i] = leaf
	}
	return leaves, nil
}
