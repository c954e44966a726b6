package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/util"
	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidEntry is returned when an allocation entry has a field that cannot be
// encoded into a leaf.
var ErrInvalidEntry = errors.New("invalid entry")

// Allocation is a single registered account and the amount allocated to it.
type Allocation struct {
	Account common.Address
	Amount  *big.Int
}

// Entry is an Allocation with its position in the registration round.
// Index is assigned from the position in the input sequence, never chosen by callers.
type Entry struct {
	Index   uint64
	Account common.Address
	Amount  *big.Int
}

// NewEntries assigns each allocation its index in the input sequence.
// Amounts are copied so later mutation of the allocations does not leak into the entries.
func NewEntries(allocs []*Allocation) []*Entry {
	return util.Map(allocs, func(a *Allocation, i uint64) *Entry {
		if a == nil {
			return nil
		}
		var amount *big.Int
		if a.Amount != nil {
			amount = new(big.Int).Set(a.Amount)
		}
		return &Entry{
			Index:   i,
			Account: a.Account,
			Amount:  amount,
		}
	})
}

// Allocation returns the (account, amount) pair of the entry
func (e *Entry) Allocation() *Allocation {
	a := &Allocation{Account: e.Account}
	if e.Amount != nil {
		a.Amount = new(big.Int).Set(e.Amount)
	}
	return a
}

// Key returns a string uniquely identifying the (account, amount) pair.
// Used for duplicate detection and proof lookup.
func (a *Allocation) Key() string {
	amount := "<nil>"
	if a.Amount != nil {
		amount = a.Amount.String()
	}
	return fmt.Sprintf("%s:%s", strings.ToLower(a.Account.Hex()), amount)
}

// ParseAddress parses a 0x-prefixed, 20 byte hex address.
// Unlike common.HexToAddress it rejects anything that is not exactly 20 bytes.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: account %q is not a 20 byte hex address", ErrInvalidEntry, s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount parses a non-negative base 10 integer.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: amount cannot be empty", ErrInvalidEntry)
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: amount %q is not a decimal integer", ErrInvalidEntry, s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: amount %s is negative", ErrInvalidEntry, s)
	}
	return amount, nil
}
