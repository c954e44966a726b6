// Package listing loads round allocations from files, as an alternative to
// reading them from the registration contract.
//
// Two formats are accepted:
//
//	JSON: [{"address": "0x...", "amount": "123"}, ...]
//	CSV:  address,amount (an optional header row is skipped)
//
// The legacy proof file written by earlier exports is itself a valid JSON listing.
package listing

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Layr-Labs/allocation-merkle-go/pkg/types"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown listing format")

type record struct {
	Address string      `json:"address"`
	Amount  json.Number `json:"amount"`
}

// DetectFormat picks the format from the file extension, falling back to the content
func DetectFormat(path string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrUnknownFormat, path)
	}
	if trimmed[0] == '[' {
		return FormatJSON, nil
	}
	if bytes.Contains(trimmed, []byte(",")) {
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// LoadFile reads allocations from a listing file in file order
func LoadFile(path string) ([]*types.Allocation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing %s: %w", path, err)
	}

	format, err := DetectFormat(path, data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return ParseJSON(bytes.NewReader(data))
	case FormatCSV:
		return ParseCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// ParseJSON parses a JSON listing. Amounts may be JSON numbers or decimal strings.
func ParseJSON(r io.Reader) ([]*types.Allocation, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON listing: %w", err)
	}

	allocs := make([]*types.Allocation, len(records))
	for i, rec := range records {
		alloc, err := parseRecord(rec.Address, rec.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("listing entry %d: %w", i, err)
		}
		allocs[i] = alloc
	}
	return allocs, nil
}

// ParseCSV parses address,amount rows. Blank lines and lines starting with # are ignored.
func ParseCSV(r io.Reader) ([]*types.Allocation, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV listing: %w", err)
	}

	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "address") {
		rows = rows[1:]
	}

	allocs := make([]*types.Allocation, len(rows))
	for i, row := range rows {
		alloc, err := parseRecord(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("listing row %d: %w", i+1, err)
		}
		allocs[i] = alloc
	}
	return allocs, nil
}

func parseRecord(address, amount string) (*types.Allocation, error) {
	account, err := types.ParseAddress(strings.TrimSpace(address))
	if err != nil {
		return nil, err
	}
	value, err := types.ParseAmount(strings.TrimSpace(amount))
	if err != nil {
		return nil, err
	}
	return &types.Allocation{Account: account, Amount: value}, nil
}
