package persistence

import (
	"encoding/json"
	"fmt"
)

// MarshalRoundRecord serializes a RoundRecord to JSON bytes.
func MarshalRoundRecord(rr *RoundRecord) ([]byte, error) {
	if rr == nil {
		return nil, fmt.Errorf("cannot marshal nil RoundRecord")
	}

	data, err := json.Marshal(rr)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RoundRecord to JSON: %w", err)
	}

	return data, nil
}

// UnmarshalRoundRecord deserializes a RoundRecord from JSON bytes.
func UnmarshalRoundRecord(data []byte) (*RoundRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var rr RoundRecord
	if err := json.Unmarshal(data, &rr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to RoundRecord: %w", err)
	}

	return &rr, nil
}

// CopyRoundRecord deep copies a record through its serialized form
func CopyRoundRecord(rr *RoundRecord) (*RoundRecord, error) {
	data, err := MarshalRoundRecord(rr)
	if err != nil {
		return nil, err
	}
	return UnmarshalRoundRecord(data)
}
