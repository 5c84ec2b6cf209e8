package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RecordID is an opaque record identifier assigned by the portfolio API.
// It accepts either a JSON number or a JSON string on decode and is always
// carried as text afterwards.
type RecordID string

// UnmarshalJSON decodes a number or string identifier. JSON null leaves the
// identifier empty.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode record id: %w", err)
		}
		*id = RecordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// String returns the identifier text.
func (id RecordID) String() string {
	return string(id)
}
