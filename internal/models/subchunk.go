// ABOUTME: ParentRef decodes the parent chunk index of a subchunk
// ABOUTME: Accepts bare integers or objects keyed original_chunk_index / qa_index
package models

import (
	"bytes"
	"encoding/json"
)

// ParentRef is one entry of a subchunk parent-index table. The published
// artifacts mix two encodings: a bare integer, or an object holding the
// index under "original_chunk_index" or "qa_index". Any other shape is
// retained as an invalid ref and skipped during aggregation, never fatal.
type ParentRef struct {
	Index int
	Valid bool
	Raw   json.RawMessage
}

// parentIndexKeys are checked in order when the ref is an object.
var parentIndexKeys = []string{"original_chunk_index", "qa_index"}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	// Unmarshaling null into an int is a no-op that reports success,
	// which would alias null refs to chunk 0.
	if string(bytes.TrimSpace(data)) == "null" {
		p.Index = 0
		p.Valid = false
		p.Raw = append(json.RawMessage(nil), data...)
		return nil
	}

	var idx int
	if err := json.Unmarshal(data, &idx); err == nil {
		p.Index = idx
		p.Valid = true
		p.Raw = nil
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, key := range parentIndexKeys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &idx); err == nil {
				p.Index = idx
				p.Valid = true
				p.Raw = nil
				return nil
			}
		}
	}

	p.Index = 0
	p.Valid = false
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}
