package store

import "encoding/json"

// jsonStrings renders a string slice as a JSONB literal; nil becomes [].
func jsonStrings(v []string) []byte {
	if len(v) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// scanStrings decodes a JSONB array column; empty arrays come back nil.
func scanStrings(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
