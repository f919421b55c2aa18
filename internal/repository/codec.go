package repository

import (
	"database/sql"
	"encoding/json"
)

// The five movie cross-reference collections are stored as JSON text
// columns. encodeList/decodeList are the only places that touch the wire
// format: encode on write, decode on read.

// encodeList serializes a string slice for storage. A nil slice is stored
// as an empty JSON array rather than NULL so reads stay uniform.
func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeList deserializes a stored column back into a slice. NULL, empty
// and malformed values all decode to an empty slice; the permissive
// default mirrors how the rows were historically read and keeps old
// corrupt rows from breaking list endpoints.
func decodeList(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(v.String), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
