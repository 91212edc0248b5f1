package resource

import (
	"encoding/json"
	"strconv"
)

// Entity is a decoded JSON object with an "id" field.
// The handler treats the rest of the payload as opaque.
type Entity map[string]any

// ID is the canonical string form of an entity identifier or archive key.
// Server-assigned numeric ids and client-side temporary ids share this
// key space, so a numeric id is formatted without fraction or exponent.
type ID string

// TempIDPrefix marks optimistic identifiers handed out before the server
// confirms the real id of a created entity.
const TempIDPrefix = "_tmp_"

// IsTemp reports whether the id is an optimistic client-side placeholder.
func (id ID) IsTemp() bool {
	return len(id) >= len(TempIDPrefix) && id[:len(TempIDPrefix)] == TempIDPrefix
}

// EntityID extracts the canonical id of an entity.
// Returns false when the entity has no usable "id" field.
func EntityID(e Entity) (ID, bool) {
	raw, ok := e["id"]
	if !ok || raw == nil {
		return "", false
	}
	return CanonicalID(raw)
}

// CanonicalID converts a scalar id value to its canonical string form.
func CanonicalID(raw any) (ID, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return ID(v), true
	case float64:
		// JSON numbers decode to float64; integral values lose the fraction.
		if v == float64(int64(v)) {
			return ID(strconv.FormatInt(int64(v), 10)), true
		}
		return ID(strconv.FormatFloat(v, 'g', -1, 64)), true
	case int:
		return ID(strconv.Itoa(v)), true
	case int64:
		return ID(strconv.FormatInt(v, 10)), true
	case uint64:
		return ID(strconv.FormatUint(v, 10)), true
	case json.Number:
		return ID(v.String()), true
	default:
		return "", false
	}
}
