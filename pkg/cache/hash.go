package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<kind>:<sha256>" over the JSON encoding of parts. Struct
// fields encode in declaration order, so equal parts give equal keys.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	// Encoding plain values and tagged structs into a hash cannot fail.
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
