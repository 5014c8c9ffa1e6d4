package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "kind:sha256" key from a graph hash and the JSON form of
// the settings that affect the cached value.
func hashKey(kind, graphHash string, opts any) string {
	data, _ := json.Marshal(struct {
		Graph string `json:"graph"`
		Opts  any    `json:"opts"`
	}{graphHash, opts})
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Map keys are sorted by the
// encoder, so attribute and position maps hash stably.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
