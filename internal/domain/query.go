package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeQuery lowercases the query and collapses runs of whitespace into
// single spaces. All pipeline steps (theme detection, cache keying) operate
// on the normalized form so that trivially different spellings of the same
// question share one cache entry.
func NormalizeQuery(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// CacheKey returns the embedding cache key for a query: sha256 hex of the
// normalized text. Deterministic and collision-resistant, so repeated
// identical queries always hit the same entry.
func CacheKey(text string) string {
	h := sha256.Sum256([]byte(NormalizeQuery(text)))
	return hex.EncodeToString(h[:])
}
