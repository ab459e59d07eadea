package domain

// VectorMatch is a single nearest-neighbor hit from the vector index,
// ordered descending by Score (higher = more similar).
type VectorMatch struct {
	EntityID string
	Score    float64
	Name     string
	Type     string
	City     string
	Tags     []string
}

// EntityIDs extracts the distinct entity ids from matches, preserving
// first-seen order. The graph lookup is keyed by these ids.
func EntityIDs(matches []VectorMatch) []string {
	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.EntityID == "" {
			continue
		}
		if _, ok := seen[m.EntityID]; ok {
			continue
		}
		seen[m.EntityID] = struct{}{}
		ids = append(ids, m.EntityID)
	}
	return ids
}
