package domain

// Set helpers for the JSON-backed id columns. Union and difference are the
// only mutations reconciliation performs, which is what keeps membership
// operations idempotent.

func ContainsID(ids []int64, id int64) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}

// UnionIDs appends the ids from extra that set does not already contain,
// preserving the order of first appearance.
func UnionIDs(set []int64, extra ...int64) []int64 {
	out := make([]int64, 0, len(set)+len(extra))
	seen := make(map[int64]struct{}, len(set)+len(extra))
	for _, id := range set {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range extra {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RemoveID returns set without id. Removing an absent id returns an equal
// set.
func RemoveID(set []int64, id int64) []int64 {
	out := make([]int64, 0, len(set))
	for _, have := range set {
		if have != id {
			out = append(out, have)
		}
	}
	return out
}
