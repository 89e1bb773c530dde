// Package capability decides which reported issues an NGO reviewer may
// see and act on, based on the reviewer's declared focus areas.
package capability

// Eligible reports whether a reviewer with the given focus areas may
// see or act on an issue of the given category. A reviewer with no
// focus areas is eligible for nothing.
func Eligible(focusAreas []string, category string) bool {
	for _, area := range focusAreas {
		if area == category {
			return true
		}
	}
	return false
}

// Batches partitions the focus-area set into slices no larger than max,
// so each slice fits under the store's multi-value equality-filter
// limit. The caller queries once per batch and merges.
func Batches(focusAreas []string, max int) [][]string {
	if max <= 0 || len(focusAreas) == 0 {
		return nil
	}
	var out [][]string
	for start := 0; start < len(focusAreas); start += max {
		end := start + max
		if end > len(focusAreas) {
			end = len(focusAreas)
		}
		out = append(out, focusAreas[start:end])
	}
	return out
}
