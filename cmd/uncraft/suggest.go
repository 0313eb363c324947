package main

import (
	"github.com/agnivade/levenshtein"
)

// suggest returns the closest known id to id, or "" when nothing is close.
// Ties go to the earlier palette entry.
func suggest(id string, known []string) string {
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(id, k)
		if d > distanceLimit(len(k)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
