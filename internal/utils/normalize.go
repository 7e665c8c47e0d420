package utils

import "math"

// CreateRankList creates ranks 1..count for items that are already sorted
// best first. Ranks past the uint16 range stay at the lowest rank.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(min(i+1, math.MaxUint16))
	}
	return ranks
}
