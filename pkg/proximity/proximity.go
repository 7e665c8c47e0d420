// Package proximity scores how alike two words look, from 0 (nothing in
// common) to 1 (identical).
package proximity

import "slices"

// Fragment is the Dice coefficient over the character bigrams of s and t.
// Words shorter than two characters have no bigrams and score 0 unless they
// are equal.
func Fragment(s, t string) float64 {
	if s == t {
		return 1
	}
	sp, tp := bigrams(s), bigrams(t)
	if len(sp) == 0 || len(tp) == 0 {
		return 0
	}
	slices.Sort(sp)
	slices.Sort(tp)

	matches, i, j := 0, 0, 0
	for i < len(sp) && j < len(tp) {
		switch {
		case sp[i] == tp[j]:
			matches += 2
			i++
			j++
		case sp[i] < tp[j]:
			i++
		default:
			j++
		}
	}
	return float64(matches) / float64(len(sp)+len(tp))
}

// bigrams packs each pair of adjacent runes into one integer.
func bigrams(s string) []uint64 {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	out := make([]uint64, len(r)-1)
	for i := range out {
		out[i] = uint64(r[i])<<32 | uint64(r[i+1])
	}
	return out
}

// Prefix is the length of the common prefix relative to the longer word.
func Prefix(s, t string) float64 {
	a, b := []rune(s), []rune(t)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return float64(n) / float64(max(len(a), len(b)))
}
