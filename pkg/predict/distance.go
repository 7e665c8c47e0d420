package predict

// CharDistanceFunc returns the substitution cost between two characters,
// 0 for identical and 1 for unrelated.
type CharDistanceFunc func(a, b rune) float64

func constantCharDistance(_, _ rune) float64 { return 1 }

// EditDistance computes a weighted Damerau-Levenshtein distance. Only
// replaces and transpositions on the same alignment position are considered;
// off-diagonal cells are charged as deletes (i > j) or inserts (i < j).
type EditDistance struct {
	DeletionWeight      float64
	InsertionWeight     float64
	ReplaceWeight       float64
	TranspositionWeight float64
	// CharDistance scales the replace weight. Nil means constant 1.
	CharDistance CharDistanceFunc
}

// EditDistanceFrom returns the distance function configured by s.
func EditDistanceFrom(s Settings, charDistance CharDistanceFunc) EditDistance {
	return EditDistance{
		DeletionWeight:      s.deletionWeight,
		InsertionWeight:     s.insertionWeight,
		ReplaceWeight:       s.replaceWeight,
		TranspositionWeight: s.transpositionWeight,
		CharDistance:        charDistance,
	}
}

// LengthDistance is the cost of turning a string of fromLen characters into
// one of toLen characters with deletes or inserts only. It is exact when one
// string is a subsequence of the other, which the caller has to know.
func (e EditDistance) LengthDistance(fromLen, toLen int) float64 {
	if fromLen > toLen {
		return e.DeletionWeight * float64(fromLen-toLen)
	}
	return e.InsertionWeight * float64(toLen-fromLen)
}

// Between runs the full dynamic program over a and b.
func (e EditDistance) Between(a, b []rune) float64 {
	if len(a) == 0 {
		return float64(len(b))
	}
	if len(b) == 0 {
		return float64(len(a))
	}
	charDistance := e.CharDistance
	if charDistance == nil {
		charDistance = constantCharDistance
	}

	width := len(a) + 1
	d := make([]float64, (len(b)+1)*width)
	for i := 0; i <= len(a); i++ {
		d[i] = float64(i) * e.DeletionWeight
	}
	for j := 0; j <= len(b); j++ {
		d[j*width] = float64(j)
	}

	for j := 1; j <= len(b); j++ {
		bj := b[j-1]
		row, prev := j*width, (j-1)*width
		for i := 1; i <= len(a); i++ {
			ai := a[i-1]
			low := min(d[prev+i-1], d[prev+i], d[row+i-1])
			switch {
			case ai == bj:
				d[row+i] = low
			case i == j:
				d[row+i] = low + e.ReplaceWeight*charDistance(bj, ai)
				if i > 1 && ai == b[j-2] && a[i-2] == bj {
					d[row+i] = min(d[row+i], d[(j-2)*width+i-2]+e.TranspositionWeight)
				}
			case i > j:
				d[row+i] = low + e.DeletionWeight
			default:
				d[row+i] = low + e.InsertionWeight
			}
		}
	}
	return d[len(b)*width+len(a)]
}

// Trimmed strips the common prefix and suffix before running the dynamic
// program. This assumes no transposition crosses the trim boundary, which
// holds for the usual weights but is not proven for strongly asymmetric ones.
func (e EditDistance) Trimmed(a, b []rune) (distance float64, prefixLen, suffixLen int) {
	prefixLen, suffixLen = CommonAffixes(a, b)
	if prefixLen == 0 && suffixLen == 0 {
		return e.Between(a, b), 0, 0
	}
	return e.Between(a[prefixLen:len(a)-suffixLen], b[prefixLen:len(b)-suffixLen]), prefixLen, suffixLen
}

// CommonAffixes returns the length of the shared prefix of a and b and the
// length of the shared suffix of what remains.
func CommonAffixes(a, b []rune) (prefixLen, suffixLen int) {
	for prefixLen < len(a) && prefixLen < len(b) && a[prefixLen] == b[prefixLen] {
		prefixLen++
	}
	for suffixLen < len(a)-prefixLen && suffixLen < len(b)-prefixLen &&
		a[len(a)-suffixLen-1] == b[len(b)-suffixLen-1] {
		suffixLen++
	}
	return prefixLen, suffixLen
}
