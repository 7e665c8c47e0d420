package predict

// Customizing bundles the extension points of the engine. Embed Noop to
// inherit the neutral default for every hook you do not override.
type Customizing interface {
	// CleanIndexWord normalizes a word before it is indexed.
	CleanIndexWord(word string) string

	// CleanSearchWord normalizes a word before it is looked up.
	CleanSearchWord(searchWord string) string

	// ReplacementDistance scales the replace weight for a pair of characters.
	// 0 means no distance, 1 maximum distance.
	ReplacementDistance(a, b rune) float64

	// AdjustDistance is called before a candidate is added to the result list.
	AdjustDistance(searchWord, candidate string, distance float64) float64

	// AdjustDetailedDistance is called after the edit distance was computed on
	// the words without their common prefix and suffix.
	AdjustDetailedDistance(searchWord, suggestion string, distance float64, prefixLen, suffixLen int) float64

	// AdjustFinalResult may filter and reorder the result, which arrives
	// truncated to the accuracy level and sorted by distance and count.
	AdjustFinalResult(searchWord string, result []SuggestItem) []SuggestItem
}

// Noop leaves every word, distance and result untouched.
type Noop struct{}

var _ Customizing = Noop{}

func (Noop) CleanIndexWord(word string) string { return word }

func (Noop) CleanSearchWord(searchWord string) string { return searchWord }

func (Noop) ReplacementDistance(_, _ rune) float64 { return 1 }

func (Noop) AdjustDistance(_, _ string, distance float64) float64 { return distance }

func (Noop) AdjustDetailedDistance(_, _ string, distance float64, _, _ int) float64 {
	return distance
}

func (Noop) AdjustFinalResult(_ string, result []SuggestItem) []SuggestItem { return result }

func (Noop) String() string { return "SE" }
