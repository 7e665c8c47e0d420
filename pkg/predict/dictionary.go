package predict

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
)

// dictionary holds both the indexed words and the deletes derived from them.
// A key may be a word and a fragment of another word at the same time.
type dictionary struct {
	cells     map[string]cell
	words     wordTable
	maxLength int

	maxEditDistance int
	level           AccuracyLevel
}

// growthLogEvery is the number of new words between two index size logs.
var growthLogEvery int32 = 100_000

func newDictionary(s Settings) *dictionary {
	return &dictionary{
		cells:           make(map[string]cell),
		maxEditDistance: s.maxEditDistance,
		level:           s.accuracyLevel,
	}
}

// add counts one occurrence of word. Fragments are generated only on the
// first occurrence, even if the word was known before as a fragment of
// another word.
func (d *dictionary) add(word string) error {
	return d.addCount(word, 1)
}

// addCount counts n occurrences of word at once.
func (d *dictionary) addCount(word string, n int32) error {
	first, err := d.appendWord(word, n)
	if err != nil {
		return err
	}
	if first {
		return d.addFragments(word)
	}
	return nil
}

// appendWord raises the count of word by n and reports whether this was the
// word's first occurrence.
func (d *dictionary) appendWord(word string, n int32) (bool, error) {
	c, known := d.cells[word]
	if !known {
		if d.words.full() {
			return false, errors.Wrapf(ErrCapacityExceeded, "can not index %q", word)
		}
		d.cells[word] = fullCell(&entry{count: n})
		if l := utf8.RuneCountInString(word); l > d.maxLength {
			d.maxLength = l
		}
		return true, nil
	}

	item, err := c.promote()
	if err != nil {
		return false, errors.Wrapf(err, "key %q", word)
	}
	first := item.count == 0
	if first && d.words.full() {
		return false, errors.Wrapf(ErrCapacityExceeded, "can not index %q", word)
	}
	if c.compact() {
		d.cells[word] = fullCell(item)
	}
	if item.count > maxCount-n {
		item.count = maxCount
	} else {
		item.count += n
	}
	return first, nil
}

func (d *dictionary) addFragments(word string) error {
	wordNr, err := d.words.add(word)
	if err != nil {
		return err
	}
	wordLen := utf8.RuneCountInString(word)

	for _, frag := range d.fragments(word) {
		c, ok := d.cells[frag.key]
		if !ok {
			d.cells[frag.key] = compactCell(wordNr)
			continue
		}
		// the key exists already because it is
		// 1. a word that is a delete of this word, or
		// 2. a delete shared with another word
		if c.compact() {
			item, err := c.promote()
			if err != nil {
				return errors.Wrapf(err, "fragment %q", frag.key)
			}
			d.cells[frag.key] = fullCell(item)
			if c.word != wordNr {
				d.addLowestDistance(item, wordNr, wordLen, frag.length)
			}
		} else if !c.full.references(wordNr) {
			d.addLowestDistance(c.full, wordNr, wordLen, frag.length)
		}
	}
	if (wordNr+1)%growthLogEvery == 0 {
		log.Debugf("Indexed %d words, %d keys", wordNr+1, len(d.cells))
	}
	return nil
}

// addLowestDistance keeps only the suggestions closest to the fragment unless
// every contributing word must be kept for maximum recall.
func (d *dictionary) addLowestDistance(item *entry, wordNr int32, wordLen, fragLen int) {
	indexedDistance := -1
	if len(item.suggestions) > 0 {
		indexedDistance = utf8.RuneCountInString(d.words.at(item.suggestions[0])) - fragLen
	}
	fragmentDistance := wordLen - fragLen

	if d.level.pruning() && indexedDistance > fragmentDistance {
		item.suggestions = item.suggestions[:0]
	}
	if !d.level.pruning() || len(item.suggestions) == 0 || indexedDistance >= fragmentDistance {
		item.suggestions = append(item.suggestions, wordNr)
	}
}

type fragment struct {
	key    string
	length int
}

// fragments returns every distinct string reachable from word by deleting
// 1..maxEditDistance characters. Words of a single character have none.
func (d *dictionary) fragments(word string) []fragment {
	if d.maxEditDistance == 0 {
		return nil
	}
	type pending struct {
		runes []rune
		depth int
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var out []fragment
	stack := []pending{{runes: []rune(word)}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(p.runes) <= 1 {
			continue
		}
		depth := p.depth + 1
		for i := range p.runes {
			del := deleteRune(p.runes, i)
			key := string(del)
			if !seen.Add(key) {
				continue
			}
			out = append(out, fragment{key: key, length: len(del)})
			if depth < d.maxEditDistance {
				stack = append(stack, pending{runes: del, depth: depth})
			}
		}
	}
	return out
}

// deleteRune returns a copy of r without the rune at i.
func deleteRune(r []rune, i int) []rune {
	out := make([]rune, 0, len(r)-1)
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...)
}
