package predict

import (
	"math"

	"github.com/cockroachdb/errors"
)

// maxWords bounds the word table so that indices fit a compact cell.
var maxWords = math.MaxInt32

// wordTable is the append-only list of distinct words. A word's position is
// its stable identity and is never reused.
type wordTable struct {
	words []string
}

func (t *wordTable) full() bool {
	return len(t.words) >= maxWords
}

func (t *wordTable) add(word string) (int32, error) {
	if t.full() {
		return -1, errors.Wrapf(ErrCapacityExceeded, "can not index %q, word table holds %d words", word, len(t.words))
	}
	t.words = append(t.words, word)
	return int32(len(t.words) - 1), nil
}

func (t *wordTable) at(i int32) string {
	return t.words[i]
}

func (t *wordTable) len() int {
	return len(t.words)
}
