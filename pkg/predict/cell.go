package predict

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
)

// maxCount is the value at which word counts saturate.
const maxCount = math.MaxInt32

// entry holds a word's count (0 for fragment-only keys) and the indices of
// the words a fragment was derived from.
type entry struct {
	count       int32
	suggestions []int32
}

// cell is the value stored per dictionary key. Most fragment keys stem from
// exactly one word, so they are stored compact as that word's index. Once a
// second word shares the key, or the key is a word itself, it is promoted to
// a full entry.
type cell struct {
	word int32
	full *entry
}

func compactCell(word int32) cell {
	return cell{word: word}
}

func fullCell(e *entry) cell {
	return cell{word: -1, full: e}
}

func (c cell) compact() bool {
	return c.full == nil
}

func (c cell) valid() bool {
	return c.full != nil || c.word >= 0
}

// promote returns the full entry for c, creating one for compact cells.
// The caller stores it back into the map.
func (c cell) promote() (*entry, error) {
	if c.full != nil {
		return c.full, nil
	}
	if c.word < 0 {
		return nil, errors.WithStack(ErrInvalidCell)
	}
	return &entry{suggestions: []int32{c.word}}, nil
}

// view exposes count and suggestions without promoting. buf backs the
// single suggestion of a compact cell.
func (c cell) view(buf *[1]int32) (int32, []int32, error) {
	if c.full != nil {
		return c.full.count, c.full.suggestions, nil
	}
	if c.word < 0 {
		return 0, nil, errors.WithStack(ErrInvalidCell)
	}
	buf[0] = c.word
	return 0, buf[:], nil
}

func (e *entry) references(word int32) bool {
	return slices.Contains(e.suggestions, word)
}
