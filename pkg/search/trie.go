package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/hbollon/go-edlib"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Trie is the exhaustive reference backend. Words and their counts live in a
// patricia trie, and a lookup scores every word within reach by the classic
// optimal string alignment distance.
type Trie struct {
	trie        *patricia.Trie
	maxDistance int
	topK        int
	words       int
}

func NewTrie(maxDistance, topK int) *Trie {
	return &Trie{
		trie:        patricia.NewTrie(),
		maxDistance: maxDistance,
		topK:        topK,
	}
}

func (t *Trie) Index(word string) (bool, error) {
	return t.IndexCount(word, 1)
}

// IndexCount adds n occurrences of word.
func (t *Trie) IndexCount(word string, n int) (bool, error) {
	key := patricia.Prefix(strings.ToLower(word))
	if item := t.trie.Get(key); item != nil {
		t.trie.Set(key, item.(int)+n)
		return true, nil
	}
	t.trie.Insert(key, n)
	t.words++
	return true, nil
}

func (t *Trie) FindSimilarWords(word string) []string {
	query := strings.ToLower(word)
	queryLen := utf8.RuneCountInString(query)

	var candidates []ranked
	err := t.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		term := string(prefix)
		if abs(utf8.RuneCountInString(term)-queryLen) > t.maxDistance {
			return nil
		}
		if d := edlib.OSADamerauLevenshteinDistance(query, term); d <= t.maxDistance {
			candidates = append(candidates, ranked{term: term, distance: d, count: item.(int)})
		}
		return nil
	})
	if err != nil {
		log.Error("Trie walk failed", "query", word, "err", err)
	}
	return rank(candidates, t.topK)
}

// Len is the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

func (t *Trie) String() string {
	return fmt.Sprintf("Trie OSA (max %d)", t.maxDistance)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
