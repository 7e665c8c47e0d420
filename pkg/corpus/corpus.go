// Package corpus reads the test corpus used to measure correction quality.
//
// Each record has three ':' separated fields:
//
//	kitten:true:kittn,kiten,kittem
//	sun:false:sin,son
//
// The first field is a correctly spelled word. The second is true when the
// variants are misspellings that should be corrected to it, and false when
// the variants are real words that must be left alone. The third is a comma
// separated list of variants.
package corpus

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// Record is one corpus line.
type Record struct {
	Word     string
	Match    bool
	Variants []string
}

// Corpus is an ordered set of records.
type Corpus struct {
	Records []Record
}

// Read parses a corpus. Empty lines and lines starting with '#' are skipped.
func Read(r io.Reader) (*Corpus, error) {
	reader := csv.NewReader(r)
	reader.Comma = ':'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	c := &Corpus{}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read corpus")
		}
		line, _ := reader.FieldPos(0)
		if len(fields) < 3 {
			return nil, errors.Newf("corpus line %d: want 3 fields, got %d", line, len(fields))
		}
		match, err := strconv.ParseBool(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "corpus line %d", line)
		}
		c.Records = append(c.Records, Record{
			Word:     strings.TrimSpace(fields[0]),
			Match:    match,
			Variants: splitVariants(fields[2]),
		})
	}
	log.Debugf("Corpus: %d records, %d queries", len(c.Records), len(c.Queries()))
	return c, nil
}

func splitVariants(field string) []string {
	var out []string
	for _, v := range strings.Split(field, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ReadFile parses the corpus at path.
func ReadFile(path string) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open corpus %s", path)
	}
	defer file.Close()
	c, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "corpus %s", path)
	}
	return c, nil
}

// Words returns the first field of every record, in corpus order.
func (c *Corpus) Words() []string {
	words := make([]string, len(c.Records))
	for i, r := range c.Records {
		words[i] = r.Word
	}
	return words
}

// Queries returns the variants of all records, in corpus order.
func (c *Corpus) Queries() []string {
	var queries []string
	for _, r := range c.Records {
		queries = append(queries, r.Variants...)
	}
	return queries
}

// Indexer receives the corpus words.
type Indexer interface {
	Index(word string) (bool, error)
}

// Populate indexes every corpus word and returns how many were indexed.
func (c *Corpus) Populate(idx Indexer) (int, error) {
	for i, r := range c.Records {
		if _, err := idx.Index(r.Word); err != nil {
			return i, errors.Wrapf(err, "index %q", r.Word)
		}
	}
	return len(c.Records), nil
}
