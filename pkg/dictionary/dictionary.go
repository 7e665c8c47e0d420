// Package dictionary feeds word lists into an index. Two formats are read:
// plain text with an optional count per line, and the chunked binary format
// of ranked words split over dict_NNNN.bin files.
package dictionary

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Indexer receives words one occurrence at a time.
type Indexer interface {
	Index(word string) (bool, error)
}

// CountIndexer can take many occurrences of a word in one call.
type CountIndexer interface {
	Indexer
	IndexCount(word string, n int) (bool, error)
}

// Stats summarizes a load.
type Stats struct {
	Words       int // distinct entries read
	Occurrences int // sum of their counts
	Skipped     int // blank, comment or malformed entries
	Files       int
}

// indexCount adds n occurrences of word, in one call when idx supports it.
func indexCount(idx Indexer, word string, n int) error {
	if ci, ok := idx.(CountIndexer); ok {
		_, err := ci.IndexCount(word, n)
		return err
	}
	for range n {
		if _, err := idx.Index(word); err != nil {
			return err
		}
	}
	return nil
}

// Load detects the format of path and indexes its words. A directory is read
// as a set of chunk files. maxWords limits the number of distinct words, zero
// means no limit.
func Load(ctx context.Context, path string, idx Indexer, maxWords int) (Stats, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return Stats{}, err
	}
	switch format {
	case FormatChunk:
		loader := NewChunkLoader(path, maxWords)
		if isDir(path) {
			return loader.LoadInto(ctx, idx)
		}
		return loader.LoadFile(ctx, path, idx)
	case FormatText:
		return LoadTextFile(ctx, path, idx, maxWords)
	}
	return Stats{}, errors.Newf("unsupported format %v", format)
}
