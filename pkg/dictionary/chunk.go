package dictionary

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/bastiangx/wordfix/internal/utils"
)

const chunkGlob = "dict_*.bin"

// RankedWord is one entry of a chunk file. Rank 1 is the most frequent word.
type RankedWord struct {
	Word string
	Rank uint16
}

// Score turns the rank into an occurrence count, so rank 1 becomes 65535,
// rank 2 becomes 65534 and so on.
func (w RankedWord) Score() int {
	return math.MaxUint16 - int(w.Rank) + 1
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// ChunkLoader reads the dict_NNNN.bin files of a directory in id order.
//
// A chunk file is a little endian int32 word count, followed by that many
// entries of uint16 byte length, the UTF-8 word and a uint16 rank.
type ChunkLoader struct {
	dirPath  string
	maxWords int
}

// NewChunkLoader creates a loader for dirPath. maxWords limits the number of
// words indexed, zero means all.
func NewChunkLoader(dirPath string, maxWords int) *ChunkLoader {
	return &ChunkLoader{dirPath: dirPath, maxWords: maxWords}
}

// GetAvailableChunks scans the directory for chunk files, sorted by id.
func (cl *ChunkLoader) GetAvailableChunks() ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(cl.dirPath, chunkGlob))
	if err != nil {
		return nil, errors.Wrap(err, "scan for chunk files")
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Debugf("Ignoring %s: not a numbered chunk", file)
			continue
		}
		wordCount, err := readChunkHeader(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			continue
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file, WordCount: wordCount})
	}
	slices.SortFunc(chunks, func(a, b ChunkInfo) int { return a.ChunkID - b.ChunkID })
	return chunks, nil
}

type chunkBatch struct {
	info    ChunkInfo
	entries []RankedWord
	err     error
}

// decode reads chunks in the background so that file I/O overlaps with
// indexing. Indexing itself stays on the caller's goroutine.
func decode(ctx context.Context, chunks []ChunkInfo) <-chan chunkBatch {
	out := make(chan chunkBatch, 2)
	go func() {
		defer close(out)
		for _, c := range chunks {
			entries, err := ReadChunkFile(c.Filename)
			select {
			case out <- chunkBatch{info: c, entries: entries, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

// LoadInto indexes all available chunks, or the first maxWords words.
func (cl *ChunkLoader) LoadInto(ctx context.Context, idx Indexer) (Stats, error) {
	chunks, err := cl.GetAvailableChunks()
	if err != nil {
		return Stats{}, err
	}
	if len(chunks) == 0 {
		return Stats{}, errors.Newf("no chunk files found in %s", cl.dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))
	return cl.load(ctx, chunks, idx)
}

// LoadFile indexes a single chunk file.
func (cl *ChunkLoader) LoadFile(ctx context.Context, filename string, idx Indexer) (Stats, error) {
	return cl.load(ctx, []ChunkInfo{{Filename: filename}}, idx)
}

func (cl *ChunkLoader) load(ctx context.Context, chunks []ChunkInfo, idx Indexer) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stats Stats
	for batch := range decode(ctx, chunks) {
		if batch.err != nil {
			return stats, batch.err
		}
		for _, e := range batch.entries {
			if cl.maxWords > 0 && stats.Words >= cl.maxWords {
				log.Debugf("Word limit %d reached in %s", cl.maxWords, batch.info.Filename)
				return stats, nil
			}
			score := e.Score()
			if err := indexCount(idx, e.Word, score); err != nil {
				return stats, errors.Wrapf(err, "chunk %s", batch.info.Filename)
			}
			stats.Words++
			stats.Occurrences += score
		}
		stats.Files++
		log.Debugf("Chunk %s loaded: %d words", batch.info.Filename, len(batch.entries))
	}
	return stats, ctx.Err()
}

// ReadChunkFile decodes a whole chunk file.
func ReadChunkFile(filename string) ([]RankedWord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open chunk file %s", filename)
	}
	defer file.Close()
	entries, err := ReadChunk(file)
	if err != nil {
		return entries, errors.Wrapf(err, "chunk file %s", filename)
	}
	return entries, nil
}

// ReadChunk decodes a chunk. A stream that ends cleanly before the announced
// word count is accepted with a warning.
func ReadChunk(r io.Reader) ([]RankedWord, error) {
	reader := bufio.NewReader(r)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return nil, errors.Wrap(err, "read chunk header")
	}
	if total < 0 || total > maxChunkWords {
		return nil, errors.Newf("invalid word count %d", total)
	}

	entries := make([]RankedWord, 0, total)
	for len(entries) < int(total) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk ends after %d of %d words", len(entries), total)
				break
			}
			return entries, errors.Wrap(err, "read word length")
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return entries, errors.Wrap(err, "read word")
		}
		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return entries, errors.Wrap(err, "read rank")
		}
		entries = append(entries, RankedWord{Word: string(wordBytes), Rank: rank})
	}
	return entries, nil
}

// WriteChunk encodes entries in the chunk format.
func WriteChunk(w io.Writer, entries []RankedWord) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return errors.Wrap(err, "write chunk header")
	}
	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return errors.Newf("word of %d bytes does not fit a chunk entry", len(e.Word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return errors.Wrap(err, "write word length")
		}
		if _, err := bw.WriteString(e.Word); err != nil {
			return errors.Wrap(err, "write word")
		}
		if err := binary.Write(bw, binary.LittleEndian, e.Rank); err != nil {
			return errors.Wrap(err, "write rank")
		}
	}
	return bw.Flush()
}

// WriteChunks ranks words in the given order and splits them over
// dict_0001.bin, dict_0002.bin, ... in dir. It returns the files written.
func WriteChunks(dir string, words []string, chunkSize int) ([]string, error) {
	if chunkSize < 1 {
		return nil, errors.Newf("chunk size must be positive, got %d", chunkSize)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	ranks := utils.CreateRankList(len(words))

	var files []string
	for start := 0; start < len(words); start += chunkSize {
		end := min(start+chunkSize, len(words))
		entries := make([]RankedWord, 0, end-start)
		for i := start; i < end; i++ {
			entries = append(entries, RankedWord{Word: words[i], Rank: ranks[i]})
		}
		name := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", len(files)+1))
		if err := writeChunkFile(name, entries); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

func writeChunkFile(name string, entries []RankedWord) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}
	if err := WriteChunk(file, entries); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", name)
	}
	return errors.Wrapf(file.Close(), "close %s", name)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
