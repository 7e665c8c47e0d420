package dictionary

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// LoadText indexes a word list with one entry per line. A line is either a
// word or a word, a tab and a positive count. Blank lines and lines starting
// with '#' are skipped.
func LoadText(ctx context.Context, r io.Reader, idx Indexer, maxWords int) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(r)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		if lineNr%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		if maxWords > 0 && stats.Words >= maxWords {
			break
		}
		word, count, ok := parseLine(scanner.Text())
		if !ok {
			if strings.TrimSpace(scanner.Text()) != "" {
				log.Debugf("Skipping malformed line %d: %q", lineNr, scanner.Text())
			}
			stats.Skipped++
			continue
		}
		if err := indexCount(idx, word, count); err != nil {
			return stats, errors.Wrapf(err, "line %d", lineNr)
		}
		stats.Words++
		stats.Occurrences += count
	}
	if err := scanner.Err(); err != nil {
		return stats, errors.Wrap(err, "read word list")
	}
	return stats, nil
}

func parseLine(line string) (string, int, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return "", 0, false
	}
	word, countField, hasCount := strings.Cut(line, "\t")
	word = strings.TrimSpace(word)
	if word == "" {
		return "", 0, false
	}
	if !hasCount {
		return word, 1, true
	}
	count, err := strconv.Atoi(strings.TrimSpace(countField))
	if err != nil || count < 1 {
		return "", 0, false
	}
	return word, count, true
}

// LoadTextFile is LoadText on a file.
func LoadTextFile(ctx context.Context, path string, idx Indexer, maxWords int) (Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return Stats{}, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	stats, err := LoadText(ctx, file, idx, maxWords)
	stats.Files = 1
	if err != nil {
		return stats, errors.Wrapf(err, "load %s", path)
	}
	log.Debugf("Loaded %d words (%d occurrences) from %s", stats.Words, stats.Occurrences, path)
	return stats, nil
}
