package dictionary

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// FileFormat represents the word list formats wordfix can index.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // dict_NNNN.bin, see ChunkLoader
	FormatText               // one word per line, optional tab and count
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown format"
}

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ".dic", ".words"},
		MinSize:     1,
	},
}

// maxChunkWords is a sanity bound on the header of a single chunk file.
const maxChunkWords = 1_000_000

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return errors.Wrapf(err, "stat %s", filename)
	}
	formatInfo, ok := supportedFormats[expectedFormat]
	if !ok {
		return errors.Newf("unknown format: %d", int(expectedFormat))
	}
	if fileInfo.Size() < formatInfo.MinSize {
		return errors.Newf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(formatInfo.Extensions, ext) {
		return errors.Newf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}
	if expectedFormat == FormatChunk {
		_, err := readChunkHeader(filename)
		return err
	}
	return nil
}

// readChunkHeader reads and checks the word count of a chunk file.
func readChunkHeader(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, errors.Wrapf(err, "read header from %s", filename)
	}
	if wordCount < 0 {
		return 0, errors.Newf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return 0, errors.Newf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}
	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return int(wordCount), nil
}

// DetectFileFormat detects the format of a file, or of a directory holding
// chunk files.
func DetectFileFormat(path string) (FileFormat, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		matches, _ := filepath.Glob(filepath.Join(path, chunkGlob))
		if len(matches) > 0 {
			return FormatChunk, nil
		}
		return FormatUnknown, errors.WithHint(
			errors.Newf("no chunk files in directory %s", path),
			"expected files named dict_0001.bin, dict_0002.bin, ...")
	}

	ext := strings.ToLower(filepath.Ext(path))
	basename := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateFileFormat(path, FormatChunk); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}
	if err := ValidateFileFormat(path, FormatText); err != nil {
		return FormatUnknown, errors.WithHint(err, "supported: "+supportedList())
	}
	return FormatText, nil
}

func supportedList() string {
	var names []string
	for _, f := range []FileFormat{FormatChunk, FormatText} {
		info := supportedFormats[f]
		names = append(names, info.Description+" "+strings.Join(info.Extensions, "/"))
	}
	return strings.Join(names, ", ")
}
