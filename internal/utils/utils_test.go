package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInput(t *testing.T) {
	tests := map[string]bool{
		"":         false,
		"123":      false,
		"www":      false,
		"ab":       true,
		"kittn":    true,
		"don't":    true,
		"new-york": true,
		"a+b":      false,
		"grün":     true,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsValidInput(in), in)
	}
}

func TestIsValidLength(t *testing.T) {
	assert.True(t, IsValidLength("abc", 1, 3))
	assert.False(t, IsValidLength("abcd", 1, 3))
	assert.False(t, IsValidLength("", 1, 0))
	assert.True(t, IsValidLength("abcdefgh", 1, 0))
	assert.True(t, IsValidLength("äöü", 3, 3))
}

func TestCaseMask(t *testing.T) {
	lower, mask := CaptureCase("KiTtn")
	assert.Equal(t, "kittn", lower)
	assert.Equal(t, CaseMask{0, 2}, mask)
	assert.Equal(t, "KiTten", mask.Apply("kitten"))
	assert.Equal(t, "K", mask.Apply("k"))

	lower, mask = CaptureCase("Über")
	assert.Equal(t, "über", lower)
	assert.Equal(t, "Übel", mask.Apply("übel"))

	_, mask = CaptureCase("plain")
	assert.Empty(t, mask)
	assert.Equal(t, "word", mask.Apply("word"))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "65,536", FormatCount(65536))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "-12,345", FormatCount(-12345))
}

type sample struct {
	Name  string  `toml:"name"`
	Count int     `toml:"count"`
	Ratio float64 `toml:"ratio"`
}

func TestTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sample.toml")
	require.NoError(t, EnsureDir(filepath.Dir(path)))
	require.NoError(t, SaveTOMLFile(map[string]sample{"s": {Name: "x", Count: 3, Ratio: 2}}, path))
	assert.True(t, FileExists(path))

	var got map[string]sample
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, sample{Name: "x", Count: 3, Ratio: 2}, got["s"])

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	section, ok := ExtractSection(raw, "s")
	require.True(t, ok)
	name, ok := ExtractString(section, "name")
	assert.True(t, ok)
	assert.Equal(t, "x", name)
	count, ok := ExtractInt64(section, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, count)
	ratio, ok := ExtractFloat64(section, "ratio")
	assert.True(t, ok)
	assert.Equal(t, 2.0, ratio)
	ratio, ok = ExtractFloat64(section, "count")
	assert.True(t, ok)
	assert.Equal(t, 3.0, ratio)
	_, ok = ExtractBool(section, "name")
	assert.False(t, ok)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	res := CheckDirStatus(dir)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.NoError(t, res.Error)
	assert.Equal(t, "unknown", GetAbsolutePath(""))
	assert.True(t, filepath.IsAbs(GetAbsolutePath("x.toml")))
}

func TestCreateRankList(t *testing.T) {
	assert.Empty(t, CreateRankList(0))
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	ranks := CreateRankList(70000)
	assert.Equal(t, uint16(65535), ranks[65534])
	assert.Equal(t, uint16(65535), ranks[69999])
}
