package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// CaseMask remembers which rune positions of a word were upper case.
type CaseMask []int

// CaptureCase returns the lower-cased word and the positions of its upper
// case runes.
func CaptureCase(s string) (string, CaseMask) {
	var mask CaseMask
	i := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			mask = append(mask, i)
		}
		i++
	}
	return strings.ToLower(s), mask
}

// Apply upper-cases the runes of word at the remembered positions. Positions
// past the end of word are ignored.
func (m CaseMask) Apply(word string) string {
	if len(m) == 0 {
		return word
	}
	runes := []rune(word)
	for _, pos := range m {
		if pos < len(runes) {
			runes[pos] = unicode.ToUpper(runes[pos])
		}
	}
	return string(runes)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
