// Package phonetic implements the Eudex phonetic hash.
//
// A word is reduced to a 64 bit signature. The first letter keeps an
// injective code in the top byte, every following letter adds a phonetic
// class byte unless it repeats the previous class. Words that sound alike
// differ only in a few low bits, so the weighted Hamming distance of two
// signatures approximates how different the words sound.
//
// Letters outside a-z and the Latin-1 supplement are skipped.
package phonetic

import "math/bits"

// SimilarityThreshold is the largest distance, exclusive, at which two words
// still count as similar.
const SimilarityThreshold = 10

const (
	letters = 26
	c1Start = 0xDF // ß
	c1End   = 0xFF // ÿ, exclusive
)

var phones = [letters]uint64{
	0,          // a
	0b01001000, // b
	0b00001100, // c
	0b00011000, // d
	0,          // e
	0b01000100, // f
	0b00001000, // g
	0b00000100, // h
	1,          // i
	0b00000101, // j
	0b00001001, // k
	0b10100000, // l
	0b00000010, // m
	0b00010010, // n
	0,          // o
	0b01001001, // p
	0b10101000, // q
	0b10100001, // r
	0b00010100, // s
	0b00011101, // t
	1,          // u
	0b01000101, // v
	0b00000000, // w
	0b10000100, // x
	1,          // y
	0b10010100, // z
}

var phonesC1 = [c1End - c1Start]uint64{
	phones['s'-'a'] ^ 1, // ß
	0,                   // à
	0,                   // á
	0,                   // â
	0,                   // ã
	0,                   // ä
	1,                   // å
	0,                   // æ
	phones['z'-'a'] ^ 1, // ç
	1,                   // è
	1,                   // é
	1,                   // ê
	1,                   // ë
	1,                   // ì
	1,                   // í
	1,                   // î
	1,                   // ï
	0b00010101,          // ð, a non-plosive t
	0b00010111,          // ñ, n followed by j
	0,                   // ò
	0,                   // ó
	0,                   // ô
	0,                   // õ
	1,                   // ö
	0xFF,                // ÷
	1,                   // ø
	1,                   // ù
	1,                   // ú
	1,                   // û
	1,                   // ü
	1,                   // ý
	0b00010101,          // þ, a non-plosive t
}

var injectivePhones = [letters]uint64{
	0b10000100, // a
	0b00100100, // b
	0b00000110, // c
	0b00001100, // d
	0b11011000, // e
	0b00100010, // f
	0b00000100, // g
	0b00000010, // h
	0b11111000, // i
	0b00000011, // j
	0b00000101, // k
	0b01010000, // l
	0b00000001, // m
	0b00001001, // n
	0b10010100, // o
	0b00100101, // p
	0b01010100, // q
	0b01010001, // r
	0b00001010, // s
	0b00001110, // t
	0b11100000, // u
	0b00100011, // v
	0b00000000, // w
	0b01000010, // x
	0b11100100, // y
	0b01001010, // z
}

var injectivePhonesC1 = [c1End - c1Start]uint64{
	injectivePhones['s'-'a'] ^ 1, // ß
	injectivePhones['a'-'a'] ^ 1, // à
	injectivePhones['a'-'a'] ^ 1, // á
	0b10000000,                   // â
	0b10000110,                   // ã
	0b10100110,                   // ä
	0b11000010,                   // å
	0b10100111,                   // æ
	0b01010100,                   // ç
	injectivePhones['e'-'a'] ^ 1, // è
	injectivePhones['e'-'a'] ^ 1, // é
	injectivePhones['e'-'a'] ^ 1, // ê
	0b11000110,                   // ë
	injectivePhones['i'-'a'] ^ 1, // ì
	injectivePhones['i'-'a'] ^ 1, // í
	injectivePhones['i'-'a'] ^ 1, // î
	injectivePhones['i'-'a'] ^ 1, // ï
	0b00001011,                   // ð
	0b00001011,                   // ñ
	injectivePhones['o'-'a'] ^ 1, // ò
	injectivePhones['o'-'a'] ^ 1, // ó
	injectivePhones['o'-'a'] ^ 1, // ô
	injectivePhones['o'-'a'] ^ 1, // õ
	0b11011100,                   // ö
	0xFF,                         // ÷
	0b11011101,                   // ø
	injectivePhones['u'-'a'] ^ 1, // ù
	injectivePhones['u'-'a'] ^ 1, // ú
	injectivePhones['u'-'a'] ^ 1, // û
	injectivePhones['y'-'a'] ^ 1, // ü
	injectivePhones['y'-'a'] ^ 1, // ý
	0b00001011,                   // þ
}

// lookup finds the code of r in the ASCII or Latin-1 table. Setting bit 5
// folds upper case into lower case for both ranges. ß has no upper case
// form and would fold onto ÿ.
func lookup(r rune, ascii *[letters]uint64, c1 *[c1End - c1Start]uint64) (uint64, bool) {
	c := r
	if c != c1Start {
		c |= 32
	}
	switch {
	case c >= 'a' && c <= 'z':
		return ascii[c-'a'], true
	case c >= c1Start && c < c1End:
		return c1[c-c1Start], true
	}
	return 0, false
}

// Encode returns the Eudex signature of word. The empty word encodes like "a".
func Encode(word string) uint64 {
	runes := []rune(word)
	first := 'a'
	if len(runes) > 0 {
		first = runes[0]
	}
	firstByte, _ := lookup(first, &injectivePhones, &injectivePhonesC1)

	var res uint64
	// stops after 32 appended classes, only the last 7 survive anyway
	n := uint32(1)
	for _, r := range runes[min(1, len(runes)):] {
		if n == 0 {
			break
		}
		x, ok := lookup(r, &phones, &phonesC1)
		if !ok {
			continue
		}
		if res&0xFE != x&0xFE {
			res = res<<8 | x
			n <<= 1
		}
	}
	return res | firstByte<<56
}

// Distance is the Hamming distance of two signatures where a differing bit in
// byte k, counted from the least significant byte, weighs 2^k.
func Distance(a, b uint64) int {
	diff := a ^ b
	dist := 0
	for k := range 8 {
		dist += bits.OnesCount8(uint8(diff>>(8*k))) << k
	}
	return dist
}

// DistanceWords encodes both words and returns their distance.
func DistanceWords(a, b string) int {
	return Distance(Encode(a), Encode(b))
}

// Similar reports whether a and b are phonetically close.
func Similar(a, b string) bool {
	return DistanceWords(a, b) < SimilarityThreshold
}
