package phonetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		word string
		want uint64
	}{
		{"", 0x8400000000000000},
		{"a", 0x8400000000000000},
		{"kitten", 0x05000000001d0012},
		{"Kitten", 0x05000000001d0012},
		{"mitten", 0x01000000001d0012},
		{"bitten", 0x24000000001d0012},
		{"kittn", 0x0500000000001d12},
		{"guy", 0x0400000000000000},
		{"guide", 0x0400000000001800},
		{"1abc", 0x480c},
		{"abc1", 0x840000000000480c},
		{"arger", 0x84000000a10800a1},
		{"ärger", 0xa6000000a10800a1},
		{"straße", 0x0a00001da1001500},
	}
	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, Encode(tc.word), "%#x", Encode(tc.word))
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"jumpy", "jumpie", 0},
		{"guy", "guide", 4},
		{"kittn", "kitten", 24},
		{"kittn", "mitten", 152},
		{"kittn", "bitten", 280},
		{"müller", "muller", 0},
		{"MÜLLER", "müller", 0},
		{"straße", "strase", 2},
		{"ärger", "arger", 256},
	}
	for _, tc := range tests {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, DistanceWords(tc.a, tc.b))
			assert.Equal(t, tc.want, DistanceWords(tc.b, tc.a))
		})
	}
}

func TestDistanceLaneWeights(t *testing.T) {
	for k := range 8 {
		assert.Equal(t, 1<<k, Distance(0, 1<<(8*k)))
	}
	assert.Equal(t, 255*8, Distance(0, ^uint64(0)))
}

func TestSimilar(t *testing.T) {
	for _, w := range []string{"", "a", "kitten", "straße", "zzz"} {
		assert.True(t, Similar(w, w), w)
		assert.Zero(t, DistanceWords(w, w), w)
	}
	assert.True(t, Similar("jumpy", "jumpie"))
	assert.True(t, Similar("guy", "guide"))
	assert.False(t, Similar("kittn", "mitten"))
}
