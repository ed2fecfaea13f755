package layout

import "unicode/utf16"

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// Hash is 32-bit FNV-1a over the UTF-16 code units of s.
func Hash(s string) uint32 {
	h := fnvOffset32
	for _, u := range utf16.Encode([]rune(s)) {
		h ^= uint32(u)
		h *= fnvPrime32
	}
	return h
}

// HashPair seeds the curve of the link a→b.
func HashPair(a, b string) uint32 {
	return Hash(a + "→" + b)
}

// Rand01 maps seed to [0, 1) with one xorshift32 step.
func Rand01(seed uint32) float64 {
	x := seed
	if x == 0 {
		x = 1
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return float64(x%10000) / 10000
}

// SeededJitter returns a reproducible offset in [-amp, amp).
func SeededJitter(seed uint32, amp float64) float64 {
	return (Rand01(seed)*2 - 1) * amp
}
