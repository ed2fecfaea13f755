package layout

import "testing"

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"a", 0xe40c292c},
	}
	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if HashPair("a", "b") != Hash("a→b") {
		t.Error("HashPair must hash the arrow-joined ids")
	}
	if HashPair("a", "b") == HashPair("b", "a") {
		t.Error("HashPair should depend on direction")
	}
}

func TestHashUTF16(t *testing.T) {
	// U+1F333 is two UTF-16 code units; hashing must see both.
	h := fnvOffset32
	for _, u := range []uint32{0xD83C, 0xDF33} {
		h ^= u
		h *= fnvPrime32
	}
	if got := Hash("🌳"); got != h {
		t.Errorf("Hash(🌳) = %d, want %d", got, h)
	}
}

func TestRand01(t *testing.T) {
	if got := Rand01(1); got != 0.0369 {
		t.Errorf("Rand01(1) = %v, want 0.0369", got)
	}
	if Rand01(0) != Rand01(1) {
		t.Error("seed 0 must behave like seed 1")
	}
	for seed := uint32(0); seed < 5000; seed += 7 {
		if v := Rand01(seed); v < 0 || v >= 1 {
			t.Fatalf("Rand01(%d) = %v, out of [0,1)", seed, v)
		}
	}
}

func TestSeededJitter(t *testing.T) {
	for seed := uint32(1); seed < 2000; seed += 13 {
		a := SeededJitter(seed, 40)
		if a < -40 || a >= 40 {
			t.Fatalf("SeededJitter(%d, 40) = %v, out of range", seed, a)
		}
		if b := SeededJitter(seed, 40); a != b {
			t.Fatalf("SeededJitter(%d) not stable: %v vs %v", seed, a, b)
		}
	}
	if got := SeededJitter(99, 0); got != 0 {
		t.Errorf("zero amplitude = %v, want 0", got)
	}
}
