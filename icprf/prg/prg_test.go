package prg

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func generators() []PRG {
	return []PRG{ChaCha20{}, SHA512{}, BLAKE2b{}, SHA3{}}
}

func TestChaCha20ZeroKeyVector(t *testing.T) {
	// RFC 8439 A.1, test vector #1: all-zero key, nonce and counter.
	want, _ := hex.DecodeString("76b8e0ada0f13d90405d6ae55386bd28bdd219b8a08ded1aa836efcc8b770dc7" +
		"da41597c5157488d7724e03fb8d84a376a43b8f41518a11cc387b669b2ee6586")
	var seed [SeedSize]byte
	got := ChaCha20{}.Generate(&seed)
	if !bytes.Equal(got[:], want) {
		t.Fatalf("keystream mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestSHA512MatchesDigest(t *testing.T) {
	var seed [SeedSize]byte
	for i := range seed {
		seed[i] = 42
	}
	want := sha512.Sum512(seed[:])
	if got := (SHA512{}).Generate(&seed); got != want {
		t.Fatalf("digest mismatch")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, g := range generators() {
		var seed [SeedSize]byte
		seed[0] = 7
		a := g.Generate(&seed)
		b := g.Generate(&seed)
		if a != b {
			t.Fatalf("%s: output not deterministic", g.Name())
		}
		if seed[0] != 7 {
			t.Fatalf("%s: Generate modified its input", g.Name())
		}
		if bytes.Equal(a[:SeedSize], a[SeedSize:]) {
			t.Fatalf("%s: halves are equal", g.Name())
		}
	}
}

func TestLeftRightHalves(t *testing.T) {
	var seed [SeedSize]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	check := func(name string, out [OutputSize]byte, l, r, sl, sr [SeedSize]byte) {
		t.Helper()
		if !bytes.Equal(l[:], out[:SeedSize]) || !bytes.Equal(sl[:], out[:SeedSize]) {
			t.Fatalf("%s: left half mismatch", name)
		}
		if !bytes.Equal(r[:], out[SeedSize:]) || !bytes.Equal(sr[:], out[SeedSize:]) {
			t.Fatalf("%s: right half mismatch", name)
		}
	}

	out := ChaCha20{}.Generate(&seed)
	l, r := seed, seed
	Left(ChaCha20{}, &l)
	Right(ChaCha20{}, &r)
	sl, sr := Split(ChaCha20{}, &seed)
	check("chacha20", out, l, r, sl, sr)

	out = SHA3{}.Generate(&seed)
	l, r = seed, seed
	Left(SHA3{}, &l)
	Right(SHA3{}, &r)
	sl, sr = Split(SHA3{}, &seed)
	check("sha3", out, l, r, sl, sr)
}

func TestGeneratorsDiffer(t *testing.T) {
	var seed [SeedSize]byte
	seen := map[[OutputSize]byte]string{}
	for _, g := range generators() {
		out := g.Generate(&seed)
		if other, ok := seen[out]; ok {
			t.Fatalf("%s and %s produce the same output", g.Name(), other)
		}
		seen[out] = g.Name()
	}
}

func BenchmarkGenerate(b *testing.B) {
	var seed [SeedSize]byte
	for _, g := range generators() {
		g := g
		b.Run(g.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = g.Generate(&seed)
			}
		})
	}
}
