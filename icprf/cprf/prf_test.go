package cprf

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/TheusHen/icprf/icprf/prg"
)

func testSecret() MasterSecret {
	var sk MasterSecret
	for i := range sk {
		sk[i] = 42
	}
	return sk
}

func mustEvaluate[P prg.PRG](t testing.TB, f *PRF[P], sk MasterSecret, index uint64) Node {
	t.Helper()
	n, err := f.Evaluate(sk, index)
	if err != nil {
		t.Fatalf("Evaluate(%d): %v", index, err)
	}
	return n
}

func mustConstrain[P prg.PRG](t testing.TB, f *PRF[P], sk MasterSecret, c uint64) *ConstrainedKey[P] {
	t.Helper()
	ck, err := f.Constrain(sk, c)
	if err != nil {
		t.Fatalf("Constrain(%d): %v", c, err)
	}
	return ck
}

func TestEvaluateDeterministic(t *testing.T) {
	f := New(prg.ChaCha20{})
	sk := testSecret()
	for _, i := range []uint64{0, 1, 2, 3, 1000, MaxIndex - 1} {
		if mustEvaluate(t, f, sk, i) != mustEvaluate(t, f, sk, i) {
			t.Fatalf("Evaluate(%d) not deterministic", i)
		}
	}
	if mustEvaluate(t, f, sk, 0) == mustEvaluate(t, f, sk, 1) {
		t.Fatalf("distinct indices produced the same secret")
	}
}

func TestEvaluateRootIsMasterSecret(t *testing.T) {
	f := New(prg.SHA512{})
	sk := testSecret()
	if got := mustEvaluate(t, f, sk, MaxIndex); got != Node(sk) {
		t.Fatalf("Evaluate(MaxIndex) = %x, want master secret", got)
	}
}

func TestEvaluateTreeShape(t *testing.T) {
	// Index 2 is the parent of leaves 0 and 1.
	f := New(prg.SHA512{})
	sk := testSecret()
	parent := mustEvaluate(t, f, sk, 2)
	left, right := prg.Split(prg.SHA512{}, (*[prg.SeedSize]byte)(&parent))
	if Node(left) != mustEvaluate(t, f, sk, 0) {
		t.Fatalf("left child of 2 is not index 0")
	}
	if Node(right) != mustEvaluate(t, f, sk, 1) {
		t.Fatalf("right child of 2 is not index 1")
	}
}

func TestEvaluateOutOfRange(t *testing.T) {
	f := New(prg.ChaCha20{})
	if _, err := f.Evaluate(testSecret(), MaxIndex+1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := f.Constrain(testSecret(), MaxIndex+1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	var ck ConstrainedKey[prg.ChaCha20]
	if err := f.Increment(&ck, MaxIndex+1, Node{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSpinePosition(t *testing.T) {
	tests := []struct {
		index uint64
		slot  int
		top   uint64
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{6, 0, 6},
		{MaxIndex, 0, MaxIndex},
		{MaxIndex - 1, 1, MaxIndex>>1 - 1},
	}
	for _, tt := range tests {
		slot, top := spinePosition(tt.index)
		if slot != tt.slot || top != tt.top {
			t.Errorf("spinePosition(%d) = (%d, %d), want (%d, %d)", tt.index, slot, top, tt.slot, tt.top)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	sk := testSecret()
	b.Run("chacha20", func(b *testing.B) { benchmarkEvaluate(b, New(prg.ChaCha20{}), sk) })
	b.Run("sha512", func(b *testing.B) { benchmarkEvaluate(b, New(prg.SHA512{}), sk) })
	b.Run("blake2b", func(b *testing.B) { benchmarkEvaluate(b, New(prg.BLAKE2b{}), sk) })
}

func benchmarkEvaluate[P prg.PRG](b *testing.B, f *PRF[P], sk MasterSecret) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = f.Evaluate(sk, uint64(i))
	}
}

func randomIndices(r *rand.Rand, n int, max uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(r.Int63n(int64(max) + 1))
	}
	return out
}
