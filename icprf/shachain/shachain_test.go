package shachain

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func hashFromHex(t *testing.T, s string) chainhash.Hash {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	var h chainhash.Hash
	copy(h[:], b)
	return h
}

func TestProducerVectors(t *testing.T) {
	// BOLT-3 appendix D, generation tests.
	tests := []struct {
		name  string
		seed  byte
		index uint64
		want  string
	}{
		{"0 final node", 0x00, StartIndex, "02a40c85b6f28da08dfdbe0926c53fab2de6d28c10301f8f7c4073d5e42e3148"},
		{"FF final node", 0xff, StartIndex, "7cc854b54e3e0dcdb010d7a3fee464a9687be6e8db3be6854c475621e007a5dc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seed chainhash.Hash
			copy(seed[:], bytes.Repeat([]byte{tt.seed}, chainhash.HashSize))
			got, err := NewProducer(seed).AtIndex(tt.index)
			require.NoError(t, err)
			require.Equal(t, hashFromHex(t, tt.want), got)
		})
	}
}

func TestProducerIndexZeroIsSeed(t *testing.T) {
	seed := chainhash.HashH([]byte("seed"))
	got, err := NewProducer(seed).AtIndex(0)
	require.NoError(t, err)
	require.Equal(t, seed, got)

	_, err = NewProducer(seed).AtIndex(StartIndex + 1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStoreAcceptsProducerSequence(t *testing.T) {
	p := NewProducer(chainhash.HashH([]byte("channel seed")))
	var s Store
	const n = 1000
	for i := uint64(0); i < n; i++ {
		secret, err := p.AtIndex(StartIndex - i)
		require.NoError(t, err)
		require.NoError(t, s.Provide(StartIndex-i, secret), "index %d", StartIndex-i)
	}
	for _, i := range []uint64{0, 1, 2, 500, n - 1} {
		want, _ := p.AtIndex(StartIndex - i)
		got, err := s.At(StartIndex - i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := s.At(StartIndex - n)
	require.ErrorIs(t, err, ErrUnknownIndex)
}

func TestStoreRejectsInconsistentSecret(t *testing.T) {
	p := NewProducer(chainhash.HashH([]byte("channel seed")))
	var s Store

	// The first secret has nothing to be checked against.
	require.NoError(t, s.Provide(StartIndex, chainhash.HashH([]byte("bogus"))))

	next, err := p.AtIndex(StartIndex - 1)
	require.NoError(t, err)
	require.ErrorIs(t, s.Provide(StartIndex-1, next), ErrInconsistentSecret)
}
