package common

import (
	"context"
	"io/ioutil"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStorageRoundtrip(t *testing.T) {
	storage, err := NewBoltStorage(filepath.Join(t.TempDir(), "primes.db"))
	require.NoError(t, err)
	defer func() { _ = storage.Close() }()

	p := big.NewInt(4294967291) // 2^32 - 5
	require.NoError(t, storage.Put(p, 32))

	got, err := storage.Fetch(32)
	require.NoError(t, err)
	assert.Zero(t, p.Cmp(got))

	// Reads are destructive: the same prime is never handed out twice.
	_, err = storage.Fetch(32)
	assert.Error(t, err)

	// Other bit lengths are separate buckets.
	_, err = storage.Fetch(64)
	assert.Error(t, err)
}

func TestBoltStorageDeduplicates(t *testing.T) {
	storage, err := NewBoltStorage(filepath.Join(t.TempDir(), "primes.db"))
	require.NoError(t, err)
	defer func() { _ = storage.Close() }()

	p := big.NewInt(4294967291)
	require.NoError(t, storage.Put(p, 32))
	require.NoError(t, storage.Put(p, 32))

	_, err = storage.Fetch(32)
	require.NoError(t, err)
	_, err = storage.Fetch(32)
	assert.Error(t, err, "duplicate Put stored a second entry")
}

func TestPrecalcPrimeFallback(t *testing.T) {
	storage, err := NewBoltStorage(filepath.Join(t.TempDir(), "primes.db"))
	require.NoError(t, err)
	defer func() { _ = storage.Close() }()

	// Empty storage falls back to a live search.
	p, err := PrecalcPrime(context.Background(), storage, 32)
	require.NoError(t, err)
	assert.Equal(t, 32, p.BitLen())
	assert.True(t, p.ProbablyPrime(64))
}

func TestPrecalcPrimeRejectsTinySizes(t *testing.T) {
	_, err := PrecalcPrime(context.Background(), NewRandomStorage(), 8)
	assert.Error(t, err)
}

func TestRandomStorage(t *testing.T) {
	p, err := NewRandomStorage().Fetch(32)
	require.NoError(t, err)
	assert.Equal(t, 32, p.BitLen())
	assert.True(t, p.ProbablyPrime(64))
}

func TestInMemoryStorage(t *testing.T) {
	Logger.SetOutput(ioutil.Discard)

	s := NewInMemoryStorage(2, 32)
	defer s.Close()

	// Valid whether it comes from the buffer or the depletion fallback.
	for i := 0; i < 3; i++ {
		p, err := s.Fetch(32)
		require.NoError(t, err)
		assert.Equal(t, 32, p.BitLen())
		assert.True(t, p.ProbablyPrime(64))
	}
}
