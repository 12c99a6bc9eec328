package common

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/go-errors/errors"
)

// PrimeStorage hands out precalculated primes by bit length.
type PrimeStorage interface {
	Fetch(bits int) (*big.Int, error)
}

// PrecalcPrime returns a precalculated prime from storage, falling back to a
// live search when the storage cannot serve the request.
func PrecalcPrime(ctx context.Context, storage PrimeStorage, bits int) (*big.Int, error) {
	if bits < MinBits {
		return nil, errors.Errorf("precalcPrime: prime size must be at least %d bits", MinBits)
	}

	p, err := storage.Fetch(bits)
	if err != nil {
		return SearchPrime(ctx, rand.Reader, bits, DefaultRounds, 0)
	}

	return p, nil
}

type randomStorage struct {
}

// NewRandomStorage returns a PrimeStorage that serves every fetch with a
// fresh live search.
func NewRandomStorage() PrimeStorage {
	return &randomStorage{}
}

func (b *randomStorage) Fetch(bits int) (*big.Int, error) {
	return SearchPrime(context.Background(), rand.Reader, bits, DefaultRounds, 0)
}
