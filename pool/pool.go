package pool

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/go-errors/errors"

	"github.com/minvws/primegen/internal/common"
)

// PrimePool hands out probable primes by bit length.
type PrimePool interface {
	Fetch(bits int) (*big.Int, error)
}

// PrimeFromPool returns a prime from the pool, falling back to a live search
// when the pool cannot serve the request.
func PrimeFromPool(ctx context.Context, pool PrimePool, bits int) (p *big.Int, err error) {
	if bits < common.MinBits {
		err = errors.Errorf("primeFromPool: prime size must be at least %d bits", common.MinBits)
		return
	}

	p, err = pool.Fetch(bits)
	if err != nil {
		return common.SearchPrime(ctx, rand.Reader, bits, common.DefaultRounds, 0)
	}

	return p, err
}
