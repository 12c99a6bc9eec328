// Package primegen generates probable primes of an exact bit length by
// racing concurrent search attempts and accepting the first candidate that
// survives trial division and the Miller-Rabin test.
package primegen

import (
	"context"
	"io"
	"math/big"

	"github.com/minvws/primegen/internal/common"
)

// DefaultRounds is the default number of Miller-Rabin rounds; the
// probability of accepting a composite is at most 4^-rounds.
const DefaultRounds = common.DefaultRounds

// MinBits is the smallest supported prime size in bits.
const MinBits = common.MinBits

// Prime returns a probable prime of exactly bits bits (a multiple of 8,
// at least MinBits), drawing candidates and witnesses from rand.
func Prime(ctx context.Context, rand io.Reader, bits int) (p *big.Int, err error) {
	return common.SearchPrime(ctx, rand, bits, common.DefaultRounds, 0)
}

// Primes returns count probable primes of exactly bits bits, each found by
// an independent search, in generation order. They are not guaranteed
// distinct.
func Primes(ctx context.Context, rand io.Reader, bits, count int) ([]*big.Int, error) {
	g := common.Generator{Rand: rand}
	return g.Primes(ctx, bits, count)
}
