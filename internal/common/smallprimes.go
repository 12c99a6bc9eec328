package common

import (
	"math/big"
)

// SmallPrimeCount is the number of entries in SmallPrimes.
const SmallPrimeCount = 200

// SmallPrimes is a list of the first 200 prime numbers (2 through 1223) that
// allows us to rapidly exclude the overwhelming majority of composite
// candidates before running the much more expensive probabilistic test.
// It is initialized once and never mutated, so concurrent reads by search
// workers are safe.
var SmallPrimes = firstPrimes(SmallPrimeCount)

// firstPrimes returns the first n primes using a Sieve of Eratosthenes,
// growing the sieve limit until enough primes are found.
func firstPrimes(n int) []*big.Int {
	limit := n * 8
	for {
		primes := primesUpTo(limit)
		if len(primes) >= n {
			return primes[:n]
		}
		limit *= 2
	}
}

func primesUpTo(limit int) []*big.Int {
	composite := make([]bool, limit+1)
	for p := 2; p*p <= limit; p++ {
		if composite[p] {
			continue
		}
		for i := p * p; i <= limit; i += p {
			composite[i] = true
		}
	}

	var primes []*big.Int
	for i := 2; i <= limit; i++ {
		if !composite[i] {
			primes = append(primes, big.NewInt(int64(i)))
		}
	}
	return primes
}
