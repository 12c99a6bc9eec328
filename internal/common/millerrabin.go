package common

import (
	"io"
	"math/big"
)

// DefaultRounds is the default number of Miller-Rabin rounds. The probability
// of accepting a composite is at most 4^-rounds.
const DefaultRounds = 10

// ProbablyPrime applies rounds iterations of the Miller-Rabin test to n,
// drawing each witness from rand. It returns false only for numbers that are
// certainly composite; a true verdict is wrong with probability at most
// 4^-rounds. A failure to read witness bytes from rand is returned as an
// error, never as a verdict.
func ProbablyPrime(rand io.Reader, n *big.Int, rounds int) (bool, error) {
	if n.Cmp(two) < 0 {
		return false, nil
	}
	if n.Cmp(three) <= 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	// Decompose n-1 = 2^r * d with d odd.
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	x := new(big.Int)
	for i := 0; i < rounds; i++ {
		a, err := randomWitness(rand, n)
		if err != nil {
			return false, err
		}

		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}

		witness := true
		for j := 0; j < r-1; j++ {
			x.Exp(x, two, n)
			if x.Cmp(nMinus1) == 0 {
				witness = false
				break
			}
			if x.Cmp(one) == 0 {
				return false, nil
			}
		}
		if witness {
			return false, nil
		}
	}

	return true, nil
}

// randomWitness draws a uniform integer in [2, n-2] from rand. Raw bytes do
// not fall in that range naturally, so candidates outside it are resampled.
func randomWitness(rand io.Reader, n *big.Int) (*big.Int, error) {
	// The range [2, n-2] holds n-3 values; draw uniformly below the span
	// and shift up by two.
	span := new(big.Int).Sub(n, three)

	bits := uint(span.BitLen())
	b := bits % 8
	if b == 0 {
		b = 8
	}

	bytes := make([]byte, (bits+7)/8)
	a := new(big.Int)
	for {
		if _, err := io.ReadFull(rand, bytes); err != nil {
			return nil, err
		}

		// Clear bits in the first byte so the value has at most as many
		// bits as the span, keeping the rejection rate below one half.
		bytes[0] &= uint8(int(1<<b) - 1)

		a.SetBytes(bytes)
		if a.Cmp(span) < 0 {
			return a.Add(a, two), nil
		}
	}
}
