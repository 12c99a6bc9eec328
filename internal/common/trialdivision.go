package common

import (
	"math/big"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// PassesTrialDivision reports whether v survives trial division by the small
// prime table. The values 2 and 3 are accepted outright; every other value
// divisible by a table prime is rejected, including the table primes
// themselves. Candidates at the supported bit lengths are far larger than
// any table entry, so the latter never rejects an actual prime in practice.
func PassesTrialDivision(v *big.Int) bool {
	if v.Cmp(two) == 0 || v.Cmp(three) == 0 {
		return true
	}

	mod := new(big.Int)
	for _, p := range SmallPrimes {
		if mod.Mod(v, p).Sign() == 0 {
			return false
		}
	}
	return true
}
