package common

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEntropy = errors.New("entropy source closed")

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errEntropy }

func TestMillerRabinKnownPrimes(t *testing.T) {
	primes := []string{
		"2", "3", "5", "7", "13", "61", "1229",
		"104729",              // the 10000th prime
		"4294967291",          // 2^32 - 5
		"2305843009213693951", // 2^61 - 1
		"618970019642690137449562111", // 2^89 - 1
	}
	for _, s := range primes {
		n, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		verdict, err := ProbablyPrime(rand.Reader, n, DefaultRounds)
		require.NoError(t, err)
		assert.True(t, verdict, "%s reported composite", s)
	}
}

func TestMillerRabinKnownComposites(t *testing.T) {
	composites := []string{
		"0", "1", "4", "9", "15", "341", "561", "1224",
		"1512899",             // 1229 * 1231, both beyond the small prime table
		"4294967295",          // 2^32 - 1
		"618970019642690137449562113", // 2^89 + 1, divisible by 3
	}
	for _, s := range composites {
		n, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		verdict, err := ProbablyPrime(rand.Reader, n, DefaultRounds)
		require.NoError(t, err)
		assert.False(t, verdict, "%s reported prime", s)
	}
}

// 341 = 11 * 31 passes the Fermat test to base 2; the squaring step must
// still expose it as composite in essentially every independent trial.
func TestMillerRabinFermatPseudoprime(t *testing.T) {
	n := big.NewInt(341)
	for i := 0; i < 1000; i++ {
		verdict, err := ProbablyPrime(rand.Reader, n, DefaultRounds)
		require.NoError(t, err)
		require.False(t, verdict, "341 accepted on trial %d", i)
	}
}

func TestMillerRabinEntropyFailure(t *testing.T) {
	_, err := ProbablyPrime(failReader{}, big.NewInt(104729), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errEntropy))

	// Verdicts that need no witness are still served.
	verdict, err := ProbablyPrime(failReader{}, big.NewInt(1224), 1)
	require.NoError(t, err)
	assert.False(t, verdict)
}

func TestRandomWitnessRange(t *testing.T) {
	n := big.NewInt(104729)
	lo := big.NewInt(2)
	hi := new(big.Int).Sub(n, two)
	for i := 0; i < 1000; i++ {
		a, err := randomWitness(rand.Reader, n)
		require.NoError(t, err)
		assert.True(t, a.Cmp(lo) >= 0 && a.Cmp(hi) <= 0, "witness %s outside [2, n-2]", a)
	}
}
