package pool

import (
	"context"
	"encoding/json"
	"io"
	"math/big"

	"github.com/minvws/primegen/internal/common"
)

type randomPool struct {
	reader io.Reader
}

func (p *randomPool) StatsJSON() ([]byte, error) {
	type Stats struct {
		Name string
	}
	return json.Marshal(Stats{
		Name: "random",
	})
}

// NewRandomPool returns a PrimePool that serves every fetch with a fresh
// concurrent search against the given entropy source.
func NewRandomPool(r io.Reader) PrimePool {
	return &randomPool{
		reader: r,
	}
}

func (p *randomPool) Fetch(bits int) (*big.Int, error) {
	return common.SearchPrime(context.Background(), p.reader, bits, common.DefaultRounds, 0)
}
