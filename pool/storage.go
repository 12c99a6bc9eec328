package pool

import (
	"math/big"

	"github.com/minvws/primegen/internal/common"
)

type storagePool struct {
	storage common.PrimeStorage
}

// NewStoragePool returns a PrimePool backed by a precalculated prime storage.
func NewStoragePool(s common.PrimeStorage) PrimePool {
	return &storagePool{
		storage: s,
	}
}

func (p *storagePool) Fetch(bits int) (*big.Int, error) {
	return p.storage.Fetch(bits)
}
