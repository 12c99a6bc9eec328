package common

import (
	"io"
	"math/big"
)

// MinBits is the smallest supported prime size. Below this the prime density
// assumptions of the search do not hold and callers get no bit-length
// guarantee.
const MinBits = 32

// RandomCandidate returns a uniformly distributed integer in
// [0, 2^bits - 1], read as bits/8 bytes from rand and interpreted as an
// unsigned magnitude. The top bit is not forced, so the result may be
// shorter than bits; the search loop filters on exact bit length.
func RandomCandidate(rand io.Reader, bits int) (*big.Int, error) {
	p := new(big.Int)
	if err := readCandidate(rand, make([]byte, (bits+7)/8), p); err != nil {
		return nil, err
	}
	return p, nil
}

// readCandidate fills p from rand using the caller's scratch buffer, so the
// per-iteration search loop does not allocate.
func readCandidate(rand io.Reader, buf []byte, p *big.Int) error {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return err
	}
	p.SetBytes(buf)
	return nil
}
