package common

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

type inmemoryStorage struct {
	mu     sync.Mutex // guards primes
	primes []*big.Int // LIFO buffer of prefilled primes
	size   int        // maximum size of the buffer
	bits   int        // bit length of the buffered primes

	ctx    context.Context
	cancel context.CancelFunc
}

// NewInMemoryStorage returns a PrimeStorage that keeps up to size primes of
// the given bit length in memory, refilled by a background goroutine. Close
// stops the filler.
func NewInMemoryStorage(size, bits int) *inmemoryStorage {
	ctx, cancel := context.WithCancel(context.Background())
	s := &inmemoryStorage{
		primes: make([]*big.Int, 0, size),
		size:   size,
		bits:   bits,
		ctx:    ctx,
		cancel: cancel,
	}

	go s.fill()

	return s
}

// fill generates primes until the buffer is full, then backs off for one
// second before checking again.
func (s *inmemoryStorage) fill() {
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		s.mu.Lock()
		full := len(s.primes) >= s.size
		s.mu.Unlock()
		if full {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		// A single worker here keeps the background fill from competing
		// with foreground searches for CPU.
		p, err := SearchPrime(s.ctx, rand.Reader, s.bits, DefaultRounds, 1)
		if err != nil {
			return
		}

		s.mu.Lock()
		s.primes = append(s.primes, p)
		s.mu.Unlock()
	}
}

// Fetch pops a prime from the buffer, falling back to a live search with a
// warning when the buffer has depleted. The bit length argument is ignored;
// the buffer serves the length it was created with.
func (s *inmemoryStorage) Fetch(_ int) (*big.Int, error) {
	s.mu.Lock()
	if n := len(s.primes); n > 0 {
		p := s.primes[n-1]
		s.primes = s.primes[:n-1]
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	Logger.Warnf("prime buffer depleted (size: %d), falling back to live search", s.size)
	return SearchPrime(s.ctx, rand.Reader, s.bits, DefaultRounds, 0)
}

// Close stops the background filler.
func (s *inmemoryStorage) Close() {
	s.cancel()
}
