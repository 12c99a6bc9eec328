package common

import (
	"context"
	cryptorand "crypto/rand"
	"io"
	"math/big"
	"runtime"
	"sync"
)

// acceptCandidate runs the per-candidate checks in cost order: exact bit
// length, trial division by the small prime table, and finally the
// Miller-Rabin rounds.
func acceptCandidate(rand io.Reader, p *big.Int, bits, rounds int) (bool, error) {
	if p.BitLen() != bits {
		return false, nil
	}
	if !PassesTrialDivision(p) {
		return false, nil
	}
	return ProbablyPrime(rand, p, rounds)
}

// SearchPrime races workers independent search attempts and returns the
// first candidate of exactly bits bits that passes trial division and rounds
// Miller-Rabin rounds. Whichever worker finds an acceptable value first wins;
// the remaining workers are cancelled cooperatively and none are left running
// when SearchPrime returns. A zero workers count uses all available CPUs, a
// zero rounds count uses DefaultRounds.
//
// The search itself is unbounded: termination relies on the density of
// primes at the supported bit lengths. A failed read from rand aborts the
// whole search, since it indicates a broken environment rather than a
// retryable condition.
func SearchPrime(ctx context.Context, rand io.Reader, bits, rounds, workers int) (*big.Int, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if rounds < 1 {
		rounds = DefaultRounds
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so that workers finding a result in quick succession, before
	// the cancellation propagates, never block and never overwrite each
	// other. The receive below is the single assignment.
	found := make(chan *big.Int, workers)
	errc := make(chan error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			buf := make([]byte, (bits+7)/8)
			p := new(big.Int)
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if err := readCandidate(rand, buf, p); err != nil {
					errc <- err
					return
				}

				ok, err := acceptCandidate(rand, p, bits, rounds)
				if err != nil {
					errc <- err
					return
				}
				if !ok {
					continue
				}

				// p is reused as scratch between iterations, so publish a copy.
				found <- new(big.Int).Set(p)
				return
			}
		}()
	}

	select {
	case p := <-found:
		cancel()
		wg.Wait()
		return p, nil
	case err := <-errc:
		cancel()
		wg.Wait()
		return nil, err
	case <-ctx.Done():
		wg.Wait()
		return nil, ctx.Err()
	}
}

// Generator produces sequences of probable primes. The zero value searches
// with crypto/rand, DefaultRounds rounds and one worker per CPU.
type Generator struct {
	Rand    io.Reader // entropy source; crypto/rand.Reader when nil
	Rounds  int       // Miller-Rabin rounds; DefaultRounds when 0
	Workers int       // concurrent attempts per search; all CPUs when 0
}

func (g *Generator) source() io.Reader {
	if g.Rand != nil {
		return g.Rand
	}
	return cryptorand.Reader
}

// Prime returns a single probable prime of exactly bits bits.
func (g *Generator) Prime(ctx context.Context, bits int) (*big.Int, error) {
	return SearchPrime(ctx, g.source(), bits, g.Rounds, g.Workers)
}

// Primes returns count probable primes of exactly bits bits, each obtained
// by an independent search. They are returned in generation order and are
// not guaranteed distinct. The first failed search aborts the sequence.
func (g *Generator) Primes(ctx context.Context, bits, count int) ([]*big.Int, error) {
	primes := make([]*big.Int, 0, count)
	for i := 0; i < count; i++ {
		p, err := g.Prime(ctx, bits)
		if err != nil {
			return nil, err
		}
		primes = append(primes, p)
	}
	return primes, nil
}
