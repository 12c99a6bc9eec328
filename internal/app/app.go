package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minvws/primegen/internal/cli"
	"github.com/minvws/primegen/internal/common"
	"github.com/minvws/primegen/internal/version"
	"github.com/minvws/primegen/pool"
)

// RunContext parses argv, generates the requested primes and writes them to
// stdout, one entry per prime separated by blank lines. Exit codes: 0 on
// success, 2 on usage errors, 1 on runtime failures.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("primegen")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "primegen version %s\n", version.Version)
		return 0
	}

	common.Logger.SetOutput(stderr)
	if opts.Quiet {
		common.Logger.SetLevel(logrus.ErrorLevel)
	}

	fetch, cleanup, err := primeSource(parent, opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer cleanup()

	_, _ = fmt.Fprintf(outw, "BitLength: %d bits\n", opts.Bits)

	start := time.Now()
	for i := 0; i < opts.Count; i++ {
		p, err := fetch()
		if err != nil {
			_ = outw.Flush()
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		_, _ = fmt.Fprintf(outw, "\n%d: %s\n", i+1, p.String())
	}

	if !opts.Quiet {
		_, _ = fmt.Fprintf(outw, "\nElapsed: %s\n", time.Since(start))
	}
	return 0
}

// primeSource builds the per-prime fetch function for the selected pool,
// along with a cleanup to run when generation is done.
func primeSource(ctx context.Context, opts cli.Options) (func() (*big.Int, error), func(), error) {
	switch opts.Pool {
	case cli.PoolMemory:
		storage := common.NewInMemoryStorage(opts.PoolSize, opts.Bits)
		src := pool.NewStoragePool(storage)
		fetch := func() (*big.Int, error) {
			return pool.PrimeFromPool(ctx, src, opts.Bits)
		}
		return fetch, storage.Close, nil

	case cli.PoolBolt:
		storage, err := common.NewBoltStorage(opts.DBPath)
		if err != nil {
			return nil, nil, err
		}
		src := pool.NewStoragePool(storage)
		fetch := func() (*big.Int, error) {
			return pool.PrimeFromPool(ctx, src, opts.Bits)
		}
		return fetch, func() { _ = storage.Close() }, nil

	default:
		gen := &common.Generator{Rounds: opts.Rounds, Workers: opts.Threads}
		fetch := func() (*big.Int, error) {
			return gen.Prime(ctx, opts.Bits)
		}
		return fetch, func() {}, nil
	}
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
