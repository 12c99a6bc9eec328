package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/minvws/primegen/internal/common"
	"github.com/minvws/primegen/internal/version"
)

// Prime sources
const (
	PoolDirect = "direct"
	PoolMemory = "memory"
	PoolBolt   = "bolt"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Generation parameters
	Bits   int
	Count  int
	Rounds int

	// Performance
	Threads int

	// Prime source
	Pool     string
	PoolSize int
	DBPath   string

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: concurrent probable prime generation

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Generation parameters
	fs.IntVar(&opt.Bits, "bits", 0, "prime size in bits; multiple of 8, at least 32 [*]")
	fs.IntVar(&opt.Count, "count", 1, "number of primes to generate [1]")
	fs.IntVar(&opt.Rounds, "rounds", common.DefaultRounds, "Miller-Rabin rounds; error bound 4^-rounds [10]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "concurrent search attempts per prime (0 = all CPUs) [0]")

	// Prime source
	fs.StringVar(&opt.Pool, "pool", PoolDirect, "prime source: direct | memory | bolt [direct]")
	fs.IntVar(&opt.PoolSize, "pool-size", 16, "buffer size for -pool=memory [16]")
	fs.StringVar(&opt.DBPath, "db", "primes.db", "boltDB file for -pool=bolt [primes.db]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress the elapsed-time report [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	switch {
	case opt.Bits == 0:
		return opt, errors.New("provide -bits")
	case opt.Bits < common.MinBits:
		return opt, fmt.Errorf("-bits must be at least %d", common.MinBits)
	case opt.Bits%8 != 0:
		return opt, errors.New("-bits must be a multiple of 8")
	}
	if opt.Count < 1 {
		return opt, errors.New("-count must be at least 1")
	}
	if opt.Rounds < 1 {
		return opt, errors.New("-rounds must be at least 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("-threads must be >= 0")
	}
	if opt.PoolSize < 1 {
		return opt, errors.New("-pool-size must be at least 1")
	}
	if opt.Pool != PoolDirect && opt.Pool != PoolMemory && opt.Pool != PoolBolt {
		return opt, fmt.Errorf("invalid -pool %q", opt.Pool)
	}
	return opt, nil
}
