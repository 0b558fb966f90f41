package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/corebench"
	"github.com/hupe1980/corebench/codec"
	"github.com/hupe1980/corebench/compress"
)

const usage = `usage: corebench [flags] [seed1 seed2 seed3 [iterations [execs [_ [size]]]]]

Seeds, iterations, execs and size accept decimal or 0x hex values with an
optional K or M suffix. 0 0 0 selects the performance run, 1 0 0 the
validation run. Zero iterations calibrates the count. Zero execs enables
every algorithm (1 list, 2 matrix, 4 state).

flags:
`

type config struct {
	seeds       corebench.Seeds
	iterations  uint32
	algorithms  corebench.Algorithms
	size        int
	contexts    int
	memory      corebench.MemoryMethod
	memoryLimit int64
	minDuration time.Duration
	archive     string
	compression compress.Kind
	ledger      string
	history     int
	format      string
	logLevel    slog.Level
	logJSON     bool
}

func parseConfig(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("corebench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	var memory, compression, logLevel string
	fs.IntVar(&cfg.size, "size", corebench.DefaultTotalDataSize, "data block size per context in bytes")
	fs.IntVar(&cfg.contexts, "contexts", 1, "number of parallel contexts")
	fs.StringVar(&memory, "mem", "heap", "memory method: heap or mmap")
	fs.Int64Var(&cfg.memoryLimit, "mem-limit", 0, "total bytes for all context blocks (0 = unlimited)")
	fs.DurationVar(&cfg.minDuration, "min-duration", 10*time.Second, "shortest valid run, also the calibration target")
	fs.StringVar(&cfg.archive, "archive", "", "archive the report to a directory, s3://bucket/prefix or minio://host/bucket/prefix")
	fs.StringVar(&compression, "compress", "zstd", "archive compression: none, lz4 or zstd")
	fs.StringVar(&cfg.ledger, "ledger", "", "record the run in this DynamoDB table")
	fs.IntVar(&cfg.history, "history", 0, "print this many earlier ledger entries for the seeds")
	fs.StringVar(&cfg.format, "format", "text", "report format: text, "+strings.Join(codec.Names(), " or "))
	fs.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "emit JSON logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	if cfg.memory, err = corebench.ParseMemoryMethod(memory); err != nil {
		return nil, err
	}
	if cfg.compression, err = compress.ParseKind(compression); err != nil {
		return nil, err
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("%w: log level %q", corebench.ErrInvalidConfig, logLevel)
	}
	if _, ok := codec.ByName(cfg.format); !ok && cfg.format != "text" {
		return nil, fmt.Errorf("%w: format %q", corebench.ErrInvalidConfig, cfg.format)
	}
	if cfg.history > 0 && cfg.ledger == "" {
		return nil, fmt.Errorf("%w: -history needs -ledger", corebench.ErrInvalidConfig)
	}

	if err := cfg.parsePositional(fs.Args()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parsePositional reads seed1 seed2 seed3 iterations execs, an unused slot
// and a size override. Seeds truncate to 16 bits.
func (c *config) parsePositional(args []string) error {
	if len(args) > 7 {
		return errors.New("too many arguments")
	}

	vals := make([]int32, 7)
	for i, a := range args {
		v, err := corebench.ParseSeed(a)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		vals[i] = v
	}

	c.seeds = corebench.Seeds{
		Seed1: int16(vals[0]), //nolint:gosec // truncation intended
		Seed2: int16(vals[1]), //nolint:gosec // truncation intended
		Seed3: int16(vals[2]), //nolint:gosec // truncation intended
	}
	c.iterations = uint32(vals[3])                                                 //nolint:gosec // wraps like the seed
	c.algorithms = corebench.Algorithms(uint32(vals[4])) & corebench.AllAlgorithms //nolint:gosec // bitmask
	if vals[6] != 0 {
		c.size = int(vals[6])
	}
	return nil
}

func (c *config) options(logger *corebench.Logger) []corebench.Option {
	return []corebench.Option{
		corebench.WithSeeds(c.seeds.Seed1, c.seeds.Seed2, c.seeds.Seed3),
		corebench.WithIterations(c.iterations),
		corebench.WithAlgorithms(c.algorithms),
		corebench.WithTotalDataSize(c.size),
		corebench.WithContexts(c.contexts),
		corebench.WithMemoryMethod(c.memory),
		corebench.WithMemoryLimit(c.memoryLimit),
		corebench.WithMinDuration(c.minDuration),
		corebench.WithLogger(logger),
	}
}

func (c *config) logger(w io.Writer) *corebench.Logger {
	opts := &slog.HandlerOptions{Level: c.logLevel}
	if c.logJSON {
		return corebench.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return corebench.NewLogger(slog.NewTextHandler(w, opts))
}
