// Command corebench runs the deterministic list, matrix and state benchmark
// and prints a CoreMark style report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hupe1980/corebench"
	"github.com/hupe1980/corebench/codec"
	"github.com/hupe1980/corebench/ledger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "corebench: %v\n", err)
		return 2
	}
	logger := cfg.logger(stderr)

	// Sinks are resolved first so a bad target fails before a long run.
	store, err := openStore(ctx, cfg.archive)
	if err != nil {
		fmt.Fprintf(stderr, "corebench: %v\n", err)
		return 2
	}
	results, err := openLedger(ctx, cfg.ledger)
	if err != nil {
		fmt.Fprintf(stderr, "corebench: %v\n", err)
		return 2
	}

	report, runErr := corebench.Run(ctx, cfg.options(logger)...)
	if report == nil {
		fmt.Fprintf(stderr, "corebench: %v\n", runErr)
		return 1
	}

	if err := writeReport(stdout, report, cfg.format); err != nil {
		fmt.Fprintf(stderr, "corebench: %v\n", err)
		return 1
	}

	code := 0
	if runErr != nil || report.Status == corebench.StatusErrors {
		code = 1
	}

	var archived string
	if store != nil {
		archived, err = corebench.Archive(ctx, store, report, cfg.compression)
		logger.LogArchive(ctx, archived, cfg.compression, err)
		if err != nil {
			code = 1
		}
	}

	if results != nil {
		if err := results.Record(ctx, report.LedgerEntry(archived)); err != nil {
			logger.ErrorContext(ctx, "ledger record failed", "table", results.Table(), "error", err)
			code = 1
		}
		if cfg.history > 0 {
			if err := printHistory(ctx, stdout, results, report.SeedCRC, cfg.history); err != nil {
				fmt.Fprintf(stderr, "corebench: %v\n", err)
				code = 1
			}
		}
	}

	return code
}

func writeReport(w io.Writer, r *corebench.Report, format string) error {
	c, ok := codec.ByName(format)
	if !ok {
		return r.WriteText(w)
	}
	data, err := c.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func printHistory(ctx context.Context, w io.Writer, l *ledger.Ledger, seedCRC uint16, limit int) error {
	entries, err := l.Query(ctx, seedCRC, limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "History for seedcrc %s:\n", ledger.FormatCRC(seedCRC))
	for _, e := range entries {
		status := "invalid"
		if e.Valid {
			status = "valid"
		}
		fmt.Fprintf(w, "  %s  %12.3f it/s  %dx%d  crcfinal %s  %s\n",
			e.RunID, e.Score, e.Contexts, e.Iterations, ledger.FormatCRC(e.FinalCRC), status)
	}
	return nil
}
