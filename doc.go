// Package corebench provides a deterministic CPU benchmark built around a
// linked-list kernel.
//
// Each benchmark context owns one caller-provided data block that is split
// between the enabled algorithms: an arena-backed linked list that is
// searched, reversed, pruned and restored and sorted by an iterative
// mergesort, a small integer matrix kernel and a state-machine scanner. The
// list sort dispatches to the other two kernels through a per-item value
// cache. Every step folds into a 16-bit CRC, so identical seeds yield
// identical checksums on every platform.
//
// # Quick Start
//
//	report, err := corebench.Run(ctx,
//	    corebench.WithSeeds(0, 0, 0x66),
//	    corebench.WithIterations(2000),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.WriteText(os.Stdout)
//
// # Validation
//
// The seeds and per-algorithm block size fold into a seed CRC. Five
// configurations have published checksums (see KnownRuns); a run with one of
// them is validated. A checksum mismatch is returned as *ChecksumError and a
// run shorter than the minimum duration counts as an error.
//
// # Archiving
//
// Reports can be archived to any blobstore.Store (local files, MinIO, S3),
// optionally LZ4 or ZSTD compressed, and summarized in a DynamoDB ledger:
//
//	name, err := corebench.Archive(ctx, store, report, compress.KindZSTD)
//	if err != nil {
//		return err
//	}
//	if err := ledger.New(ddb, "corebench-runs").Record(ctx, report.LedgerEntry(name)); err != nil {
//		return err
//	}
//
// # Key Features
//
//   - Allocation-free kernels operating on one fixed block per context
//   - Non-recursive, stable mergesort
//   - Parallel contexts with a memory budget
//   - Heap or mmap-backed data blocks
package corebench
