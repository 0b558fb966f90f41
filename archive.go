package corebench

import (
	"context"
	"fmt"
	"path"

	"github.com/hupe1980/corebench/blobstore"
	"github.com/hupe1980/corebench/codec"
	"github.com/hupe1980/corebench/compress"
	"github.com/hupe1980/corebench/ledger"
)

// ArchivePrefix is the blob name prefix of archived reports.
const ArchivePrefix = "reports/"

// ArchiveName returns the blob name of r compressed with kind:
// reports/<seedcrc>/<run id>.json[.lz4|.zst].
func ArchiveName(r *Report, kind compress.Kind) string {
	return path.Join(ArchivePrefix, ledger.FormatCRC(r.SeedCRC), r.RunID+codec.Default.Ext()+kind.Ext())
}

// Archive encodes r, compresses it with kind and stores it. It returns the
// blob name.
func Archive(ctx context.Context, store blobstore.Store, r *Report, kind compress.Kind) (string, error) {
	data, err := codec.Default.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("archive: encode: %w", err)
	}
	framed, err := compress.Encode(data, kind)
	if err != nil {
		return "", fmt.Errorf("archive: compress: %w", err)
	}

	name := ArchiveName(r, kind)
	if err := store.Put(ctx, name, framed); err != nil {
		return "", fmt.Errorf("archive: put %s: %w", name, err)
	}
	return name, nil
}

// LoadReport reads an archived report. The compression kind is taken from
// the name's extension.
func LoadReport(ctx context.Context, store blobstore.Store, name string) (*Report, error) {
	framed, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("archive: get %s: %w", name, err)
	}
	data, err := compress.Decode(framed, compress.KindFromName(name))
	if err != nil {
		return nil, fmt.Errorf("archive: decompress %s: %w", name, err)
	}

	var r Report
	if err := codec.Default.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", name, err)
	}
	return &r, nil
}

// ListReports returns the archived report names for seedCRC, oldest first.
func ListReports(ctx context.Context, store blobstore.Store, seedCRC uint16) ([]string, error) {
	return store.List(ctx, ArchivePrefix+ledger.FormatCRC(seedCRC)+"/")
}
