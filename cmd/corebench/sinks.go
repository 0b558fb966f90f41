package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/corebench/blobstore"
	miniostore "github.com/hupe1980/corebench/blobstore/minio"
	s3store "github.com/hupe1980/corebench/blobstore/s3"
	"github.com/hupe1980/corebench/ledger"
)

// openStore resolves an archive target. Plain paths and file:// URLs are
// local directories, mem:// is an in-process store.
func openStore(ctx context.Context, target string) (blobstore.Store, error) {
	if target == "" {
		return nil, nil
	}
	if !strings.Contains(target, "://") {
		return blobstore.NewLocalStore(target), nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	switch u.Scheme {
	case "file":
		return blobstore.NewLocalStore(u.Path), nil
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("archive: aws config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(cfg), u.Host, rootPrefix(u.Path)), nil
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("archive: %q has no bucket", target)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: u.Query().Get("secure") == "true",
		})
		if err != nil {
			return nil, fmt.Errorf("archive: minio: %w", err)
		}
		return miniostore.NewStore(client, bucket, rootPrefix(prefix)), nil
	default:
		return nil, fmt.Errorf("archive: unsupported scheme %q", u.Scheme)
	}
}

func rootPrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func openLedger(ctx context.Context, table string) (*ledger.Ledger, error) {
	if table == "" {
		return nil, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: aws config: %w", err)
	}
	return ledger.New(dynamodb.NewFromConfig(cfg), table), nil
}
