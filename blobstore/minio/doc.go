// Package minio archives benchmark reports in MinIO or another
// S3-compatible server (Ceph, Garage, SeaweedFS) through minio-go.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewEnvMinio(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "benchmarks", "corebench/")
//	name, err := corebench.Archive(ctx, store, report, compress.KindZSTD)
//
// Objects are written with a content type derived from the blob name, so
// plain .json reports open directly in a browser. Missing objects map to
// blobstore.ErrNotFound.
package minio
