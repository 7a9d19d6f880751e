package importer

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"refsync/core/storage"
)

const archivePrefix = "attachments"

// Archiver keeps a copy of every imported attachment file in object
// storage, independent of the catalog's own file handling. Archiving is
// best effort: a failed copy is logged by the caller and never fails
// the import.
type Archiver struct {
	store  storage.Client
	bucket string
	http   *http.Client
	log    *zap.Logger
}

// NewArchiver creates an archiver writing into the given bucket.
func NewArchiver(store storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{
		store:  store,
		bucket: bucket,
		http:   &http.Client{Timeout: 60 * time.Second},
		log:    log,
	}
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %q: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	return a.store.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
}

// Archive downloads an attachment file and stores it under
// attachments/{sourceKey}/{filename}. An object already present is left
// untouched, so re-runs do not re-download files.
func (a *Archiver) Archive(ctx context.Context, sourceKey, filename, downloadURL string) error {
	object := path.Join(archivePrefix, sourceKey, filename)
	if _, err := a.store.StatObject(ctx, a.bucket, object, minio.StatObjectOptions{}); err == nil {
		a.log.Debug("attachment already archived", zap.String("object", object))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("downloading attachment %s: %w", sourceKey, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("downloading attachment %s: %s", sourceKey, resp.Status)
	}

	_, err = a.store.PutObject(ctx, a.bucket, object, resp.Body, resp.ContentLength, minio.PutObjectOptions{
		ContentType: resp.Header.Get("Content-Type"),
	})
	if err != nil {
		return fmt.Errorf("storing attachment %s: %w", object, err)
	}
	a.log.Info("archived attachment", zap.String("object", object))
	return nil
}
