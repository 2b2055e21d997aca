package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

type BackupConfig struct {
	Bucket string
	// Prefix is prepended to the object key, e.g. "wellbore-architecture/backups".
	Prefix string
	// EmulatorHost points the client at a fake-gcs-server instead of GCS.
	EmulatorHost string
}

// BackupBucket uploads database backup files to a GCS bucket.
type BackupBucket struct {
	client *storage.Client
	bucket string
	prefix string
	log    *logger.Logger
}

func NewBackupBucket(ctx context.Context, cfg BackupConfig, baseLog *logger.Logger) (*BackupBucket, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("backup bucket name is empty")
	}
	log := baseLog.With("component", "BackupBucket")

	var opts []option.ClientOption
	if host := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(ClientOptions(), option.WithScopes(storage.ScopeReadWrite))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	log.Info("Backup bucket initialized", "bucket", bucket, "prefix", cfg.Prefix, "emulator_host", cfg.EmulatorHost)
	return &BackupBucket{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		log:    log,
	}, nil
}

// ObjectKey is the key a local file is stored under.
func (b *BackupBucket) ObjectKey(localPath string) string {
	name := filepath.Base(localPath)
	if b.prefix == "" {
		return name
	}
	return path.Join(b.prefix, name)
}

// Store uploads the file at localPath. Existing objects are never
// overwritten.
func (b *BackupBucket) Store(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open backup %s: %w", localPath, err)
	}
	defer f.Close()

	key := b.ObjectKey(localPath)
	w := b.client.Bucket(b.bucket).Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = "application/vnd.sqlite3"
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", key, err)
	}
	b.log.Info("Backup uploaded", "bucket", b.bucket, "key", key)
	return nil
}

func (b *BackupBucket) Close() error {
	return b.client.Close()
}
