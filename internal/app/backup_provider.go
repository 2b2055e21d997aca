package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/platform/gcp"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

var newBackupBucket = gcp.NewBackupBucket

type BackupProviderBootstrapErrorCode string

const (
	BackupProviderBootstrapErrorInvalidEmulatorHost BackupProviderBootstrapErrorCode = "invalid_emulator_host"
	BackupProviderBootstrapErrorConnectFailed       BackupProviderBootstrapErrorCode = "connect_failed"
)

type BackupProviderBootstrapError struct {
	Code         BackupProviderBootstrapErrorCode
	Bucket       string
	EmulatorHost string
	Cause        error
}

func (e *BackupProviderBootstrapError) Error() string {
	if e == nil {
		return "backup storage bootstrap failed"
	}
	return fmt.Sprintf(
		"backup storage bootstrap failed (code=%s bucket=%q emulator_host=%q): %v",
		e.Code,
		e.Bucket,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *BackupProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// closableSink is a backup sink the app must close on shutdown.
type closableSink interface {
	db.BackupSink
	Close() error
}

// resolveBackupSink returns nil when no bucket is configured; schema
// mismatch backups then stay on local disk only.
func resolveBackupSink(ctx context.Context, log *logger.Logger, cfg BackupConfig) (closableSink, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		log.Info("No backup bucket configured, schema backups stay local")
		return nil, nil
	}
	host := strings.TrimSpace(cfg.EmulatorHost)
	if host != "" {
		if err := validateEmulatorHost(host); err != nil {
			bootErr := &BackupProviderBootstrapError{
				Code:         BackupProviderBootstrapErrorInvalidEmulatorHost,
				Bucket:       bucket,
				EmulatorHost: host,
				Cause:        err,
			}
			log.Error("Backup storage provider selection failed", "bucket", bucket, "emulator_host", host, "error_code", bootErr.Code, "error", err)
			return nil, bootErr
		}
	}

	log.Info("Selecting backup storage provider", "bucket", bucket, "prefix", cfg.Prefix, "emulator_host", host)
	sink, err := newBackupBucket(ctx, gcp.BackupConfig{
		Bucket:       bucket,
		Prefix:       cfg.Prefix,
		EmulatorHost: host,
	}, log)
	if err != nil {
		bootErr := &BackupProviderBootstrapError{
			Code:         BackupProviderBootstrapErrorConnectFailed,
			Bucket:       bucket,
			EmulatorHost: host,
			Cause:        err,
		}
		log.Error("Backup storage provider bootstrap failed", "bucket", bucket, "error_code", bootErr.Code, "error", err)
		return nil, bootErr
	}
	return sink, nil
}

func validateEmulatorHost(host string) error {
	u, err := url.Parse(host)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("emulator host %q must include http:// or https://", host)
	}
	if u.Host == "" {
		return errors.New("emulator host has no host part")
	}
	return nil
}

func backupProviderBootstrapErrorCode(err error) BackupProviderBootstrapErrorCode {
	var bootstrapErr *BackupProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return BackupProviderBootstrapErrorConnectFailed
}
