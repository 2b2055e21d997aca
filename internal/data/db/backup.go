package db

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const backupStampLayout = "2006-01-02_15-04-05"

// BackupPath inserts a UTC timestamp before the file extension:
// "WellBoreArchitecture.db" becomes "WellBoreArchitecture-2024-05-01_10-00-00.db".
func BackupPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "-" + now.UTC().Format(backupStampLayout) + ext
}

// BackupFile copies path next to itself under BackupPath. It never
// overwrites an existing backup.
func BackupFile(path string, now time.Time) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	dstPath := BackupPath(path, now)
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dstPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("copy to %s: %w", dstPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dstPath, err)
	}
	return dstPath, nil
}
