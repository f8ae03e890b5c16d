package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"s3vsefs/batch"
)

// SerialFS copies each file of b to <mount>/test-serial/<parent-dir>/<file>.
// Reading the source and writing the copy are both timed.
func (r *Runner) SerialFS(ctx context.Context, b batch.Batch) error {
	return r.runPass(ctx, b, strategy{
		name:   strategyFS,
		title:  "Serial EFS Test",
		target: "EFS",
		write:  r.copyFile,
	})
}

func (r *Runner) copyFile(_ context.Context, file string) (string, int64, time.Duration, error) {
	dir := filepath.Join(r.params.MountPoint, SerialPrefix, parentName(file))
	if err := ensureDir(dir); err != nil {
		return dir, 0, 0, err
	}
	dest := filepath.Join(dir, filepath.Base(file))

	start := time.Now()
	text, err := os.ReadFile(file)
	if err != nil {
		return dest, 0, 0, fmt.Errorf("read %s: %w", file, err)
	}
	if err := os.WriteFile(dest, text, 0644); err != nil {
		return dest, 0, 0, fmt.Errorf("write %s: %w", dest, err)
	}
	return dest, int64(len(text)), time.Since(start), nil
}

// ensureDir creates dir and its parents only when it does not exist yet
func ensureDir(dir string) error {
	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
