package benchmark

import (
	"context"
	"fmt"
	"os"
	"time"

	"s3vsefs/batch"
)

// SerialUpload submits each file of b to the managed uploader under
// test-serial-tm/<parent-dir>/<file> and waits for every transfer.
func (r *Runner) SerialUpload(ctx context.Context, b batch.Batch) error {
	return r.runPass(ctx, b, strategy{
		name:   strategyUpload,
		title:  "Serial S3 TransferManager-ed Test",
		target: "S3",
		write:  r.uploadFile,
	})
}

func (r *Runner) uploadFile(ctx context.Context, file string) (string, int64, time.Duration, error) {
	key := ObjectKey(ManagedPrefix, file)

	stat, err := os.Stat(file)
	if err != nil {
		return key, 0, 0, fmt.Errorf("stat %s: %w", file, err)
	}

	start := time.Now()
	if err := r.uploader.Upload(ctx, key, file); err != nil {
		return key, 0, 0, err
	}
	return key, stat.Size(), time.Since(start), nil
}
