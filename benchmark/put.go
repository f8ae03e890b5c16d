package benchmark

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"s3vsefs/batch"
	"s3vsefs/storage"
)

// SerialPut writes each file of b to the object store with a single put
// under test-serial/<parent-dir>/<file>. Only the put call is timed.
func (r *Runner) SerialPut(ctx context.Context, b batch.Batch) error {
	return r.runPass(ctx, b, strategy{
		name:   strategyPut,
		title:  "Serial S3 Test",
		target: "S3",
		write:  r.putFile,
	})
}

func (r *Runner) putFile(ctx context.Context, file string) (string, int64, time.Duration, error) {
	key := ObjectKey(SerialPrefix, file)

	f, err := os.Open(file)
	if err != nil {
		return key, 0, 0, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return key, 0, 0, fmt.Errorf("stat %s: %w", file, err)
	}
	size := stat.Size()
	metadata := map[string]string{storage.OriginalLengthKey: strconv.FormatInt(size, 10)}

	start := time.Now()
	if err := r.store.PutObject(ctx, key, f, size, metadata); err != nil {
		return key, 0, 0, err
	}
	return key, size, time.Since(start), nil
}
