package benchmark

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"s3vsefs/batch"
	"s3vsefs/logging"
	"s3vsefs/metrics"
	"s3vsefs/progress"
	"s3vsefs/report"
	"s3vsefs/storage"
)

// Name identifies the benchmark in the run-level log lines
const Name = "S3VSEFS"

// Runner writes every batch with the three strategies in sequence:
// direct put, managed upload and local filesystem write.
type Runner struct {
	params   BenchmarkParams
	store    storage.ObjectStore
	uploader storage.Uploader
	logger   logging.Logger
	metrics  *metrics.Collector
	progress progress.Factory
	limiter  *rate.Limiter
}

// Option configures optional Runner collaborators
type Option func(*Runner)

// WithMetrics records every write in c
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithProgress draws a tracker per strategy pass
func WithProgress(f progress.Factory) Option {
	return func(r *Runner) { r.progress = f }
}

// NewRunner creates a runner writing through store and uploader
func NewRunner(params BenchmarkParams, store storage.ObjectStore, uploader storage.Uploader, logger logging.Logger, opts ...Option) *Runner {
	r := &Runner{
		params:   params,
		store:    store,
		uploader: uploader,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	if params.RateLimit > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(params.RateLimit), 1)
		logger.Info("Rate limiter: %d writes/s", params.RateLimit)
	}
	return r
}

// Run benchmarks each batch in order and returns the number of failed batches.
// A failing batch is logged and skipped; it never stops the remaining ones.
func (r *Runner) Run(ctx context.Context, batches []batch.Batch) int {
	r.logger.Info("Starting %s tests", Name)

	failed := 0
	for _, b := range batches {
		if err := r.RunBatch(ctx, b); err != nil {
			failed++
			if r.metrics != nil {
				r.metrics.BatchFailed(b.Name)
			}
			r.logger.Error("Failed data [%s, <collection>] with error message: %v", b.Name, err)
		}
	}

	r.logger.Info("Ended %s tests", Name)
	return failed
}

// RunBatch runs the three strategies over b, stopping at the first error
func (r *Runner) RunBatch(ctx context.Context, b batch.Batch) error {
	if err := r.SerialPut(ctx, b); err != nil {
		return err
	}
	if err := r.SerialUpload(ctx, b); err != nil {
		return err
	}
	return r.SerialFS(ctx, b)
}

// writeFunc writes one file and reports its destination, its size and the
// duration of the timed section.
type writeFunc func(ctx context.Context, file string) (dest string, size int64, elapsed time.Duration, err error)

type strategy struct {
	name   string // metrics label
	title  string
	target string
	write  writeFunc
}

func (r *Runner) runPass(ctx context.Context, b batch.Batch, s strategy) error {
	r.logger.Info("Running %s: %s", s.title, b.Name)

	tracker := r.tracker(len(b.Files), s.title)
	defer tracker.Finish()

	var written int64
	start := time.Now()
	for _, file := range b.Files {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("%s: rate limiter: %w", s.title, err)
			}
		}

		dest, size, elapsed, err := s.write(ctx, file)
		if err != nil {
			return fmt.Errorf("%s: %w", s.title, err)
		}
		r.logger.Debug("Writing %s to %s took %dms", dest, s.target, elapsed.Milliseconds())

		if r.metrics != nil {
			r.metrics.ObserveWrite(s.name, b.Name, elapsed, size)
		}
		tracker.Increment()
		written += size
	}
	total := time.Since(start)

	r.logger.Info("%s %s took %dms", s.title, b.Name, total.Milliseconds())
	r.logger.Info("%s", report.Summary(s.title, b.Name, len(b.Files), written, total))
	return nil
}

func (r *Runner) tracker(total int, caption string) progress.Tracker {
	if r.progress == nil {
		return progress.Nop{}
	}
	return r.progress(total, caption)
}
