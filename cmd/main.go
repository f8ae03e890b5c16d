package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"s3vsefs/batch"
	"s3vsefs/benchmark"
	"s3vsefs/config"
	"s3vsefs/logging"
	"s3vsefs/metrics"
	"s3vsefs/mountpoint"
	"s3vsefs/progress"
	"s3vsefs/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Default()

	// Define command-line flags
	fs := flag.NewFlagSet("s3vsefs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "Path to a YAML file overriding the defaults")
	fs.StringVar(&cfg.Provider, "provider", cfg.Provider, "Remote object store: s3 or oci")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "S3 region")
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "S3 endpoint URL")
	fs.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "Destination bucket")
	fs.BoolVar(&cfg.UsePathStyle, "path-style", cfg.UsePathStyle, "Use path-style S3 addressing")
	fs.StringVar(&cfg.MountPoint, "mount", cfg.MountPoint, "Mount point of the filesystem under test")
	fs.StringVar(&cfg.BatchesDir, "batches", cfg.BatchesDir, "Directory holding the batch directories")
	fs.StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "OCI namespace (fetched via the API when empty)")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "OCI Object Storage host override")
	fs.StringVar(&cfg.OCIConfigFile, "oci-config", cfg.OCIConfigFile, "Path to OCI config file")
	fs.StringVar(&cfg.OCIProfile, "oci-profile", cfg.OCIProfile, "Profile of the OCI config file")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Max writes per second (0 means no limit)")
	fs.BoolVar(&cfg.Progress, "progress", cfg.Progress, "Show a progress bar per strategy when stderr is a terminal")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: s3vsefs [flags] <access-key> <secret-key> [debug]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	creds, debug, err := config.ParseArgs(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	}

	// Flags given on the command line win over the YAML file
	if *configFile != "" {
		explicit := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		loaded, err := config.LoadFile(*configFile, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
		for name, value := range explicit {
			_ = fs.Set(name, value)
		}
	}
	cfg.Credentials = creds
	cfg.Debug = debug

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return 1
	}

	logger := logging.New(stdout, cfg.Debug)
	ctx := context.Background()

	batches, err := batch.Load(cfg.BatchesDir, batch.Definitions())
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	if info, err := mountpoint.Inspect(cfg.MountPoint); err != nil {
		logger.Error("Inspecting mount point: %v", err)
	} else if info.Exists && !info.Mounted {
		logger.Error("Mount point %s", info)
	} else {
		logger.Info("Mount point %s", info)
	}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		collector.Start(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_ = collector.Stop(shutdownCtx)
		}()
	}

	opts := []benchmark.Option{benchmark.WithMetrics(collector)}
	if cfg.Progress {
		if factory := progress.Terminal(); factory != nil {
			opts = append(opts, benchmark.WithProgress(factory))
		}
	}

	params := benchmark.BenchmarkParams{
		MountPoint: cfg.MountPoint,
		RateLimit:  cfg.RateLimit,
	}
	runner := benchmark.NewRunner(params, store, store, logger, opts...)

	if failed := runner.Run(ctx, batches); failed > 0 {
		logger.Error("%d of %d batches failed", failed, len(batches))
	}
	return 0
}

func newStore(ctx context.Context, cfg config.Backend, logger logging.Logger) (storage.Store, error) {
	switch cfg.Provider {
	case config.ProviderOCI:
		httpClient, err := storage.NewHTTPClient()
		if err != nil {
			return nil, err
		}
		logger.Info("OCI provider signs requests with the config-file profile, the key pair is not used")
		return storage.NewOCIStore(ctx, cfg, httpClient, logger)
	default:
		store, err := storage.NewS3Store(ctx, cfg, storage.NewS3HTTPClient())
		if err != nil {
			return nil, err
		}
		logger.Info("Using S3 endpoint %s (%s), bucket %s", cfg.Endpoint, cfg.Region, store.Bucket())
		return store, nil
	}
}
