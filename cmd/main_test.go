package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s3vsefs/config"
	"s3vsefs/logging"
)

func TestRun_WrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"AKIA"},
		{"AKIA", "secret", "true", "extra"},
		{"-bucket", "b", "AKIA", "secret", "true", "extra", "more"},
	} {
		var stdout, stderr bytes.Buffer
		code := run(args, &stdout, &stderr)

		assert.Equal(t, 2, code, "args %v", args)
		assert.Contains(t, stderr.String(), "expected two or three arguments")
		assert.Contains(t, stderr.String(), "Usage: s3vsefs")
		// Nothing was started
		assert.Empty(t, stdout.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-no-such-flag", "AKIA", "secret"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestRun_InvalidConfiguration(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-provider", "gcs", "AKIA", "secret"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown provider")
	assert.Empty(t, stdout.String())
}

func TestRun_MissingBatches(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-batches", filepath.Join(t.TempDir(), "none"), "AKIA", "secret", "true"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "failed to load batch")
}

func TestRun_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s3vsefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: gcs\nbucket: from-yaml\n"), 0644))

	// The YAML provider is invalid, the flag fixes it; the batches directory
	// is missing so the run stops before any client is built.
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-config", path,
		"-provider", "s3",
		"-batches", filepath.Join(t.TempDir(), "none"),
		"AKIA", "secret",
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr.String(), "unknown provider")
	assert.Contains(t, stdout.String(), "failed to load batch")
}

func TestRun_ConfigFileApplied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s3vsefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: gcs\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "AKIA", "secret"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown provider")
}

func TestNewStore_S3(t *testing.T) {
	cfg := config.Default()
	cfg.Bucket = "bench-bucket"
	cfg.Credentials = config.Credentials{AccessKey: "AKIA", SecretKey: "secret"}

	var stdout bytes.Buffer
	store, err := newStore(context.Background(), cfg, logging.New(&stdout, false))
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Contains(t, stdout.String(), "bucket bench-bucket")
}
