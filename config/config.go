package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"gopkg.in/yaml.v2"
)

// Supported remote object-store providers
const (
	ProviderS3  = "s3"
	ProviderOCI = "oci"
)

// ErrUsage is returned when the positional arguments are malformed
var ErrUsage = errors.New("expected two or three arguments: access-key and secret-key (resp. 'debug' flag)")

// Credentials is the static key pair used to sign object-store requests
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Backend holds the storage-backend configuration for one benchmark run.
// It is built once at startup and passed by value afterwards.
type Backend struct {
	Provider     string `yaml:"provider"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	UsePathStyle bool   `yaml:"use_path_style"`

	// OCI native API settings, only read when Provider is "oci"
	Namespace     string `yaml:"namespace"`
	Host          string `yaml:"host"`
	OCIConfigFile string `yaml:"oci_config_file"`
	OCIProfile    string `yaml:"oci_profile"`

	MountPoint  string `yaml:"mount_point"`
	BatchesDir  string `yaml:"batches_dir"`
	RateLimit   int    `yaml:"rate_limit"`   // Max writes per second (0 means no limit)
	Progress    bool   `yaml:"progress"`     // Show a progress bar per strategy pass
	MetricsAddr string `yaml:"metrics_addr"` // Listen address for /metrics, empty disables it

	Credentials Credentials `yaml:"-"`
	Debug       bool        `yaml:"-"`
}

// Default returns the configuration the benchmark was designed around
func Default() Backend {
	return Backend{
		Provider:      ProviderS3,
		Region:        "us-east-1",
		Endpoint:      "https://s3.amazonaws.com",
		Bucket:        "s3vsefstestbucket",
		OCIConfigFile: "~/.oci/config",
		OCIProfile:    "DEFAULT",
		MountPoint:    "/efs",
		BatchesDir:    "resources/batches",
	}
}

// LoadFile overlays the YAML document at path on top of base.
// Keys missing from the document keep their value from base.
func LoadFile(path string, base Backend) (Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable before any client is built
func (b Backend) Validate() error {
	switch b.Provider {
	case ProviderS3:
		if b.Region == "" {
			return fmt.Errorf("region cannot be empty")
		}
	case ProviderOCI:
		if b.OCIConfigFile == "" {
			return fmt.Errorf("oci config file cannot be empty")
		}
	default:
		return fmt.Errorf("unknown provider %q", b.Provider)
	}
	if b.Bucket == "" {
		return fmt.Errorf("bucket name cannot be empty")
	}
	if b.MountPoint == "" {
		return fmt.Errorf("mount point cannot be empty")
	}
	if b.BatchesDir == "" {
		return fmt.Errorf("batches directory cannot be empty")
	}
	if b.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", b.RateLimit)
	}
	return nil
}

// ParseArgs validates the positional arguments: access key, secret key and
// an optional boolean-like debug flag.
func ParseArgs(args []string) (Credentials, bool, error) {
	if len(args) != 2 && len(args) != 3 {
		return Credentials{}, false, fmt.Errorf("%w, got %d", ErrUsage, len(args))
	}

	creds := Credentials{AccessKey: args[0], SecretKey: args[1]}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return Credentials{}, false, fmt.Errorf("%w: keys must not be empty", ErrUsage)
	}

	debug := false
	if len(args) == 3 {
		debug = ParseBool(args[2])
	}
	return creds, debug, nil
}

// ParseBool reports whether s is a boolean-like "true" value.
// Unrecognized input is false rather than an error.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	default:
		return false
	}
}

// LoadOCIConfig loads the OCI configuration from the specified config file path and profile
func LoadOCIConfig(configFilePath, profile string) (common.ConfigurationProvider, error) {
	path, err := expandHome(configFilePath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s is not readable: %w", path, err)
	}

	provider, err := common.ConfigurationProviderFromFileWithProfile(path, profile, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load config from file: %w", err)
	}
	return provider, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
