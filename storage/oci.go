package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"
	"github.com/oracle/oci-go-sdk/v65/objectstorage/transfer"

	"s3vsefs/config"
	"s3vsefs/logging"
)

// OCIStore writes objects to an OCI Object Storage bucket through the
// native API: PutObject for direct writes, the transfer UploadManager for
// managed uploads.
type OCIStore struct {
	client    objectstorage.ObjectStorageClient
	uploads   *transfer.UploadManager
	namespace string
	bucket    string
}

// NewOCIStore loads the OCI config-file profile and initializes the ObjectStorage client.
// The namespace is fetched via the API unless configured.
func NewOCIStore(ctx context.Context, cfg config.Backend, httpClient *http.Client, logger logging.Logger) (*OCIStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name cannot be empty")
	}

	logger.Info("Loading OCI config from: %s [%s]", cfg.OCIConfigFile, cfg.OCIProfile)
	provider, err := config.LoadOCIConfig(cfg.OCIConfigFile, cfg.OCIProfile)
	if err != nil {
		return nil, err
	}

	client, err := objectstorage.NewObjectStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("error creating Object Storage client: %w", err)
	}
	if httpClient != nil {
		client.HTTPClient = httpClient
	}

	// Use the host override if provided, otherwise use the SDK default
	if cfg.Host != "" {
		logger.Info("Using custom host: %s", cfg.Host)
		client.Host = cfg.Host
	}

	namespace := cfg.Namespace
	if namespace == "" {
		resp, err := client.GetNamespace(ctx, objectstorage.GetNamespaceRequest{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch namespace: %w", err)
		}
		namespace = *resp.Value
		logger.Info("Fetched namespace: %s", namespace)
	} else {
		logger.Info("Using provided namespace: %s", namespace)
	}

	return &OCIStore{
		client:    client,
		uploads:   transfer.NewUploadManager(),
		namespace: namespace,
		bucket:    cfg.Bucket,
	}, nil
}

// PutObject uploads body under key with a single request
func (s *OCIStore) PutObject(ctx context.Context, key string, body io.Reader, size int64, metadata map[string]string) error {
	request := objectstorage.PutObjectRequest{
		NamespaceName: common.String(s.namespace),
		BucketName:    common.String(s.bucket),
		ObjectName:    common.String(key),
		ContentLength: common.Int64(size),
		PutObjectBody: nopCloser{body},
		OpcMeta:       metadata,
	}
	if _, err := s.client.PutObject(ctx, request); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Upload hands the file to the transfer UploadManager and blocks until
// every part has been committed.
func (s *OCIStore) Upload(ctx context.Context, key, localPath string) error {
	request := transfer.UploadFileRequest{
		UploadRequest: transfer.UploadRequest{
			NamespaceName:       common.String(s.namespace),
			BucketName:          common.String(s.bucket),
			ObjectName:          common.String(key),
			ObjectStorageClient: &s.client,
		},
		FilePath: localPath,
	}
	if _, err := s.uploads.UploadFile(ctx, request); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
