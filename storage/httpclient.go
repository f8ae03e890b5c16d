package storage

import (
	"fmt"
	"net/http"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"golang.org/x/net/http2"
)

const requestTimeout = 120 * time.Second

// tuneTransport applies the pooled connection settings shared by both SDKs
func tuneTransport(tr *http.Transport) {
	tr.MaxIdleConns = 20
	tr.MaxIdleConnsPerHost = 10
	tr.IdleConnTimeout = 90 * time.Second
	tr.TLSHandshakeTimeout = 10 * time.Second
	tr.ExpectContinueTimeout = 1 * time.Second
}

// NewHTTPClient creates an HTTP client with pooled transport settings and HTTP/2 support.
// The OCI SDK sends its requests through it.
func NewHTTPClient() (*http.Client, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	tuneTransport(transport)

	// Enable HTTP/2
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("failed to configure HTTP/2: %w", err)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}, nil
}

// NewS3HTTPClient creates the S3 counterpart of NewHTTPClient. It stays a
// buildable client so the SDK can still add its own transport options, such
// as a custom CA bundle.
func NewS3HTTPClient() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().
		WithTransportOptions(func(tr *http.Transport) {
			tuneTransport(tr)
			// Enable HTTP/2; the SDK default transport already negotiates it when this fails
			_ = http2.ConfigureTransport(tr)
		}).
		WithTimeout(requestTimeout)
}
