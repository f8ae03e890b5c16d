package storage

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s3vsefs/config"
	"s3vsefs/logging"
)

type recordedRequest struct {
	method         string
	path           string
	originalLength string
	body           string
}

// objectServer answers every request with 200 and records what it saw
type objectServer struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (s *objectServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		method:         r.Method,
		path:           r.URL.Path,
		originalLength: r.Header.Get("opc-meta-originalLength"),
		body:           string(data),
	})
	s.mu.Unlock()

	w.Header().Set("opc-request-id", "test-request")
	w.Header().Set("ETag", "etag-1")
	w.WriteHeader(http.StatusOK)
}

func (s *objectServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

// writeOCIConfig writes an OCI config file with a freshly generated API key
func writeOCIConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPath := filepath.Join(dir, "oci_api_key.pem")
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(keyPath, keyPEM, 0600))

	configPath := filepath.Join(dir, "config")
	content := fmt.Sprintf(`[DEFAULT]
user=ocid1.user.oc1..test
fingerprint=aa:bb:cc:dd
tenancy=ocid1.tenancy.oc1..test
region=us-ashburn-1
key_file=%s
`, keyPath)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))
	return configPath
}

func newTestOCIStore(t *testing.T) (*OCIStore, *objectServer) {
	t.Helper()
	handler := &objectServer{}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Provider = config.ProviderOCI
	cfg.OCIConfigFile = writeOCIConfig(t)
	cfg.OCIProfile = "DEFAULT"
	cfg.Host = server.URL
	cfg.Namespace = "benchns"
	cfg.Bucket = "bench-bucket"

	store, err := NewOCIStore(context.Background(), cfg, nil, logging.New(io.Discard, false))
	require.NoError(t, err)
	return store, handler
}

func TestOCIStore_PutObject(t *testing.T) {
	store, handler := newTestOCIStore(t)

	meta := map[string]string{OriginalLengthKey: "5"}
	err := store.PutObject(context.Background(), "test-serial/75-mixed/a.txt", strings.NewReader("hello"), 5, meta)
	require.NoError(t, err)

	requests := handler.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].method)
	assert.Equal(t, "/n/benchns/b/bench-bucket/o/test-serial/75-mixed/a.txt", requests[0].path)
	assert.Equal(t, "5", requests[0].originalLength)
	assert.Equal(t, "hello", requests[0].body)
}

func TestOCIStore_Upload(t *testing.T) {
	store, handler := newTestOCIStore(t)

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("paragraph one"), 0644))

	require.NoError(t, store.Upload(context.Background(), "test-serial-tm/75-mixed/a.txt", path))

	requests := handler.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].method)
	assert.Equal(t, "/n/benchns/b/bench-bucket/o/test-serial-tm/75-mixed/a.txt", requests[0].path)
	assert.Equal(t, "paragraph one", requests[0].body)
}

func TestOCIStore_UploadMissingFile(t *testing.T) {
	store, handler := newTestOCIStore(t)

	err := store.Upload(context.Background(), "k", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Empty(t, handler.recorded())
}
