package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	got := Summary("Serial S3 Test", "75-files mixed-batch", 4, 2*1024*1024, 2*time.Second)

	assert.Contains(t, got, "Serial S3 Test 75-files mixed-batch results: 4 files")
	assert.Contains(t, got, "2.0 MB")
	assert.Contains(t, got, "1.00 MiB/s")
	assert.Contains(t, got, "2.00 files/s")
}

func TestSummary_ZeroDuration(t *testing.T) {
	got := Summary("Serial EFS Test", "empty", 0, 0, 0)

	assert.Contains(t, got, "0.00 MiB/s")
	assert.Contains(t, got, "0.00 files/s")
}
