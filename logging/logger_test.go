package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestConsoleLogger_DebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info("Serial S3 Test %s took %dms", "75-files mixed-batch", 12)
	logger.Debug("Writing %s to S3 took %dms", "test-serial/75-mixed/a.txt", 3)
	logger.Error("Failed data [%s]", "75-files mixed-batch")

	out := buf.String()
	assert.Contains(t, out, "[INFO] Serial S3 Test 75-files mixed-batch took 12ms")
	assert.Contains(t, out, "[ERROR] Failed data [75-files mixed-batch]")
	assert.NotContains(t, out, "Writing")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestConsoleLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("Writing %s to EFS took %dms", "/efs/test-serial/75-mixed/a.txt", 1)

	assert.Equal(t, "[DEBUG] Writing /efs/test-serial/75-mixed/a.txt to EFS took 1ms\n", buf.String())
}

func TestConsoleLogger_ImplementsLogger(t *testing.T) {
	var _ Logger = New(&bytes.Buffer{}, false)
}
