package benchmark

import (
	"path"
	"path/filepath"
)

// Destination prefixes for the remote strategies. The filesystem strategy
// reuses SerialPrefix under the mount point.
const (
	SerialPrefix   = "test-serial"
	ManagedPrefix  = "test-serial-tm"
	strategyPut    = "s3-put"
	strategyUpload = "s3-upload"
	strategyFS     = "efs"
)

// ObjectKey returns "<prefix>/<parent-dir-name>/<file-name>" for a local file
func ObjectKey(prefix, file string) string {
	return path.Join(prefix, parentName(file), filepath.Base(file))
}

// parentName returns the name of the directory holding file
func parentName(file string) string {
	return filepath.Base(filepath.Dir(file))
}
