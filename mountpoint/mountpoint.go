// Package mountpoint inspects the local path the filesystem strategy writes to.
package mountpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/mountinfo"
)

// Info describes the filesystem behind a path
type Info struct {
	Path      string
	Exists    bool
	Mounted   bool   // Path itself is a mount point
	FSType    string // Filesystem type of the mount, when Mounted
	Source    string // Mount source, e.g. "fs-12345678.efs.us-east-1.amazonaws.com:/"
	Available uint64 // Bytes available to unprivileged users, 0 when unknown
}

// Inspect reports whether path exists and is a mount point.
// A missing path is not an error: the filesystem strategy creates it.
func Inspect(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{Path: path}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info := Info{Path: abs}

	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return info, nil
		}
		return info, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	info.Exists = true

	mounted, err := mountinfo.Mounted(abs)
	if err != nil {
		return info, fmt.Errorf("failed to check mount %s: %w", abs, err)
	}
	info.Mounted = mounted

	if mounted {
		mounts, err := mountinfo.GetMounts(mountinfo.SingleEntryFilter(abs))
		if err == nil && len(mounts) > 0 {
			info.FSType = mounts[0].FSType
			info.Source = mounts[0].Source
		}
	}

	info.Available = available(abs)
	return info, nil
}

// String renders the inspection result for the startup log
func (i Info) String() string {
	switch {
	case !i.Exists:
		return fmt.Sprintf("%s does not exist yet", i.Path)
	case !i.Mounted:
		return fmt.Sprintf("%s is not a mount point (%d bytes available)", i.Path, i.Available)
	default:
		return fmt.Sprintf("%s is mounted from %s (%s, %d bytes available)", i.Path, i.Source, i.FSType, i.Available)
	}
}
