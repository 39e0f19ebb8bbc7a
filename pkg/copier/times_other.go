//go:build !linux

package copier

import (
	"io/fs"
	"time"
)

// statTimes extracts access and modification times. Without platform stat
// data the modification time stands in for both.
func statTimes(info fs.FileInfo) (atime, mtime time.Time) {
	return info.ModTime(), info.ModTime()
}

// lchtimes is a no-op where no-follow timestamp updates are unavailable.
//
// TODO(dr.methodical): 🔧 wire unix.UtimesNanoAt for darwin and the BSDs
func lchtimes(path string, atime, mtime time.Time) error {
	return nil
}
