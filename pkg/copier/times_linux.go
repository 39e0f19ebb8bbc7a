//go:build linux

package copier

import (
	"io/fs"
	"syscall"
	"time"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/unix"
)

// statTimes extracts access and modification times, falling back to the
// modification time for both when platform stat data is unavailable.
func statTimes(info fs.FileInfo) (atime, mtime time.Time) {
	mtime = info.ModTime()
	atime = mtime
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		atime = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	}
	return atime, mtime
}

// lchtimes sets access and modification times on path without following a
// trailing symlink.
func lchtimes(path string, atime, mtime time.Time) error {
	ts := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, ts, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return errors.Errorf("setting times on %q: %w", path, err)
	}
	return nil
}
