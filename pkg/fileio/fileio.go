// Package fileio moves file content in chunks, with an optional
// content-equality check that leaves identical destinations untouched.
package fileio

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"

	"gitlab.com/tozd/go/errors"
)

// DefaultChunkSize is the read/write granularity used when CopyOptions does
// not set one.
const DefaultChunkSize = 64 * 1024

// CopyOptions controls CopyFile and WriteFile.
type CopyOptions struct {
	// ChunkSize is the read/write granularity in bytes. Zero or negative
	// means DefaultChunkSize.
	ChunkSize int

	// CheckContent compares the destination to the new content first and
	// skips the write entirely when they already match.
	CheckContent bool

	// MaxCompareSize caps the file size considered for the content check.
	// Zero means no cap. Larger files are rewritten without comparison.
	MaxCompareSize int64
}

func (o CopyOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// CopyFile copies src to dst in chunks. The returned bool is true when dst
// was written, false when opts.CheckContent found dst already identical.
// The context is checked between chunks.
func CopyFile(ctx context.Context, src, dst string, opts CopyOptions) (bool, error) {
	if opts.CheckContent {
		same, err := sameContent(src, dst, opts.MaxCompareSize)
		if err != nil {
			return false, err
		}
		if same {
			return false, nil
		}
	}
	if err := copyChunked(ctx, src, dst, opts.chunkSize()); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFile writes content to path. With opts.CheckContent set, an existing
// identical file is left untouched and false is returned.
func WriteFile(ctx context.Context, path string, content []byte, opts CopyOptions) (bool, error) {
	if opts.CheckContent && (opts.MaxCompareSize <= 0 || int64(len(content)) <= opts.MaxCompareSize) {
		have, err := os.ReadFile(path)
		if err == nil && bytes.Equal(have, content) {
			return false, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, errors.Errorf("reading %q: %w", path, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, errors.Errorf("writing %q: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, errors.Errorf("writing %q: %w", path, err)
	}
	return true, nil
}

// ReadFile reads the whole file at path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %q: %w", path, err)
	}
	return data, nil
}

// sameContent reports whether src and dst hold identical bytes. A missing
// dst is simply "not the same". Files above maxSize (when positive) are
// never compared.
func sameContent(src, dst string, maxSize int64) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, errors.Errorf("stat %q: %w", src, err)
	}
	if maxSize > 0 && srcInfo.Size() > maxSize {
		return false, nil
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Errorf("stat %q: %w", dst, err)
	}
	if dstInfo.Size() != srcInfo.Size() {
		return false, nil
	}
	want, err := os.ReadFile(src)
	if err != nil {
		return false, errors.Errorf("reading %q: %w", src, err)
	}
	have, err := os.ReadFile(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Errorf("reading %q: %w", dst, err)
	}
	return bytes.Equal(want, have), nil
}

func copyChunked(ctx context.Context, src, dst string, chunkSize int) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating %q: %w", dst, err)
	}

	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return errors.Errorf("copying %q: %w", src, err)
		}
		n, readErr := in.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				return errors.Errorf("writing %q: %w", dst, writeErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			return errors.Errorf("reading %q: %w", src, readErr)
		}
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %q: %w", dst, err)
	}
	return nil
}
