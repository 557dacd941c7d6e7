// core/fastq/open.go
package fastq

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	mmap "github.com/edsrzf/mmap-go"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// mapping adapts an mmap.MMap to io.Closer.
type mapping struct{ m mmap.MMap }

func (m mapping) Close() error { return m.m.Unmap() }

// Open returns a Reader over path. "-" reads stdin. Regular non-empty files
// are memory-mapped; anything else (pipes, empty files, failed maps) is read
// through the file handle. gzip input is detected by magic number (1F 8B)
// or by a .gz suffix.
func Open(path string) (*Reader, error) {
	rc, err := openSource(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(rc, path)
	r.closer = rc
	return r, nil
}

func openSource(path string) (io.ReadCloser, error) {
	var (
		src     io.Reader
		closers []io.Closer
	)
	if path == "-" {
		src = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		closers = append(closers, fh)
		src = fh
		if fi, err := fh.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() > 0 {
			if m, err := mmap.Map(fh, mmap.RDONLY, 0); err == nil {
				src = bytes.NewReader(m)
				closers = append([]io.Closer{mapping{m}}, closers...)
			}
		}
	}

	br := bufio.NewReader(src)
	sig, _ := br.Peek(2)
	if (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = (&multiReadCloser{closers: closers}).Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &multiReadCloser{Reader: gr, closers: append([]io.Closer{gr}, closers...)}, nil
	}
	return &multiReadCloser{Reader: br, closers: closers}, nil
}
