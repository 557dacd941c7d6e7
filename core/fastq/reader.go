// core/fastq/reader.go
package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Reader parses FASTA and FASTQ records from a stream. Sequence and quality
// may be wrapped over several lines. The Record returned by Next shares
// buffers with the Reader and is valid until the following call to Next.
type Reader struct {
	name   string
	br     *bufio.Reader
	closer io.Closer

	line    []byte
	hdr     []byte
	pending bool
	seq     []byte
	qual    []byte
	n       int
}

// NewReader wraps r. name is used in error messages and returned by Name.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{
		name: name,
		br:   bufio.NewReaderSize(r, 256*1024),
		seq:  make([]byte, 0, 1024),
		qual: make([]byte, 0, 1024),
	}
}

// Name returns the path (or label) the reader was opened with.
func (r *Reader) Name() string { return r.name }

// Records returns how many records Next has returned so far.
func (r *Reader) Records() int { return r.n }

// Close releases the underlying source if the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// Next returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (Record, error) {
	if !r.pending {
		for {
			line, err := r.readLine()
			if err != nil {
				return Record{}, err
			}
			if len(line) == 0 {
				continue
			}
			if line[0] != '>' && line[0] != '@' {
				return Record{}, fmt.Errorf("%s: record %d: expected '>' or '@' header, got %q", r.name, r.n+1, truncate(line))
			}
			r.hdr = append(r.hdr[:0], line...)
			break
		}
	}
	r.pending = false
	id, desc := splitHeader(r.hdr[1:])

	r.seq = r.seq[:0]
	for {
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			return r.emit(id, desc, nil), nil
		}
		if err != nil {
			return Record{}, err
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>', '@':
			r.hdr = append(r.hdr[:0], line...)
			r.pending = true
			return r.emit(id, desc, nil), nil
		case '+':
			if err := r.readQual(id); err != nil {
				return Record{}, err
			}
			return r.emit(id, desc, r.qual), nil
		default:
			r.seq = append(r.seq, line...)
		}
	}
}

// readQual reads at least one quality line, then keeps reading until the
// quality string is as long as the sequence.
func (r *Reader) readQual(id string) error {
	r.qual = r.qual[:0]
	for {
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		r.qual = append(r.qual, line...)
		if len(r.qual) >= len(r.seq) {
			break
		}
	}
	if len(r.qual) != len(r.seq) {
		return fmt.Errorf("%s: record %d (%s): quality length %d does not match sequence length %d",
			r.name, r.n+1, id, len(r.qual), len(r.seq))
	}
	return nil
}

func (r *Reader) emit(id, desc string, qual []byte) Record {
	r.n++
	return Record{ID: id, Desc: desc, Seq: r.seq, Qual: qual}
}

// readLine returns the next line without its terminator. A final line with
// no newline is returned with a nil error; io.EOF follows on the next call.
func (r *Reader) readLine() ([]byte, error) {
	r.line = r.line[:0]
	for {
		chunk, err := r.br.ReadSlice('\n')
		r.line = append(r.line, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(r.line) > 0 {
				break
			}
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%s: read: %w", r.name, err)
		}
		break
	}
	return bytes.TrimRight(r.line, "\r\n"), nil
}

func splitHeader(hdr []byte) (id, desc string) {
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimLeft(hdr[i+1:], " \t"))
	}
	return string(hdr), ""
}

func truncate(b []byte) []byte {
	if len(b) > 32 {
		return b[:32]
	}
	return b
}
