// internal/sinks/set.go
package sinks

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seqsample-core/fastq"
	"seqsample-core/sampler"
)

const bufSize = 64 * 1024

// Path returns the output file for (slot, role):
// {outdir}/{basename}.sample_{slot}.{role}.fq
func Path(outdir, basename string, slot int, role sampler.Role) string {
	return filepath.Join(outdir, fmt.Sprintf("%s.sample_%d.%s.fq", basename, slot, role))
}

type sink struct {
	path string
	fh   *os.File
	bw   *bufio.Writer
}

func (s *sink) close() error {
	if s.fh == nil {
		return nil
	}
	ferr := s.bw.Flush()
	cerr := s.fh.Close()
	s.fh, s.bw = nil, nil
	if ferr != nil {
		return fmt.Errorf("flush %s: %w", s.path, ferr)
	}
	if cerr != nil {
		return fmt.Errorf("close %s: %w", s.path, cerr)
	}
	return nil
}

// Set holds one sink per (slot, role). It implements sampler.Sink.
type Set struct {
	roles []sampler.Role
	sinks map[sampler.Role][]*sink
}

// Open creates n files for each role, truncating existing ones. On failure
// every file opened so far is closed and the error names the failing path.
func Open(outdir, basename string, n int, roles ...sampler.Role) (*Set, error) {
	s := &Set{roles: roles, sinks: make(map[sampler.Role][]*sink, len(roles))}
	for slot := 0; slot < n; slot++ {
		for _, role := range roles {
			p := Path(outdir, basename, slot, role)
			fh, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("couldn't open '%s' for writing: %w", p, err)
			}
			s.sinks[role] = append(s.sinks[role], &sink{path: p, fh: fh, bw: bufio.NewWriterSize(fh, bufSize)})
		}
	}
	return s, nil
}

// Write appends rec to the sink of (slot, role).
func (s *Set) Write(slot int, role sampler.Role, rec fastq.Record) error {
	list := s.sinks[role]
	if slot < 0 || slot >= len(list) {
		return fmt.Errorf("no %s sink for slot %d", role, slot)
	}
	k := list[slot]
	if k.fh == nil {
		return fmt.Errorf("write %s: sink closed", k.path)
	}
	if err := fastq.Write(k.bw, rec); err != nil {
		return fmt.Errorf("write %s: %w", k.path, err)
	}
	return nil
}

// Paths returns the file names of role, indexed by slot.
func (s *Set) Paths(role sampler.Role) []string {
	out := make([]string, 0, len(s.sinks[role]))
	for _, k := range s.sinks[role] {
		out = append(out, k.path)
	}
	return out
}

// Close flushes and closes every open sink. It is safe to call more than
// once and on a partially opened Set. All sinks are closed even if some
// fail; the errors are joined.
func (s *Set) Close() error {
	var errs []error
	for _, role := range s.roles {
		for _, k := range s.sinks[role] {
			if err := k.close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
