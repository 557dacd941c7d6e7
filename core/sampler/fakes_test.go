package sampler

import (
	"errors"
	"fmt"
	"io"

	"seqsample-core/fastq"
)

// seqSource replays fixed draws and records how many were taken.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

type sliceStream struct {
	name string
	recs []fastq.Record
	i    int
	err  error // returned instead of io.EOF once recs are drained, if set
}

func (s *sliceStream) Name() string { return s.name }

func (s *sliceStream) Next() (fastq.Record, error) {
	if s.i >= len(s.recs) {
		if s.err != nil {
			return fastq.Record{}, s.err
		}
		return fastq.Record{}, io.EOF
	}
	r := s.recs[s.i]
	s.i++
	return r, nil
}

func records(prefix string, n int) []fastq.Record {
	out := make([]fastq.Record, n)
	for i := range out {
		out[i] = fastq.Record{ID: fmt.Sprintf("%s%d", prefix, i), Seq: []byte("ACGT"), Qual: []byte("IIII")}
	}
	return out
}

type write struct {
	Slot int
	Role Role
	ID   string
}

type memSink struct {
	writes []write
	failAt int // 1-based write that fails; 0 = never
}

var errSinkFull = errors.New("sink full")

func (m *memSink) Write(slot int, role Role, rec fastq.Record) error {
	if m.failAt > 0 && len(m.writes)+1 == m.failAt {
		return errSinkFull
	}
	m.writes = append(m.writes, write{slot, role, rec.ID})
	return nil
}

func (m *memSink) ids(slot int, role Role) []string {
	var out []string
	for _, w := range m.writes {
		if w.Slot == slot && w.Role == role {
			out = append(out, w.ID)
		}
	}
	return out
}
