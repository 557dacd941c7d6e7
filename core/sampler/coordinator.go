// core/sampler/coordinator.go
package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"seqsample-core/fastq"
)

// Stream is a record source. Next returns io.EOF at the end of the stream.
type Stream interface {
	Next() (fastq.Record, error)
	Name() string
}

// Sink receives the records kept for a slot.
type Sink interface {
	Write(slot int, role Role, rec fastq.Record) error
}

// ErrDesync matches any *DesyncError.
var ErrDesync = errors.New("paired streams out of sync")

// DesyncError reports a reverse stream that ran out before its forward mate.
type DesyncError struct {
	Reverse string // path of the short stream
	Record  int    // 1-based index of the forward record left without a mate
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("not enough reads in reverse reads file '%s' (forward record %d has no mate)", e.Reverse, e.Record)
}

func (e *DesyncError) Is(target error) bool { return target == ErrDesync }

// Stats summarises one phase.
type Stats struct {
	Units int   // records (single) or pairs (paired) read
	Kept  []int // per-slot count of units written

	// ReverseLeftover is set when the reverse stream still had records after
	// the forward stream ended. Those records are ignored.
	ReverseLeftover bool
}

func newStats(n int) Stats { return Stats{Kept: make([]int, n)} }

// RunSingle samples every record of in into out under RoleSingle.
func RunSingle(ctx context.Context, eng *Engine, in Stream, out Sink) (Stats, error) {
	st := newStats(eng.Slots())
	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}
		rec, err := in.Next()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		st.Units++
		for i, keep := range eng.Decide() {
			if !keep {
				continue
			}
			if err := out.Write(i, RoleSingle, rec); err != nil {
				return st, err
			}
			st.Kept[i]++
		}
	}
}

// RunPaired walks fwd and rev in lockstep. Each pair gets one decision
// vector; a kept pair is written to the forward and reverse sinks of the
// slot. The run ends when fwd is exhausted; rev ending first is a
// *DesyncError.
func RunPaired(ctx context.Context, eng *Engine, fwd, rev Stream, out Sink) (Stats, error) {
	st := newStats(eng.Slots())
	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}
		f, err := fwd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		r, err := rev.Next()
		if errors.Is(err, io.EOF) {
			return st, &DesyncError{Reverse: rev.Name(), Record: st.Units + 1}
		}
		if err != nil {
			return st, err
		}
		st.Units++
		for i, keep := range eng.Decide() {
			if !keep {
				continue
			}
			if err := out.Write(i, RoleForward, f); err != nil {
				return st, err
			}
			if err := out.Write(i, RoleReverse, r); err != nil {
				return st, err
			}
			st.Kept[i]++
		}
	}

	// A further record means rev had more input than fwd; a read error is
	// still fatal.
	_, err := rev.Next()
	switch {
	case err == nil:
		st.ReverseLeftover = true
	case !errors.Is(err, io.EOF):
		return st, err
	}
	return st, nil
}
