// core/sampler/job.go
package sampler

import (
	"errors"
	"fmt"
)

// Mode selects which phases a run performs.
type Mode int

const (
	ModePaired Mode = 1 << iota
	ModeSingle
	ModeBoth = ModePaired | ModeSingle
)

func (m Mode) String() string {
	switch m {
	case ModePaired:
		return "paired"
	case ModeSingle:
		return "single"
	case ModeBoth:
		return "both"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Has reports whether m includes the phase p.
func (m Mode) Has(p Mode) bool { return m&p != 0 }

// Role identifies which stream a sink belongs to. Its value is the file
// name suffix used for the sink.
type Role string

const (
	RoleForward Role = "1"
	RoleReverse Role = "2"
	RoleSingle  Role = "U"
)

// Job is the immutable configuration of one run.
type Job struct {
	Percent    float64 // inclusion probability, strictly inside (0, 1)
	NumSamples int     // number of independent sample slots, >= 1
	Seed       *uint64 // nil means the caller seeded from entropy
	Mode       Mode
}

// Validate checks the invariants the Engine relies on.
func (j Job) Validate() error {
	if !(j.Percent > 0 && j.Percent < 1) {
		return fmt.Errorf("sampling fraction must be > 0 and < 1, got %g", j.Percent)
	}
	if j.NumSamples < 1 {
		return fmt.Errorf("number of samples must be >= 1, got %d", j.NumSamples)
	}
	if j.Seed != nil && *j.Seed == 0 {
		return errors.New("seed must be >= 1")
	}
	if j.Mode&ModeBoth == 0 || j.Mode&^ModeBoth != 0 {
		return fmt.Errorf("invalid mode %v", j.Mode)
	}
	return nil
}
