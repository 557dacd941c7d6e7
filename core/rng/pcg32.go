// core/rng/pcg32.go
package rng

import "math"

const pcgMult = 6364136223846793005

// PCG32 is the PCG-XSH-RR generator with 64-bit state and 32-bit output.
// The zero value is not seeded; use NewPCG32 or Seeded.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 seeds a generator with an initial state and a stream selector.
// The seeding sequence matches the reference pcg32_srandom_r so a given
// (initstate, initseq) reproduces the reference draw stream.
func NewPCG32(initstate, initseq uint64) *PCG32 {
	p := &PCG32{inc: initseq<<1 | 1}
	p.Uint32()
	p.state += initstate
	p.Uint32()
	return p
}

// Seeded returns a generator seeded the way the -r flag seeds it:
// the same value selects both the initial state and the stream.
func Seeded(seed uint64) *PCG32 { return NewPCG32(seed, seed) }

// Uint32 advances the generator and returns the next 32-bit output.
func (p *PCG32) Uint32() uint32 {
	old := p.state
	p.state = old*pcgMult + p.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return xorshifted>>rot | xorshifted<<((-rot)&31)
}

// Float64 returns a value uniformly distributed over [0, 1),
// one 32-bit draw scaled by 2^-32.
func (p *PCG32) Float64() float64 {
	return math.Ldexp(float64(p.Uint32()), -32)
}
