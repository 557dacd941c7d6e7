// core/sampler/engine.go
package sampler

// Source yields uniform draws over [0, 1). rng.PCG32 satisfies it.
type Source interface {
	Float64() float64
}

// Engine turns draws into per-unit decision vectors. It is not safe for
// concurrent use; the draw order is part of the reproducibility contract.
type Engine struct {
	src     Source
	percent float64
	vec     []bool
	draws   uint64
}

// NewEngine binds src to a sampling fraction and slot count. percent must
// lie in (0, 1) and n must be >= 1; see Job.Validate.
func NewEngine(src Source, percent float64, n int) *Engine {
	return &Engine{src: src, percent: percent, vec: make([]bool, n)}
}

// Slots returns the number of sample slots.
func (e *Engine) Slots() int { return len(e.vec) }

// Draws returns how many values have been taken from the source.
func (e *Engine) Draws() uint64 { return e.draws }

// Decide draws once per slot, slot 0 first, and returns the decision
// vector. The slice is reused by the next call.
func (e *Engine) Decide() []bool {
	for i := range e.vec {
		e.vec[i] = e.src.Float64() < e.percent
	}
	e.draws += uint64(len(e.vec))
	return e.vec
}
