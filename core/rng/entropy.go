// core/rng/entropy.go
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// EntropySeed draws a seed in [1, MaxInt64] from the operating system.
// The result is a valid -r value, so an unseeded run can be replayed.
func EntropySeed() (uint64, error) { return seedFrom(rand.Reader) }

func seedFrom(r io.Reader) (uint64, error) {
	var b [8]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("read entropy: %w", err)
		}
		if s := binary.LittleEndian.Uint64(b[:]) & math.MaxInt64; s != 0 {
			return s, nil
		}
	}
}
