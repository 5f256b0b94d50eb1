// Package entropy picks run seeds. A configured seed is used as is; an
// unset one is drawn from crypto/rand so unattended runs differ, and the
// chosen value is logged so any run can be replayed.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
	"time"
)

// Seed returns configured when it is non-zero, otherwise a fresh seed.
func Seed(configured int64) int64 {
	if configured != 0 {
		return configured
	}
	return cryptoSeed()
}

// NewRand returns a generator for the seed chosen by Seed, along with
// the seed itself.
func NewRand(configured int64) (*mrand.Rand, int64) {
	seed := Seed(configured)
	return mrand.New(mrand.NewSource(seed)), seed
}

func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; the clock still gives distinct runs.
		slog.Debug("crypto seed failed, using clock", "error", err)
		return time.Now().UnixNano()
	}
	// Clear the sign bit; zero would read as "unset" in config.
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}
