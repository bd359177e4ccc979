package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15

	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewEntropy returns a *rand.Rand seeded from the runtime's entropy source.
// Production wiring uses it; tests use New with a fixed seed.
func NewEntropy() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// LCG is the linear-congruential generator behind seeded deck shuffles.
// Identical seeds always produce identical sequences, which is what lets a
// parallel hand be replayed from its index alone.
type LCG struct {
	state int64
}

// NewLCG returns a generator positioned at seed. Negative seeds are folded
// into the modulus range so every int64 is a valid seed.
func NewLCG(seed int64) *LCG {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &LCG{state: s}
}

// Float64 advances the generator and returns a value in [0, 1).
func (l *LCG) Float64() float64 {
	l.state = (l.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(l.state) / lcgModulus
}

// IntN returns a value in [0, n). It panics if n <= 0, like rand.IntN.
func (l *LCG) IntN(n int) int {
	if n <= 0 {
		panic("randutil: invalid argument to IntN")
	}
	v := int(l.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
