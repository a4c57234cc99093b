package puzzle

// Random is the pseudo-random source injected into the Generator.
// *math/rand.Rand satisfies it, as does the XorShift source below.
type Random interface {
	Float64() float64 // [0, 1)
	Intn(n int) int   // [0, n)
}

// XorShift is a deterministic xorshift64 generator.
// Its sequence depends only on the seed, so a seed printed by the CLI
// reproduces the same levels on any platform and Go release.
type XorShift struct {
	state uint64
}

// defaultSeed replaces a zero seed, which would lock xorshift at zero forever.
const defaultSeed uint64 = 88172645463325252

// NewRandom creates the default Random for the given seed.
func NewRandom(seed int64) *XorShift {
	s := uint64(seed)
	if s == 0 {
		s = defaultSeed
	}
	return &XorShift{state: s}
}

// Uint64 returns the next raw value.
func (r *XorShift) Uint64() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float64 returns a value in [0, 1) built from the top 53 bits.
func (r *XorShift) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). Returns 0 when n <= 0.
func (r *XorShift) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

// randomBool draws a fair coin from any Random.
func randomBool(r Random) bool {
	return r.Intn(2) == 1
}
