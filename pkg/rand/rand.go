// Package rand implements the seeded subtractive generator used by
// System.Random in .NET, so a seed reproduces the draws of sample sets
// baked by .NET hosts.
package rand

const (
	mbig  = 2147483647 // math.MaxInt32
	mseed = 161803398
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// Generator is a Knuth subtractive generator. The zero value is not usable; call New.
type Generator struct {
	seeds  [56]int32
	inext  int
	inextp int
}

// New returns a generator seeded like new System.Random(seed).
func New(seed int32) *Generator {
	g := &Generator{}

	sub := int32(mbig)
	if seed != -2147483648 {
		sub = seed
		if sub < 0 {
			sub = -sub
		}
	}

	mj := mseed - sub
	g.seeds[55] = mj
	mk := int32(1)
	for i := 1; i < 55; i++ {
		ii := (21 * i) % 55
		g.seeds[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += mbig
		}
		mj = g.seeds[ii]
	}
	for k := 1; k < 5; k++ {
		for i := 1; i < 56; i++ {
			g.seeds[i] -= g.seeds[1+(i+30)%55]
			if g.seeds[i] < 0 {
				g.seeds[i] += mbig
			}
		}
	}

	g.inext = 0
	g.inextp = 21
	return g
}

// Int31 returns the next value in [0, math.MaxInt32).
func (g *Generator) Int31() int32 {
	n := g.inext + 1
	if n >= 56 {
		n = 1
	}
	p := g.inextp + 1
	if p >= 56 {
		p = 1
	}

	r := g.seeds[n] - g.seeds[p]
	if r == mbig {
		r--
	}
	if r < 0 {
		r += mbig
	}

	g.seeds[n] = r
	g.inext = n
	g.inextp = p
	return r
}

// Float64 returns the next value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.Int31()) * (1.0 / mbig)
}

// Float32 returns Float64 narrowed to single precision.
// Values just below 1 may round up to 1.
func (g *Generator) Float32() float32 {
	return float32(g.Float64())
}
