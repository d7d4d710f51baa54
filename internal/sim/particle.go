package sim

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

const (
	MaxAxisSpeed = 0.75 // Per-axis speed bound for uniform spawns
	flowScale    = 0.004
)

// Particle is a moving point. Particles outlive every index built over them.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity, world units per frame
	Highlighted bool    // Set by the last tick's focus query
}

// reflect advances p by dt and bounces it off the walls of [0,w] x [0,h].
// The axes are handled independently so a corner hit flips both.
func (p *Particle) reflect(dt, w, h float64) {
	nx := p.X + p.VX*dt
	ny := p.Y + p.VY*dt

	if nx < 0 || nx > w {
		p.VX = -p.VX
	}
	if ny < 0 || ny > h {
		p.VY = -p.VY
	}

	p.X = clamp(nx, 0, w)
	p.Y = clamp(ny, 0, h)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// spawn creates n particles inside [0,w) x [0,h).
func spawn(rng *rand.Rand, mode SpawnMode, n int, w, h float64) []*Particle {
	var noise *perlin.Perlin
	if mode == SpawnFlow {
		noise = perlin.NewPerlin(2, 2, 3, rng.Int63())
	}

	particles := make([]*Particle, n)
	for i := range particles {
		p := &Particle{
			X: rng.Float64() * w,
			Y: rng.Float64() * h,
		}
		if noise != nil {
			angle := (noise.Noise2D(p.X*flowScale, p.Y*flowScale) + 1) * math.Pi
			speed := MaxAxisSpeed * (0.25 + 0.75*rng.Float64())
			p.VX = math.Cos(angle) * speed
			p.VY = math.Sin(angle) * speed
		} else {
			p.VX = (rng.Float64() - 0.5) * 2 * MaxAxisSpeed
			p.VY = (rng.Float64() - 0.5) * 2 * MaxAxisSpeed
		}
		particles[i] = p
	}
	return particles
}
