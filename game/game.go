package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/mesh"
)

type Status int

const (
	Running Status = iota
	Lost
	Won
)

func (s Status) Terminal() bool {
	return s != Running
}

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Lost:
		return "Game Over: Ya Lost!"
	case Won:
		return "You Win! All bacteria poisoned!!"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Circle is a single bacterium.
type Circle struct {
	Center mgl32.Vec3
	Radius float32
	Colour mgl32.Vec3
	Phase  float64

	removed bool
	crossed bool
}

func (c Circle) Alive() bool {
	return !c.removed
}

// Crossed reports whether the circle has reached the growth threshold.
func (c Circle) Crossed() bool {
	return c.crossed
}

// Game is the bacteria simulation. Circles live in a fixed slot table;
// removing one leaves an inert slot so indices match the shader arrays.
type Game struct {
	cfg       Config
	slots     [Capacity]Circle
	n         int
	score     int
	crossings int
	status    Status
}

func New(cfg Config, rng *rand.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg}
	g.Generate(rng)
	return g, nil
}

func (g *Game) Config() Config {
	return g.cfg
}

// Generate resets the game with a new batch of circles.
func (g *Game) Generate(rng *rand.Rand) {
	g.slots = [Capacity]Circle{}
	g.n = g.cfg.Count
	g.score = 0
	g.crossings = 0
	g.status = Running

	for i := 0; i < g.n; i++ {
		c := Circle{
			Radius: g.cfg.InitialRadius,
			Colour: RandomColour(rng),
		}

		switch g.cfg.Variant {
		case Sphere:
			c.Center = randomOnSphere(rng).Mul(g.cfg.SpawnRadius)
		default:
			angle := rng.Float64() * 2 * math.Pi
			c.Center = mgl32.Vec3{
				float32(math.Cos(angle)) * g.cfg.SpawnRadius,
				float32(math.Sin(angle)) * g.cfg.SpawnRadius,
				0,
			}
			c.Phase = angle
		}

		g.slots[i] = c
	}
}

func randomOnSphere(rng *rand.Rand) mgl32.Vec3 {
	// uniform in y gives uniform area on the sphere
	theta := math.Acos(rng.Float64()*2 - 1)
	phi := rng.Float64() * 2 * math.Pi
	return mesh.FromSpherical(1, float32(theta), float32(phi))
}

// Place overwrites the circle set. Slots beyond len(circles) are left empty.
func (g *Game) Place(circles []Circle) error {
	if len(circles) == 0 || len(circles) > Capacity {
		return fmt.Errorf("%w: %d circles outside [1, %d]", ErrInvalidConfig, len(circles), Capacity)
	}

	g.slots = [Capacity]Circle{}
	g.n = copy(g.slots[:], circles)
	for i := 0; i < g.n; i++ {
		g.slots[i].removed = false
		g.slots[i].crossed = false
	}
	g.score = 0
	g.crossings = 0
	g.status = Running
	return nil
}

// Tick advances every live circle by elapsed seconds and evaluates the
// end conditions, loss first.
func (g *Game) Tick(elapsed float64) {
	if g.status.Terminal() {
		return
	}
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}

	allRemoved := true
	for i := 0; i < g.n; i++ {
		c := &g.slots[i]
		if c.removed {
			continue
		}
		allRemoved = false

		if math.IsNaN(c.Phase) {
			c.Phase = 0
		}

		c.Radius += g.cfg.GrowthRate * float32(elapsed)
		if g.cfg.Variant == Flat {
			c.Phase += g.cfg.PhaseStep
		}

		if c.crossed {
			continue
		}
		g.score++

		if g.reachedThreshold(c) {
			c.crossed = true
			g.crossings++
			g.score += g.cfg.Bonus
		}
	}

	if g.crossings >= g.cfg.LossCrossings {
		g.status = Lost
		return
	}
	if allRemoved {
		g.status = Won
	}
}

func (g *Game) reachedThreshold(c *Circle) bool {
	if g.cfg.Variant == Sphere {
		return c.Radius >= g.cfg.RadiusThreshold
	}
	return c.Phase >= g.cfg.PhaseThreshold
}

// FindHit returns the index of the circle containing p. The boundary counts
// as inside. Flat games prefer the most recently added circle.
func (g *Game) FindHit(p mgl32.Vec3) (int, bool) {
	hit := func(i int) bool {
		c := &g.slots[i]
		return !c.removed && c.Radius > 0 && p.Sub(c.Center).Len() <= c.Radius
	}

	if g.cfg.Variant == Flat {
		for i := g.n - 1; i >= 0; i-- {
			if hit(i) {
				return i, true
			}
		}
		return -1, false
	}

	for i := 0; i < g.n; i++ {
		if hit(i) {
			return i, true
		}
	}
	return -1, false
}

// Remove makes slot i inert. The slot keeps its index and colour.
func (g *Game) Remove(i int) bool {
	if i < 0 || i >= g.n || g.slots[i].removed {
		return false
	}
	g.slots[i].removed = true
	g.slots[i].Radius = 0
	return true
}

// Click removes the circle under p, if any.
func (g *Game) Click(p mgl32.Vec3) (int, bool) {
	if g.status.Terminal() {
		return -1, false
	}
	i, ok := g.FindHit(p)
	if !ok {
		return -1, false
	}
	return i, g.Remove(i)
}

func (g *Game) Circle(i int) (Circle, bool) {
	if i < 0 || i >= g.n {
		return Circle{}, false
	}
	return g.slots[i], true
}

// Circles returns a copy of the occupied slots, removed ones included.
func (g *Game) Circles() []Circle {
	out := make([]Circle, g.n)
	copy(out, g.slots[:g.n])
	return out
}

func (g *Game) Len() int {
	return g.n
}

func (g *Game) Alive() int {
	alive := 0
	for i := 0; i < g.n; i++ {
		if !g.slots[i].removed {
			alive++
		}
	}
	return alive
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Crossings() int {
	return g.crossings
}

func (g *Game) Status() Status {
	return g.status
}

// StatusText is the readout line shown to the player.
func (g *Game) StatusText() string {
	if g.status.Terminal() {
		return g.status.String()
	}
	return fmt.Sprintf("Score: %d", g.score)
}
