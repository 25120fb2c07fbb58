package game

import "github.com/go-gl/mathgl/mgl32"

// Packed is the circle set laid out the way the shaders read it. Index i of
// every array describes the same slot; inert slots have radius 0.
type Packed struct {
	Centers [Capacity]mgl32.Vec3
	Radii   [Capacity]float32
	Colours [Capacity]mgl32.Vec3
	Count   int32
}

func (g *Game) Pack(p *Packed) {
	*p = Packed{Count: int32(g.n)}
	for i := 0; i < g.n; i++ {
		c := &g.slots[i]
		p.Centers[i] = c.Center
		p.Colours[i] = c.Colour
		if !c.removed {
			p.Radii[i] = c.Radius
		}
	}
}

// Circles4 packs centre and radius into one vec4 per slot.
func (p *Packed) Circles4() (out [Capacity]mgl32.Vec4) {
	for i := range out {
		out[i] = p.Centers[i].Vec4(p.Radii[i])
	}
	return out
}
