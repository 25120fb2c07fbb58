package programs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/game"
)

// Uniforms is uploaded field by field; the tag is the GLSL name.
// Programs ignore the fields they do not declare.
type Uniforms struct {
	MVP     mgl32.Mat4                `uniform:"mvp"`
	Circles [game.Capacity]mgl32.Vec4 `uniform:"circles"`
	Colours [game.Capacity]mgl32.Vec3 `uniform:"colours"`
	Count   int32                     `uniform:"count"`
	Board   mgl32.Vec3                `uniform:"board"`
	Size    float32                   `uniform:"size"`
	Bands   mgl32.Vec2                `uniform:"bands"`
}

const (
	LatBands  = 15
	LongBands = 20
)

func (u *Uniforms) DefaultValues() {
	*u = Uniforms{
		MVP:   mgl32.Ident4(),
		Board: mgl32.Vec3{0, 0, 0.8},
		Size:  1,
		Bands: mgl32.Vec2{LatBands, LongBands},
	}
}

// SetCircles copies a packed game into the circle uniforms.
func (u *Uniforms) SetCircles(p *game.Packed) {
	u.Circles = p.Circles4()
	u.Colours = p.Colours
	u.Count = p.Count
}
