package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/circle.frag
var circleFragment string

func init() {
	NewProgram(Program{
		Name:           "circle",
		Description:    "the empty board",
		Geometry:       Fullscreen,
		VertexShader:   defaultVertexShader,
		FragmentShader: circleFragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			if pos.Sub(uniforms.Board.Vec2()).Len() < uniforms.Board.Z() {
				return BoardColour
			}
			return Background
		},
	})
}
