package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/bacteria.frag
var bacteriaFragment string

func init() {
	NewProgram(Program{
		Name:           "bacteria",
		Description:    "click the growing circles away before two of them take over",
		Geometry:       Fullscreen,
		Game:           true,
		VertexShader:   defaultVertexShader,
		FragmentShader: bacteriaFragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			if colour, ok := circleAt2D(uniforms, pos); ok {
				return colour
			}

			if pos.Sub(uniforms.Board.Vec2()).Len() <= uniforms.Board.Z() {
				return BoardColour
			}
			return Background
		},
	})
}
