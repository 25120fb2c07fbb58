package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/square.frag
var squareFragment string

var SquareColour = mgl32.Vec3{1, 0, 0}

// SquareHalfSide is the half side length of the square at size 1.
const SquareHalfSide = 0.25

func init() {
	NewProgram(Program{
		Name:           "square",
		Description:    "a square growing at a fixed rate",
		Geometry:       Fullscreen,
		VertexShader:   defaultVertexShader,
		FragmentShader: squareFragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			h := SquareHalfSide * uniforms.Size
			if mgl32.Abs(pos.X()) <= h && mgl32.Abs(pos.Y()) <= h {
				return SquareColour
			}
			return Background
		},
	})
}
