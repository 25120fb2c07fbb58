package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/scene"
)

//go:embed shaders/sphere.frag
var sphereFragment string

// SphereRadius is the radius of the mesh the sphere programs draw.
const SphereRadius = 1

func sphereGetPixel(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
	surface, ok := scene.Pick(uniforms.MVP, pos, SphereRadius)
	if !ok {
		return Background
	}

	if colour, ok := circleAt3D(uniforms, surface); ok {
		return colour
	}
	return gridColour(surface, uniforms.Bands)
}

func init() {
	NewProgram(Program{
		Name:           "sphere",
		Description:    "bacteria on a sphere; drag to rotate, click to poison",
		Geometry:       SphereMesh,
		Game:           true,
		VertexShader:   sphereVertexShader,
		FragmentShader: sphereFragment,
		GetPixel:       sphereGetPixel,
	})

	NewProgram(Program{
		Name:           "sphere-grid",
		Description:    "latitude/longitude grid sphere; drag to rotate",
		Geometry:       SphereMesh,
		Wireframe:      true,
		VertexShader:   sphereVertexShader,
		FragmentShader: sphereFragment,
		GetPixel:       sphereGetPixel,
	})
}
