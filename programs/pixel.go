package programs

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/game"
	"github.com/stewi1014/glbacteria/mesh"
)

var (
	GridLineColour    = mgl32.Vec3{1, 1, 1}
	GridSurfaceColour = mgl32.Vec3{0.15, 0.15, 0.15}
)

const gridLineWidth = 0.04

func circleCount(u Uniforms) int {
	n := int(u.Count)
	if n > game.Capacity {
		n = game.Capacity
	}
	return n
}

// circleAt2D mirrors the circle loop of bacteria.frag.
func circleAt2D(u Uniforms, pos mgl32.Vec2) (mgl32.Vec3, bool) {
	for i := 0; i < circleCount(u); i++ {
		c := u.Circles[i]
		if c.W() > 0 && pos.Sub(c.Vec2()).Len() <= c.W() {
			return u.Colours[i], true
		}
	}
	return mgl32.Vec3{}, false
}

// circleAt3D mirrors the circle loop of sphere.frag. Distances are taken on
// the unit sphere, not on the flat mesh triangles.
func circleAt3D(u Uniforms, surface mgl32.Vec3) (mgl32.Vec3, bool) {
	for i := 0; i < circleCount(u); i++ {
		c := u.Circles[i]
		if c.W() > 0 && surface.Normalize().Sub(c.Vec3()).Len() < c.W() {
			return u.Colours[i], true
		}
	}
	return mgl32.Vec3{}, false
}

func nearLine(v float64) float64 {
	f := v - math.Floor(v)
	return math.Min(f, 1-f)
}

func gridColour(surface mgl32.Vec3, bands mgl32.Vec2) mgl32.Vec3 {
	_, theta, phi := mesh.ToSpherical(surface)

	if nearLine(float64(theta*bands.X()/math.Pi)) < gridLineWidth ||
		nearLine(float64(phi*bands.Y()/(2*math.Pi))) < gridLineWidth {
		return GridLineColour
	}
	return GridSurfaceColour
}
