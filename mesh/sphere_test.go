package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSphereCounts(t *testing.T) {
	s, err := NewSphere(1, 15, 20)
	require.NoError(t, err)

	assert.Equal(t, 16*21, s.VertexCount())
	assert.Len(t, s.Lines, 15*20*4)
	assert.Len(t, s.Triangles, 15*20*6)

	for _, i := range s.Lines {
		assert.Less(t, int(i), s.VertexCount())
	}
	for _, i := range s.Triangles {
		assert.Less(t, int(i), s.VertexCount())
	}
}

func TestNewSphereOnSurface(t *testing.T) {
	const radius = 2.5
	s, err := NewSphere(radius, 30, 30)
	require.NoError(t, err)

	for i := 0; i < s.VertexCount(); i++ {
		x, y, z := s.Vertices[i*3], s.Vertices[i*3+1], s.Vertices[i*3+2]
		l := math.Sqrt(float64(x*x + y*y + z*z))
		assert.InDelta(t, radius, l, 1e-5)
	}

	// poles
	assert.InDelta(t, radius, s.Vertices[1], 1e-6)
	assert.InDelta(t, -radius, s.Vertices[len(s.Vertices)-2], 1e-5)
}

func TestNewSphereRejectsBadBands(t *testing.T) {
	_, err := NewSphere(1, 0, 10)
	assert.Error(t, err)

	_, err = NewSphere(1, 300, 300)
	assert.Error(t, err)
}

func TestSphericalAxes(t *testing.T) {
	assert.True(t, FromSpherical(1, 0, 0).ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6), "theta 0 is +y")
	assert.True(t, FromSpherical(2, math.Pi/2, 0).ApproxEqualThreshold(mgl32.Vec3{2, 0, 0}, 1e-6))
	assert.True(t, FromSpherical(1, math.Pi/2, math.Pi/2).ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6))
}

func TestToSphericalRoundTrip(t *testing.T) {
	for _, c := range []struct{ theta, phi float32 }{
		{0.3, 0.1},
		{1.2, 3.5},
		{2.9, 6.0},
	} {
		r, theta, phi := ToSpherical(FromSpherical(1.5, c.theta, c.phi))
		assert.InDelta(t, 1.5, r, 1e-5)
		assert.InDelta(t, c.theta, theta, 1e-4)
		assert.InDelta(t, c.phi, phi, 1e-4)
	}

	_, theta, _ := ToSpherical(mgl32.Vec3{0, -1, 0})
	assert.InDelta(t, math.Pi, theta, 1e-6)

	r, _, _ := ToSpherical(mgl32.Vec3{})
	assert.Zero(t, r)
}
