package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FromSpherical is mgl32.SphericalToCartesian with y as the polar axis.
// theta is measured from +y, phi from +x towards +z.
func FromSpherical(r, theta, phi float32) mgl32.Vec3 {
	v := mgl32.SphericalToCartesian(r, theta, phi)
	return mgl32.Vec3{v[0], v[2], v[1]}
}

// ToSpherical inverts FromSpherical. phi is in [0, 2π).
func ToSpherical(v mgl32.Vec3) (r, theta, phi float32) {
	r, theta, phi = mgl32.CartesianToSpherical(mgl32.Vec3{v[0], v[2], v[1]})
	if r == 0 {
		return 0, 0, 0
	}
	if math.IsNaN(float64(theta)) {
		// rounding pushed |y|/r past 1
		theta = 0
		if v[1] < 0 {
			theta = math.Pi
		}
	}
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return r, theta, phi
}
