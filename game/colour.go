package game

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// HueToRGB maps a hue in degrees to a fully saturated colour.
// Hues outside [0, 360) are wrapped.
func HueToRGB(hue float64) mgl32.Vec3 {
	if math.IsNaN(hue) || math.IsInf(hue, 0) {
		hue = 0
	}
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}

	const chroma = 1
	x := float32(chroma * (1 - math.Abs(math.Mod(hue/60, 2)-1)))

	switch {
	case hue < 60:
		return mgl32.Vec3{chroma, x, 0}
	case hue < 120:
		return mgl32.Vec3{x, chroma, 0}
	case hue < 180:
		return mgl32.Vec3{0, chroma, x}
	case hue < 240:
		return mgl32.Vec3{0, x, chroma}
	case hue < 300:
		return mgl32.Vec3{x, 0, chroma}
	default:
		return mgl32.Vec3{chroma, 0, x}
	}
}

// RandomColour picks a uniformly distributed hue.
func RandomColour(rng *rand.Rand) mgl32.Vec3 {
	return HueToRGB(rng.Float64() * 360)
}
