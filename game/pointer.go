package game

import "github.com/go-gl/mathgl/mgl32"

// ToNDC maps a pointer position in surface pixels to normalised device
// coordinates. Pixel y grows downward, NDC y grows upward.
func ToNDC(clientX, clientY, left, top, width, height float64) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	x := (clientX-left)/width*2 - 1
	y := -((clientY-top)/height*2 - 1)
	return mgl32.Vec2{float32(x), float32(y)}
}
