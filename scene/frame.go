// Package scene holds the per-frame camera state of the sphere programs.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	Eye = mgl32.Vec3{3, 3, 3}
	Up  = mgl32.Vec3{0, 1, 0}
)

const (
	FovY = 45
	Near = 0.1
	Far  = 100
)

type Frame struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	MVP        mgl32.Mat4
}

// Update builds the matrices for one frame from the orbit angles.
func Update(o Orbit, aspect float32) Frame {
	if aspect <= 0 || math.IsNaN(float64(aspect)) {
		aspect = 1
	}

	f := Frame{
		Projection: mgl32.Perspective(mgl32.DegToRad(FovY), aspect, Near, Far),
		View:       mgl32.LookAtV(Eye, mgl32.Vec3{}, Up),
		Model: mgl32.HomogRotate3DX(mgl32.DegToRad(o.AngleX)).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(o.AngleY))),
	}
	f.MVP = f.Projection.Mul4(f.View).Mul4(f.Model)
	return f
}

func (f Frame) Pick(ndc mgl32.Vec2, radius float32) (mgl32.Vec3, bool) {
	return Pick(f.MVP, ndc, radius)
}

// Pick casts a ray through ndc and returns the nearest point where it meets
// the sphere of the given radius at the model origin, in model space.
func Pick(mvp mgl32.Mat4, ndc mgl32.Vec2, radius float32) (mgl32.Vec3, bool) {
	if mvp.Det() == 0 {
		return mgl32.Vec3{}, false
	}
	inv := mvp.Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1, 1})
	if near.W() == 0 || far.W() == 0 {
		return mgl32.Vec3{}, false
	}

	origin := near.Vec3().Mul(1 / near.W())
	dir := far.Vec3().Mul(1 / far.W()).Sub(origin).Normalize()

	b := origin.Dot(dir)
	c := origin.Dot(origin) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return mgl32.Vec3{}, false
	}

	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return mgl32.Vec3{}, false
		}
	}

	return origin.Add(dir.Mul(t)), true
}
