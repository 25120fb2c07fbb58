package programs

import (
	"context"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/game"
	"github.com/stewi1014/glbacteria/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = mgl32.Vec3{1, 0, 0}
	green = mgl32.Vec3{0, 1, 0}
)

func uniformsWith(circles ...mgl32.Vec4) Uniforms {
	var u Uniforms
	u.DefaultValues()
	for i, c := range circles {
		u.Circles[i] = c
	}
	u.Colours[0] = red
	u.Colours[1] = green
	u.Count = int32(len(circles))
	return u
}

func mustLookup(t *testing.T, name string) Program {
	t.Helper()
	p, err := Lookup(name)
	require.NoError(t, err)
	require.NotNil(t, p.GetPixel)
	return p
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"bacteria", "circle", "sphere", "sphere-grid", "square"}, Names())
	assert.Equal(t, NumPrograms(), len(Names()))
	assert.Equal(t, "bacteria", GetProgram(0).Name)

	_, err := Lookup("mandelbrot")
	assert.ErrorIs(t, err, ErrUnknownProgram)

	assert.Error(t, NewProgram(Program{Name: "bacteria"}))
}

func TestWireframe(t *testing.T) {
	for _, name := range Names() {
		p := mustLookup(t, name)
		assert.Equal(t, name == "sphere-grid", p.Wireframe, name)
		if p.Wireframe {
			assert.Equal(t, SphereMesh, p.Geometry, name)
		}
	}
}

func TestGetImageWithoutCPU(t *testing.T) {
	p := Program{Name: "gpu only"}
	_, err := p.GetImage(Uniforms{}, 10, 10)
	assert.ErrorIs(t, err, ErrNoCPUImplementation)
}

func TestBacteriaPixel(t *testing.T) {
	p := mustLookup(t, "bacteria")

	u := uniformsWith(
		mgl32.Vec4{0.5, 0, 0, 0.1},
		mgl32.Vec4{0.55, 0, 0, 0.1},
	)

	assert.Equal(t, red, p.GetPixel(u, mgl32.Vec2{0.5, 0}), "first index wins")
	assert.Equal(t, green, p.GetPixel(u, mgl32.Vec2{0.64, 0}))
	assert.Equal(t, BoardColour, p.GetPixel(u, mgl32.Vec2{0, 0}))
	assert.Equal(t, Background, p.GetPixel(u, mgl32.Vec2{0.9, 0.9}))

	u.Circles[0][3] = 0
	assert.Equal(t, BoardColour, p.GetPixel(u, mgl32.Vec2{0.42, 0}), "inert slots never match")

	u.Count = 0
	assert.Equal(t, BoardColour, p.GetPixel(u, mgl32.Vec2{0.6, 0}), "slots past count are ignored")
}

func TestBacteriaPixelFromGame(t *testing.T) {
	p := mustLookup(t, "bacteria")

	cfg := game.DefaultConfig(game.Flat)
	cfg.Count = 2
	g, err := game.New(cfg, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	require.NoError(t, g.Place([]game.Circle{
		{Center: mgl32.Vec3{-0.5, 0, 0}, Radius: 0.2, Colour: red},
		{Center: mgl32.Vec3{0.5, 0, 0}, Radius: 0.2, Colour: green},
	}))
	require.True(t, g.Remove(0))

	var packed game.Packed
	g.Pack(&packed)
	var u Uniforms
	u.DefaultValues()
	u.SetCircles(&packed)

	assert.Equal(t, BoardColour, p.GetPixel(u, mgl32.Vec2{-0.5, 0}))
	assert.Equal(t, green, p.GetPixel(u, mgl32.Vec2{0.5, 0}))
}

func TestSpherePixel(t *testing.T) {
	p := mustLookup(t, "sphere")

	facing := mgl32.Vec3{1, 1, 1}.Normalize()
	u := uniformsWith(facing.Vec4(0.2))
	u.MVP = scene.Update(scene.Orbit{}, 1).MVP

	assert.Equal(t, red, p.GetPixel(u, mgl32.Vec2{0, 0}))
	assert.Equal(t, Background, p.GetPixel(u, mgl32.Vec2{0.95, 0.95}))

	u.Count = 0
	got := p.GetPixel(u, mgl32.Vec2{0, 0})
	assert.Contains(t, []mgl32.Vec3{GridLineColour, GridSurfaceColour}, got)
}

func TestCircleAt3DOnSphere(t *testing.T) {
	u := uniformsWith(mgl32.Vec4{1, 0, 0, 0.03})

	// an interpolated mesh position sits inside the sphere
	colour, ok := circleAt3D(u, mgl32.Vec3{0.95, 0, 0})
	require.True(t, ok)
	assert.Equal(t, red, colour)

	_, ok = circleAt3D(u, mgl32.Vec3{0.95, 0.05, 0})
	assert.False(t, ok)
}

func TestGridColour(t *testing.T) {
	bands := mgl32.Vec2{LatBands, LongBands}

	assert.Equal(t, GridLineColour, gridColour(mgl32.Vec3{1, 0, 0}, bands), "prime meridian")
	assert.Equal(t, GridLineColour, gridColour(mgl32.Vec3{0, 1, 0}, bands), "pole")

	// middle of a cell, half a band from both lines
	theta := 7.5 * math.Pi / LatBands
	phi := 3.5 * 2 * math.Pi / LongBands
	cell := mgl32.Vec3{
		float32(math.Cos(phi) * math.Sin(theta)),
		float32(math.Cos(theta)),
		float32(math.Sin(phi) * math.Sin(theta)),
	}
	assert.Equal(t, GridSurfaceColour, gridColour(cell, bands))
}

func TestCirclePixel(t *testing.T) {
	p := mustLookup(t, "circle")
	var u Uniforms
	u.DefaultValues()

	assert.Equal(t, BoardColour, p.GetPixel(u, mgl32.Vec2{0, 0}))
	assert.Equal(t, Background, p.GetPixel(u, mgl32.Vec2{0.8, 0}), "boundary is outside")
}

func TestSquarePixel(t *testing.T) {
	p := mustLookup(t, "square")
	var u Uniforms
	u.DefaultValues()

	assert.Equal(t, SquareColour, p.GetPixel(u, mgl32.Vec2{0.2, -0.2}))
	assert.Equal(t, Background, p.GetPixel(u, mgl32.Vec2{0.3, 0}))

	u.Size = 2
	assert.Equal(t, SquareColour, p.GetPixel(u, mgl32.Vec2{0.3, 0}))

	u.Size = 0
	assert.Equal(t, SquareColour, p.GetPixel(u, mgl32.Vec2{0, 0}), "a zero square is a point")
	assert.Equal(t, Background, p.GetPixel(u, mgl32.Vec2{0.01, 0}))
}

func TestToImage(t *testing.T) {
	p := mustLookup(t, "bacteria")
	var u Uniforms
	u.DefaultValues()

	pimg, err := p.GetImage(u, 4, 4)
	require.NoError(t, err)
	img := ToImage(pimg)

	b := img.Bounds()
	require.Equal(t, 4, b.Dx())
	require.Equal(t, 4, b.Dy())

	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	assert.Equal(t, black, img.At(b.Min.X, b.Min.Y))
	assert.Equal(t, white, img.At(b.Min.X+1, b.Min.Y+1))
	assert.Equal(t, white, img.At(b.Min.X+2, b.Min.Y+2))
	assert.Equal(t, black, img.At(b.Max.X-1, b.Max.Y-1))
}

func TestToImageYUp(t *testing.T) {
	p := mustLookup(t, "bacteria")
	u := uniformsWith(mgl32.Vec4{0, 0.5, 0, 0.3})

	pimg, err := p.GetImage(u, 8, 8)
	require.NoError(t, err)
	img := ToImage(pimg)
	b := img.Bounds()

	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.At(b.Min.X+4, b.Min.Y+1), "top row is +y")
	assert.NotEqual(t, color.NRGBA{255, 0, 0, 255}, img.At(b.Min.X+4, b.Max.Y-2))
}

func TestBufferImage(t *testing.T) {
	p := mustLookup(t, "sphere-grid")
	var u Uniforms
	u.DefaultValues()
	u.MVP = scene.Update(scene.Orbit{AngleX: 20, AngleY: 40}, 1.5).MVP

	pimg, err := p.GetImage(u, 120, 80)
	require.NoError(t, err)

	direct := ToImage(pimg)
	wrapped := ToImage(pimg)
	progress := WrapWithProgress(&wrapped)

	buff := BufferImage(wrapped)
	require.NoError(t, buff.Buffer(context.Background()))
	assert.InDelta(t, 1, progress(), 1e-9)

	db := direct.Bounds()
	for x := 0; x < 120; x += 7 {
		for y := 0; y < 80; y += 5 {
			assert.Equal(t, direct.At(db.Min.X+x, db.Min.Y+y), buff.At(x, y))
		}
	}
}

func TestBufferImageCancelled(t *testing.T) {
	p := mustLookup(t, "circle")
	var u Uniforms
	u.DefaultValues()

	pimg, err := p.GetImage(u, 200, 200)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, BufferImage(ToImage(pimg)).Buffer(ctx), context.Canceled)
}

func TestAntiAlias9x(t *testing.T) {
	p := mustLookup(t, "circle")
	var u Uniforms
	u.DefaultValues()

	pimg, err := p.GetImage(u, 100, 100)
	require.NoError(t, err)
	aa := AntiAlias9x(pimg, 1)

	inside := aa.GetPixel(mgl32.Vec2{0, 0})
	assert.InDelta(t, 1, inside.X(), 1e-5)

	// straddling the board edge blends white and black
	edge := aa.GetPixel(mgl32.Vec2{0.8, 0})
	assert.Greater(t, edge.X(), float32(0.1))
	assert.Less(t, edge.X(), float32(0.9))
}
