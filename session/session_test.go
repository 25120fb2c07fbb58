package session

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/game"
	"github.com/stewi1014/glbacteria/programs"
	"github.com/stewi1014/glbacteria/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSession(t *testing.T, name string) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	s, err := New(name, cfg, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNewPicksVariant(t *testing.T) {
	flat := newSession(t, "bacteria")
	require.NotNil(t, flat.Game())
	assert.Equal(t, game.Flat, flat.Game().Config().Variant)
	assert.Equal(t, 10, flat.Game().Len())

	sphere := newSession(t, "sphere")
	require.NotNil(t, sphere.Game())
	assert.Equal(t, game.Sphere, sphere.Game().Config().Variant)

	grid := newSession(t, "sphere-grid")
	assert.Nil(t, grid.Game())
	assert.Equal(t, grid.Program().Description, grid.StatusText())

	_, err := New("mandelbrot", config.Default(), zap.NewNop())
	assert.ErrorIs(t, err, programs.ErrUnknownProgram)
}

func TestSameSeedSameBoard(t *testing.T) {
	a := newSession(t, "bacteria")
	b := newSession(t, "bacteria")
	assert.Equal(t, a.Game().Circles(), b.Game().Circles())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFlatClick(t *testing.T) {
	s := newSession(t, "bacteria")
	require.NoError(t, s.Game().Place([]game.Circle{
		{Center: mgl32.Vec3{0.5, 0.5, 0}, Radius: 0.1},
		{Center: mgl32.Vec3{-0.5, -0.5, 0}, Radius: 0.1},
	}))

	// (0.5, 0.5) in NDC is (300, 100) on a 400x400 surface
	s.PointerDown(300, 100)
	i, ok := s.PointerUp(300, 100, 400, 400)
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, s.Game().Alive())

	s.PointerDown(200, 200)
	_, ok = s.PointerUp(200, 200, 400, 400)
	assert.False(t, ok, "miss")
}

func TestDragIsNotAClick(t *testing.T) {
	s := newSession(t, "sphere")
	front := mgl32.Vec3{1, 1, 1}.Normalize()
	require.NoError(t, s.Game().Place([]game.Circle{{Center: front, Radius: 0.5}}))

	s.PointerDown(200, 200)
	s.PointerMove(260, 200)
	_, ok := s.PointerUp(260, 200, 400, 400)
	assert.False(t, ok)
	assert.InDelta(t, 30, s.Orbit().AngleY, 1e-4)
	assert.Equal(t, 1, s.Game().Alive())
}

func TestSphereClick(t *testing.T) {
	s := newSession(t, "sphere")
	front := mgl32.Vec3{1, 1, 1}.Normalize()
	require.NoError(t, s.Game().Place([]game.Circle{
		{Center: front.Mul(-1), Radius: 0.3},
		{Center: front, Radius: 0.3},
	}))

	s.PointerDown(200, 200)
	i, ok := s.PointerUp(201, 200, 400, 400)
	require.True(t, ok)
	assert.Equal(t, 1, i, "only the near side is hit")
}

func TestFlatIgnoresDrag(t *testing.T) {
	s := newSession(t, "bacteria")
	s.PointerDown(0, 0)
	s.PointerMove(100, 100)
	assert.Zero(t, s.Orbit().AngleX)
	assert.Zero(t, s.Orbit().AngleY)
}

func TestTickAndStatus(t *testing.T) {
	s := newSession(t, "sphere")
	require.NoError(t, s.Game().Place([]game.Circle{
		{Center: mgl32.Vec3{1, 0, 0}, Radius: 0.95},
		{Center: mgl32.Vec3{-1, 0, 0}, Radius: 0.95},
	}))

	s.Tick(0.1)
	assert.Equal(t, "Score: 2", s.StatusText())

	s.Tick(0.5)
	snap := s.Snapshot()
	assert.True(t, snap.Over)
	assert.Equal(t, "Game Over: Ya Lost!", snap.Status)
	assert.Equal(t, 2, snap.Crossings)
	assert.Equal(t, s.ID.String(), snap.Session)
	assert.Equal(t, "sphere", snap.Program)
}

func TestSquareSize(t *testing.T) {
	s := newSession(t, "square")
	s.Tick(2)
	assert.InDelta(t, 1.2, s.Size(), 1e-6)

	cfg := config.Default()
	cfg.Square.GrowthRate = -1
	s.SetConfig(cfg)
	s.Tick(5)
	assert.Zero(t, s.Size(), "clamped at zero")

	s.Tick(-3)
	assert.Zero(t, s.Size())
	assert.Equal(t, float32(0), s.Uniforms(100, 100).Size)
}

func TestNewGameAppliesConfig(t *testing.T) {
	s := newSession(t, "bacteria")
	first := s.ID

	cfg := config.Default()
	cfg.Flat.Count = 3
	s.SetConfig(cfg)
	assert.Equal(t, 10, s.Game().Len(), "pending until the next game")

	require.NoError(t, s.NewGame(""))
	assert.Equal(t, 3, s.Game().Len())
	assert.NotEqual(t, first, s.ID)

	require.NoError(t, s.NewGame("circle"))
	assert.Nil(t, s.Game())
	assert.Error(t, s.NewGame("nope"))
	assert.Equal(t, "circle", s.Program().Name)
}

func TestUniforms(t *testing.T) {
	s := newSession(t, "sphere")
	require.NoError(t, s.Game().Place([]game.Circle{
		{Center: mgl32.Vec3{0, 1, 0}, Radius: 0.2, Colour: mgl32.Vec3{1, 0, 0}},
	}))

	u := s.Uniforms(400, 200)
	assert.Equal(t, int32(1), u.Count)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 0.2}, u.Circles[0])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, u.Colours[0])
	assert.Equal(t, scene.Update(scene.Orbit{}, 2).MVP, u.MVP)

	flat := newSession(t, "bacteria")
	assert.Equal(t, mgl32.Ident4(), flat.Uniforms(400, 200).MVP)
}
