// Package session runs one program: it owns the game, the orbit and the
// animation state, and turns window input into uniforms.
package session

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stewi1014/glbacteria/config"
	"github.com/stewi1014/glbacteria/game"
	"github.com/stewi1014/glbacteria/link"
	"github.com/stewi1014/glbacteria/programs"
	"github.com/stewi1014/glbacteria/scene"
	"go.uber.org/zap"
)

type Session struct {
	ID uuid.UUID

	cfg     config.Config
	program programs.Program
	game    *game.Game
	orbit   scene.Orbit
	size    float32
	rng     *rand.Rand
	status  game.Status
	base    *zap.Logger
	logger  *zap.Logger
	packed  game.Packed
}

func New(name string, cfg config.Config, logger *zap.Logger) (*Session, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Session{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		base:   logger,
		logger: logger,
	}

	if err := s.NewGame(name); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGame restarts with the named program, or the current one if name is
// empty. Pending config changes take effect here.
func (s *Session) NewGame(name string) error {
	if name == "" {
		name = s.program.Name
	}
	if name == "" {
		name = programs.GetProgram(0).Name
	}

	p, err := programs.Lookup(name)
	if err != nil {
		return err
	}

	var g *game.Game
	if p.Game {
		g, err = game.New(s.cfg.Game(variantOf(p)), s.rng)
		if err != nil {
			return err
		}
	}

	s.ID = uuid.New()
	s.program = p
	s.game = g
	s.orbit.Reset()
	s.size = 1
	s.status = game.Running
	s.logger = s.base.With(zap.Stringer("session", s.ID))

	s.logger.Info("new game",
		zap.String("program", p.Name),
		zap.Int("circles", s.alive()),
	)
	return nil
}

func variantOf(p programs.Program) game.Variant {
	if p.Geometry == programs.SphereMesh {
		return game.Sphere
	}
	return game.Flat
}

// SetConfig replaces the configuration used by the next NewGame.
func (s *Session) SetConfig(cfg config.Config) {
	s.cfg = cfg
}

func (s *Session) Program() programs.Program {
	return s.program
}

// Game is nil for programs that are not games.
func (s *Session) Game() *game.Game {
	return s.game
}

func (s *Session) Orbit() scene.Orbit {
	return s.orbit
}

// Rotate turns the sphere as a drag would, in degrees.
func (s *Session) Rotate(angleX, angleY float32) {
	s.orbit.AngleX += angleX
	s.orbit.AngleY += angleY
}

// Size is the animated scale of the square program.
func (s *Session) Size() float32 {
	return s.size
}

// Tick advances the simulation by elapsed seconds.
func (s *Session) Tick(elapsed float64) {
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		elapsed = 0
	}

	s.size = max(s.size+s.cfg.Square.GrowthRate*float32(elapsed), 0)

	if s.game == nil {
		return
	}
	s.game.Tick(elapsed)

	if status := s.game.Status(); status != s.status {
		s.status = status
		s.logger.Info("game over",
			zap.Stringer("status", status),
			zap.Int("score", s.game.Score()),
			zap.Int("crossings", s.game.Crossings()),
		)
	}
}

// PointerDown, PointerMove and PointerUp take surface pixel coordinates.
func (s *Session) PointerDown(x, y float64) {
	s.orbit.Down(x, y)
}

func (s *Session) PointerMove(x, y float64) {
	if s.program.Geometry == programs.SphereMesh {
		s.orbit.Move(x, y)
	}
}

// PointerUp ends a press. A press that did not drag is a click; it returns
// the slot of the circle removed, if any.
func (s *Session) PointerUp(x, y float64, width, height int) (int, bool) {
	if !s.orbit.Up(x, y) || s.game == nil {
		return -1, false
	}

	ndc := game.ToNDC(x, y, 0, 0, float64(width), float64(height))

	var p mgl32.Vec3
	switch s.program.Geometry {
	case programs.SphereMesh:
		var ok bool
		p, ok = scene.Update(s.orbit, aspect(width, height)).Pick(ndc, programs.SphereRadius)
		if !ok {
			return -1, false
		}
	default:
		p = ndc.Vec3(0)
	}

	i, ok := s.game.Click(p)
	if ok {
		s.logger.Debug("circle removed", zap.Int("slot", i), zap.Int("alive", s.game.Alive()))
	}
	return i, ok
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Uniforms returns the values for the next frame drawn at width x height.
func (s *Session) Uniforms(width, height int) programs.Uniforms {
	var u programs.Uniforms
	u.DefaultValues()
	u.Size = s.size

	if s.game != nil {
		s.game.Pack(&s.packed)
		u.SetCircles(&s.packed)
	}
	if s.program.Geometry == programs.SphereMesh {
		u.MVP = scene.Update(s.orbit, aspect(width, height)).MVP
	}
	return u
}

func (s *Session) StatusText() string {
	if s.game == nil {
		return s.program.Description
	}
	return s.game.StatusText()
}

func (s *Session) alive() int {
	if s.game == nil {
		return 0
	}
	return s.game.Alive()
}

// Snapshot is the state sent to the status window.
func (s *Session) Snapshot() link.Snapshot {
	snap := link.Snapshot{
		Session: s.ID.String(),
		Program: s.program.Name,
		Status:  s.StatusText(),
	}
	if s.game != nil {
		snap.Score = s.game.Score()
		snap.Alive = s.game.Alive()
		snap.Total = s.game.Len()
		snap.Crossings = s.game.Crossings()
		snap.Over = s.game.Status().Terminal()
	}
	return snap
}
