package programs

import (
	_ "embed"
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoCPUImplementation = errors.New("program does not have a CPU implementation")
	ErrUnknownProgram      = errors.New("unknown program")
)

var (
	Background  = mgl32.Vec3{0, 0, 0}
	BoardColour = mgl32.Vec3{1, 1, 1}
)

//go:embed shaders/default.vert
var defaultVertexShader string

//go:embed shaders/sphere.vert
var sphereVertexShader string

// Geometry is what the vertex shader is fed.
type Geometry int

const (
	// Fullscreen draws one triangle covering the viewport.
	Fullscreen Geometry = iota
	// SphereMesh draws the tessellated unit sphere.
	SphereMesh
)

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

func Lookup(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("%w %q", ErrUnknownProgram, name)
}

func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

func NewProgram(p Program) error {
	if _, err := Lookup(p.Name); err == nil {
		return fmt.Errorf("program %q already registered", p.Name)
	}
	programs = append(programs, p)
	return nil
}

var programs []Program

// PixelFunc is the CPU twin of a fragment shader. pos is in normalised
// device coordinates.
type PixelFunc func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3

type Program struct {
	Name        string
	Description string
	Geometry    Geometry
	Game        bool
	// Wireframe also draws the mesh line indices over the surface.
	Wireframe      bool
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}

func (p *Program) GetImage(uniforms Uniforms, width, height int) (Image, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}

	return &programImage{
		uniforms:  uniforms,
		bounds:    image.Rect(-width/2, -height/2, width-width/2, height-height/2),
		pixelFunc: p.GetPixel,
	}, nil
}

type Image interface {
	GetPixel(mgl32.Vec2) mgl32.Vec3
	Bounds() image.Rectangle
}

type programImage struct {
	uniforms  Uniforms
	bounds    image.Rectangle
	pixelFunc PixelFunc
}

func (i *programImage) GetPixel(pos mgl32.Vec2) mgl32.Vec3 {
	return i.pixelFunc(i.uniforms, pos)
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}
