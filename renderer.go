package main

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glbacteria/mesh"
	"github.com/stewi1014/glbacteria/programs"
	"go.uber.org/zap"
)

// Renderer owns the GL objects for the current program. Every method must be
// called on the thread holding the GL context.
type Renderer struct {
	logger *zap.Logger

	fullscreen geometry
	sphere     geometry

	program          uint32
	current          programs.Program
	uniformLocations map[string]int32
}

type geometry struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	components int32
	count      int32
	// line indices follow the triangle indices in the element buffer
	lineCount int32
}

// NewRenderer initialises GL on the current context and uploads both
// geometries.
func NewRenderer(logger *zap.Logger, debug bool) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	logger.Info("OpenGL initialised", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	r := &Renderer{logger: logger}

	gl.DebugMessageCallback(r.glDebugMessage, nil)
	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	verticies := []float32{
		-3, -2,
		0, 3,
		3, -2,
	}
	r.fullscreen = newGeometry(verticies, nil, nil, 2)

	sphere, err := mesh.NewSphere(programs.SphereRadius, programs.LatBands, programs.LongBands)
	if err != nil {
		return nil, fmt.Errorf("sphere mesh: %w", err)
	}
	r.sphere = newGeometry(sphere.Vertices, sphere.Triangles, sphere.Lines, 3)

	return r, nil
}

func newGeometry(verticies []float32, triangles, lines []uint16, components int32) geometry {
	g := geometry{
		components: components,
		count:      int32(len(verticies)) / components,
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verticies)*4, gl.Ptr(verticies), gl.STATIC_DRAW)

	if len(triangles) > 0 {
		indices := append(append([]uint16{}, triangles...), lines...)
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)
		g.count = int32(len(triangles))
		g.lineCount = int32(len(lines))
	}

	gl.BindVertexArray(0)
	return g
}

func (g *geometry) draw(wireframe bool) {
	gl.BindVertexArray(g.vao)
	if g.ebo == 0 {
		gl.DrawArrays(gl.TRIANGLES, 0, g.count)
		return
	}

	gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_SHORT, 0)
	if wireframe && g.lineCount > 0 {
		// lines share the triangle edges, so they must pass an equal depth test
		gl.DepthFunc(gl.LEQUAL)
		gl.DrawElementsWithOffset(gl.LINES, g.lineCount, gl.UNSIGNED_SHORT, uintptr(g.count)*2)
		gl.DepthFunc(gl.LESS)
	}
}

func (g *geometry) delete() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
}

func (r *Renderer) geometry(p programs.Program) *geometry {
	if p.Geometry == programs.SphereMesh {
		return &r.sphere
	}
	return &r.fullscreen
}

func (r *Renderer) glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		severityStr = "notification"
	}

	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "deprecatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_POP_GROUP:
		typeStr = "popGroup"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		typeStr = "pushGroup"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	fields := []zap.Field{
		zap.String("source", sourceStr),
		zap.String("severity", severityStr),
		zap.String("type", typeStr),
		zap.Uint32("id", id),
	}
	if gltype == gl.DEBUG_TYPE_ERROR {
		r.logger.Error(message, fields...)
	} else {
		r.logger.Debug(message, fields...)
	}
}

// LoadProgram compiles and links p, replacing the current program.
func (r *Renderer) LoadProgram(p programs.Program) error {
	vertexShader, err := compileShader(p.VertexShader+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(p.FragmentShader+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindFragDataLocation(program, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return fmt.Errorf("failed to link program %s: %v", p.Name, log)
	}

	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.program = program
	r.current = p
	gl.UseProgram(r.program)

	r.uniformLocations = make(map[string]int32)
	t := reflect.TypeOf(programs.Uniforms{})
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("uniform")
		r.uniformLocations[name] = gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
	}

	g := r.geometry(p)
	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexAttrib := uint32(gl.GetAttribLocation(r.program, gl.Str("vert\x00")))
	gl.EnableVertexAttribArray(vertexAttrib)
	gl.VertexAttribPointerWithOffset(vertexAttrib, g.components, gl.FLOAT, false, g.components*4, 0)

	r.logger.Info("program loaded", zap.String("program", p.Name))
	return nil
}

func (r *Renderer) Program() programs.Program {
	return r.current
}

func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw clears the frame and draws the current program with u.
func (r *Renderer) Draw(u *programs.Uniforms) {
	gl.ClearColor(programs.Background.X(), programs.Background.Y(), programs.Background.Z(), 1)

	if r.current.Geometry == programs.SphereMesh {
		gl.Enable(gl.DEPTH_TEST)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	} else {
		gl.Disable(gl.DEPTH_TEST)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}

	gl.UseProgram(r.program)
	r.loadUniforms(u)
	r.geometry(r.current).draw(r.current.Wireframe)
}

func (r *Renderer) Delete() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	r.fullscreen.delete()
	r.sphere.delete()
}

func (r *Renderer) loadUniforms(u *programs.Uniforms) {
	v := reflect.ValueOf(u).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)

		ptr := f.Addr().UnsafePointer()
		loc := r.uniformLocations[v.Type().Field(i).Tag.Get("uniform")]
		if loc < 0 {
			continue
		}

		count := int32(1)

	SwitchElem:
		switch f.Type() {
		case reflect.TypeOf(mgl32.Vec2{}):
			gl.Uniform2fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Vec3{}):
			gl.Uniform3fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Vec4{}):
			gl.Uniform4fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Mat4{}):
			gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr))
			continue
		case reflect.TypeOf(int32(0)):
			gl.Uniform1iv(loc, count, (*int32)(ptr))
			continue
		case reflect.TypeOf(float32(0)):
			gl.Uniform1fv(loc, count, (*float32)(ptr))
			continue
		}

		if f.Kind() == reflect.Array {
			count = int32(f.Len())
			f = f.Index(0)
			goto SwitchElem
		}

		r.logger.Warn("unsupported uniform type", zap.Stringer("type", f.Type()))
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader failed to compile: %v", log)
	}

	return shader, nil
}
