// Package opengl provides GLFW input and OpenGL 4.1 painting for piemenu
// hosts.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/piemenu"
)

// vertex matches the attribute layout of the painter's shader.
type vertex struct {
	Pos   [2]float32 // Position (x, y)
	Color uint32     // RGBA packed color
}

// Painter batches solid quads and draws them in one call per Flush.
// It is enough to paint the overlay, bounced children and menu buttons.
type Painter struct {
	shader   uint32
	vao, vbo uint32
	ebo      uint32
	projLoc  int32
	width    int
	height   int

	vtx []vertex
	idx []uint32
}

// Vertex shader source
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    Color = aColor;
}
` + "\x00"

// Fragment shader source
const fragmentShaderSource = `
#version 410 core
in vec4 Color;

out vec4 FragColor;

void main() {
    FragColor = Color;
}
` + "\x00"

// NewPainter creates a painter for a viewport of the given size.
// A current OpenGL 4.1 context is required.
func NewPainter(width, height int) (*Painter, error) {
	p := &Painter{
		width:  width,
		height: height,
	}

	var err error
	p.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	p.projLoc = gl.GetUniformLocation(p.shader, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)

	gl.GenBuffers(1, &p.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.ebo)

	stride := int32(unsafe.Sizeof(vertex{}))

	// Position attribute
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (normalized uint8x4)
	gl.VertexAttribPointerWithOffset(1, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(vertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	return p, nil
}

// Resize updates the viewport size.
func (p *Painter) Resize(width, height int) {
	p.width = width
	p.height = height
}

// FillRect queues a solid rectangle. Fully transparent rectangles are skipped.
func (p *Painter) FillRect(r piemenu.Rect, color uint32) {
	if _, _, _, a := piemenu.UnpackRGBA(color); a == 0 || r.Empty() {
		return
	}
	base := uint32(len(p.vtx))
	p.vtx = append(p.vtx,
		vertex{Pos: [2]float32{r.X, r.Y}, Color: color},
		vertex{Pos: [2]float32{r.X + r.W, r.Y}, Color: color},
		vertex{Pos: [2]float32{r.X + r.W, r.Y + r.H}, Color: color},
		vertex{Pos: [2]float32{r.X, r.Y + r.H}, Color: color},
	)
	p.idx = append(p.idx, base, base+1, base+2, base, base+2, base+3)
}

// FillOverlay queues the dimming overlay over the whole viewport. With
// OverlayAround the hole rectangle is left uncovered so the pressed child
// stays visible.
func (p *Painter) FillOverlay(color uint32, style piemenu.OverlayStyle, hole piemenu.Rect) {
	full := piemenu.Rect{W: float32(p.width), H: float32(p.height)}
	switch style {
	case piemenu.OverlayNone:
		return
	case piemenu.OverlayBehind:
		p.FillRect(full, color)
		return
	}

	// Four bands around the hole.
	p.FillRect(piemenu.Rect{X: 0, Y: 0, W: full.W, H: hole.Y}, color)
	p.FillRect(piemenu.Rect{X: 0, Y: hole.Y + hole.H, W: full.W, H: full.H - hole.Y - hole.H}, color)
	p.FillRect(piemenu.Rect{X: 0, Y: hole.Y, W: hole.X, H: hole.H}, color)
	p.FillRect(piemenu.Rect{X: hole.X + hole.W, Y: hole.Y, W: full.W - hole.X - hole.W, H: hole.H}, color)
}

// Flush draws all queued quads and clears the queue.
func (p *Painter) Flush() {
	if len(p.idx) == 0 {
		return
	}

	// Save GL state
	var lastProgram int32
	var blendEnabled, depthEnabled bool
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	blendEnabled = gl.IsEnabled(gl.BLEND)
	depthEnabled = gl.IsEnabled(gl.DEPTH_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(p.shader)
	proj := orthoMatrix(0, float32(p.width), float32(p.height), 0, -1, 1)
	gl.UniformMatrix4fv(p.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(p.vtx)*int(unsafe.Sizeof(vertex{})), gl.Ptr(p.vtx), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.idx)*4, gl.Ptr(p.idx), gl.STREAM_DRAW)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(p.idx)), gl.UNSIGNED_INT, 0)

	// Restore GL state
	gl.BindVertexArray(0)
	gl.UseProgram(uint32(lastProgram))
	if !blendEnabled {
		gl.Disable(gl.BLEND)
	}
	if depthEnabled {
		gl.Enable(gl.DEPTH_TEST)
	}

	p.vtx = p.vtx[:0]
	p.idx = p.idx[:0]
}

// Delete releases OpenGL resources.
func (p *Painter) Delete() {
	if p.ebo != 0 {
		gl.DeleteBuffers(1, &p.ebo)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.shader != 0 {
		gl.DeleteProgram(p.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// The shaders are linked into the program now.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
