// Package shader provides OpenGL shader compilation and the GL-backed gfx.Program.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(log), "\x00"))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, strings.TrimRight(string(log), "\x00"))
	}

	return shader, nil
}

// Program is a linked GL program. Its active uniforms are enumerated once when it
// is created, so Locate never queries the driver.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a program from GLSL sources. Requires a current GL context.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, uniforms: activeUniforms(id)}, nil
}

func activeUniforms(program uint32) map[string]int32 {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	uniforms := make(map[string]int32, count)
	buf := make([]uint8, maxLen+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), maxLen+1, &length, &size, &xtype, &buf[0])
		name := uniformName(string(buf[:length]))
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			// uniform block members have no location
			continue
		}
		uniforms[name] = loc
	}
	return uniforms
}

// uniformName strips the "[0]" suffix drivers report for array uniforms.
func uniformName(raw string) string {
	return strings.TrimSuffix(raw, "[0]")
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Uniforms returns the number of active uniforms.
func (p *Program) Uniforms() int { return len(p.uniforms) }

// Locate implements gfx.Program.
func (p *Program) Locate(name string) (gfx.Location, bool) {
	loc, ok := p.uniforms[name]
	return gfx.Location(loc), ok
}

// Use implements gfx.Program.
func (p *Program) Use() { gl.UseProgram(p.id) }

// SetMat4 implements gfx.Program.
func (p *Program) SetMat4(loc gfx.Location, m math.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, m.Ptr())
}

// SetVec3 implements gfx.Program.
func (p *Program) SetVec3(loc gfx.Location, v math.Vec3) {
	gl.Uniform3f(int32(loc), v.X, v.Y, v.Z)
}

// SetVec4 implements gfx.Program.
func (p *Program) SetVec4(loc gfx.Location, v math.Vec4) {
	gl.Uniform4f(int32(loc), v[0], v[1], v[2], v[3])
}

// SetFloat implements gfx.Program.
func (p *Program) SetFloat(loc gfx.Location, f float32) {
	gl.Uniform1f(int32(loc), f)
}

// SetTexture implements gfx.Program.
func (p *Program) SetTexture(loc gfx.Location, unit int, tex gfx.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(Target(tex.Kind), tex.ID)
	gl.Uniform1i(int32(loc), int32(unit))
}

// Delete implements gfx.Program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Target returns the GL bind target for a texture kind.
func Target(kind gfx.TextureKind) uint32 {
	if kind == gfx.TextureCube {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}
