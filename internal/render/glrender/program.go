package glrender

import (
	"embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

func shaderSource(name string) (string, error) {
	src, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return "", err
	}
	return string(src) + "\x00", nil
}

func compileShader(name string, kind uint32) (uint32, error) {
	source, err := shaderSource(name)
	if err != nil {
		return 0, err
	}

	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %s: %v", name, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// program links a vertex and a fragment shader from the embedded sources.
type program struct {
	id       uint32
	uniforms map[string]int32
}

func newProgram(vertName, fragName string) (*program, error) {
	vShader, err := compileShader(vertName, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vShader)
	fShader, err := compileShader(fragName, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fShader)

	id := gl.CreateProgram()
	gl.AttachShader(id, vShader)
	gl.AttachShader(id, fShader)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("failed to link %s+%s: %v", vertName, fragName, strings.TrimRight(log, "\x00"))
	}
	return &program{id: id, uniforms: make(map[string]int32)}, nil
}

func (p *program) use() { gl.UseProgram(p.id) }

// loc caches uniform locations. Missing uniforms resolve to -1, which GL
// ignores on upload.
func (p *program) loc(name string) int32 {
	if l, ok := p.uniforms[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = l
	return l
}

func (p *program) setInt(name string, v int32)       { gl.Uniform1i(p.loc(name), v) }
func (p *program) setFloat(name string, v float32)   { gl.Uniform1f(p.loc(name), v) }
func (p *program) setVec2(name string, v [2]float32) { gl.Uniform2f(p.loc(name), v[0], v[1]) }
func (p *program) setVec3(name string, v [3]float32) { gl.Uniform3f(p.loc(name), v[0], v[1], v[2]) }

func (p *program) setBool(name string, v bool) {
	if v {
		p.setInt(name, 1)
	} else {
		p.setInt(name, 0)
	}
}

func (p *program) delete() { gl.DeleteProgram(p.id) }
