package glrender

import (
	"strings"
	"testing"

	"github.com/san-kum/crtsim/internal/crt"
)

func TestShaderSourcesEmbedded(t *testing.T) {
	names := []string{"pixels.vert", "pixels.frag", "quad.vert", "blur.frag", "rgb.frag", "blend.frag", "upscale.frag"}
	for _, name := range names {
		src, err := shaderSource(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.HasPrefix(src, "#version 330 core") {
			t.Errorf("%s should target GLSL 330 core", name)
		}
		if !strings.HasSuffix(src, "\x00") {
			t.Errorf("%s must be NUL terminated", name)
		}
	}
}

func TestCubeGeometry(t *testing.T) {
	if got := len(cubeGeometry) / cubeFloatsPerVertex; got != 36 {
		t.Fatalf("expected 36 vertices, got %d", got)
	}
	// The leading square faces the camera.
	for i := 0; i < squareVertices; i++ {
		v := cubeGeometry[i*cubeFloatsPerVertex : (i+1)*cubeFloatsPerVertex]
		if v[2] != 0.5 || v[5] != 1 {
			t.Errorf("vertex %d is not on the front face: %v", i, v)
		}
	}
}

func TestTextureFilter(t *testing.T) {
	if textureFilter(crt.Nearest) == textureFilter(crt.Linear) {
		t.Error("interpolation kinds should map to distinct filters")
	}
}
