package shader

import (
	_ "embed"
	"errors"
	"fmt"
)

//go:embed shaders/crt.kage
var crtShaderSrc []byte

//go:embed shaders/flat.kage
var flatShaderSrc []byte

// Original OpenGL 3.3 sources of the CRT effect.
// They are not used by the ebiten backend, only by cmd/glcheck.
var (
	//go:embed shaders/crt.frag.glsl
	GLSLFragment string

	//go:embed shaders/quad.vert.glsl
	GLSLVertex string
)

// IDNone selects drawing the framebuffer without any shader.
const IDNone = "none"

var ErrUnknownShader = errors.New("unknown shader")

// ShaderInfo describes an available shader effect
type ShaderInfo struct {
	ID          string // Unique identifier used in config
	Name        string // Display name
	Description string // Brief description of the effect
}

// AvailableShaders lists all shaders that can be selected
var AvailableShaders = []ShaderInfo{
	{
		ID:          "crt",
		Name:        "CRT",
		Description: "Curved tube traced on a sphere with scanlines, vignette and glare",
	},
	{
		ID:          "flat",
		Name:        "Flat",
		Description: "Framebuffer as is, optionally dimmed by the Dim uniform",
	},
}

// shaderSources maps shader IDs to their Kage source code
var shaderSources = map[string][]byte{
	"crt":  crtShaderSrc,
	"flat": flatShaderSrc,
}

// Source returns the Kage source of the shader with the given id.
// IDNone returns nil source and no error.
func Source(id string) ([]byte, error) {
	if id == IDNone {
		return nil, nil
	}
	src, ok := shaderSources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShader, id)
	}
	return src, nil
}

// IDs returns the selectable ids, IDNone last.
func IDs() []string {
	ids := make([]string, 0, len(AvailableShaders)+1)
	for _, info := range AvailableShaders {
		ids = append(ids, info.ID)
	}
	return append(ids, IDNone)
}
