// Command glcheck compiles the OpenGL 3.3 version of the CRT shader in a real
// context, and optionally renders the example frame through it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"
	"strings"

	"testpge/misc"
	"testpge/pge"
	"testpge/shader"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/afero"
)

const (
	screenWidth  = 256
	screenHeight = 240
	pixelSize    = 4
)

var flagOut string

func init() {
	// glfw and gl calls must stay on the main thread
	runtime.LockOSThread()

	flag.StringVar(&flagOut, "out", "", "render the example frame through the shader and save it as png")
}

func getShaderError(thing uint32, ivFunc func(thing, pname uint32, params *int32), logFunc func(thing uint32, bufSize int32, length *int32, infoLog *uint8)) error {
	var bufSize int32
	ivFunc(thing, gl.INFO_LOG_LENGTH, &bufSize)

	if bufSize <= 0 {
		return errors.New("no error message")
	}

	errBuf := make([]byte, bufSize)
	var length int32
	logFunc(thing, bufSize, &length, &errBuf[0])

	return errors.New(strings.TrimRight(string(errBuf[:length]), "\r\n\x00"))
}

func compileShader(kind uint32, source string) (uint32, error) {
	shad := gl.CreateShader(kind)

	csrc, free := gl.Strs(source)
	clen := int32(len(source))
	gl.ShaderSource(shad, 1, csrc, &clen)
	gl.CompileShader(shad)
	free()

	var result int32
	gl.GetShaderiv(shad, gl.COMPILE_STATUS, &result)
	if result == 0 {
		defer gl.DeleteShader(shad)
		return 0, getShaderError(shad, gl.GetShaderiv, gl.GetShaderInfoLog)
	}
	return shad, nil
}

func buildProgram(vert, frag string) (uint32, error) {
	vshad, err := compileShader(gl.VERTEX_SHADER, vert)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vshad)

	fshad, err := compileShader(gl.FRAGMENT_SHADER, frag)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fshad)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vshad)
	gl.AttachShader(prog, fshad)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vshad)
	gl.DetachShader(prog, fshad)

	var result int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &result)
	if result == 0 {
		defer gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link: %w", getShaderError(prog, gl.GetProgramiv, gl.GetProgramInfoLog))
	}
	return prog, nil
}

// quad covers the viewport, image row 0 at the top.
// Each vertex is position xyz, texcoord uv and color rgba.
var quad = []float32{
	-1, -1, 1, 0, 1, 1, 1, 1, 1,
	1, -1, 1, 1, 1, 1, 1, 1, 1,
	-1, 1, 1, 0, 0, 1, 1, 1, 1,
	1, 1, 1, 1, 0, 1, 1, 1, 1,
}

// render draws sprite through prog into an offscreen target of w by h and reads it back.
func render(prog uint32, sprite *pge.Sprite, w, h int) *image.RGBA {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(sprite.Width()), int32(sprite.Height()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(sprite.Pix),
	)
	defer gl.DeleteTextures(1, &tex)

	var target uint32
	gl.GenTextures(1, &target)
	gl.BindTexture(gl.TEXTURE_2D, target)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	defer gl.DeleteTextures(1, &target)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, target, 0)
	defer gl.DeleteFramebuffers(1, &fbo)

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	defer gl.DeleteBuffers(1, &vbo)
	defer gl.DeleteVertexArrays(1, &vao)

	const stride = 9 * 4
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str("sprTex\x00")), 0)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// gl rows go bottom to top
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	return img
}

func exampleSprite() *pge.Sprite {
	s := pge.NewSprite(screenWidth, screenHeight)
	s.FillRect(0, 0, screenWidth, screenHeight, pge.DarkBlue)
	s.FillCircle(100, 100, 50, pge.Cyan)
	s.FillCircle(200, 150, 50, pge.Magenta)
	return s
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(64, 64, "glcheck", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	misc.InfoLogger.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	timer := pge.NewProfTimer("building crt program")
	prog, err := buildProgram(shader.GLSLVertex, shader.GLSLFragment)
	timer.Report()
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(prog)

	if loc := gl.GetUniformLocation(prog, gl.Str("sprTex\x00")); loc < 0 {
		return errors.New("sprTex uniform not found in the linked program")
	}
	misc.InfoLogger.Print("crt shader compiled and linked")

	if flagOut == "" {
		return nil
	}

	img := render(prog, exampleSprite(), screenWidth*pixelSize, screenHeight*pixelSize)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x while rendering", code)
	}
	if err := pge.WritePNG(afero.NewOsFs(), flagOut, img); err != nil {
		return err
	}
	misc.InfoLogger.Printf("wrote %s", flagOut)

	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		misc.ErrLogger.Printf("%v", err)
		os.Exit(1)
	}
}
