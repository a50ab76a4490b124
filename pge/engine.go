// Package pge is a small pixel game engine on top of ebiten.
//
// An Application draws into a low resolution Sprite every frame.
// The engine scales the sprite up by the pixel size and presents it
// through a Kage shader passed in Config.
package pge

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"testpge/misc"
	"testpge/shader"

	eb "github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
)

var ErrInvalidConfig = errors.New("invalid config")

var errNilApplication = errors.New("pge: nil application")

// MaxWindowSize caps each window dimension, in window pixels.
const MaxWindowSize = 16384

type Config struct {
	Title string

	// size of the sprite applications draw into
	ScreenWidth, ScreenHeight int

	// how many window pixels one screen pixel covers
	PixelWidth, PixelHeight int

	// Kage source used to present the sprite.
	// Nil presents it as is.
	Shader     []byte
	ShaderName string

	// ShaderFile replaces Shader when set and can be reloaded while running.
	ShaderFile string

	Uniforms map[string]any

	// color the sprite is multiplied with, white when nil
	Tint color.Color

	// where screenshots go, the working directory when empty
	ScreenshotDir string

	GraphicsLibrary eb.GraphicsLibrary
	VSync           bool
	Fullscreen      bool
}

func DefaultConfig() Config {
	return Config{
		Title:           "Example",
		ScreenWidth:     256,
		ScreenHeight:    240,
		PixelWidth:      4,
		PixelHeight:     4,
		Tint:            color.White,
		GraphicsLibrary: eb.GraphicsLibraryOpenGL,
		VSync:           true,
	}
}

func (cfg Config) WindowSize() (int, int) {
	return cfg.ScreenWidth * cfg.PixelWidth, cfg.ScreenHeight * cfg.PixelHeight
}

func (cfg Config) Validate() error {
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.PixelWidth <= 0 || cfg.PixelHeight <= 0 {
		return fmt.Errorf("%w: pixel size %dx%d", ErrInvalidConfig, cfg.PixelWidth, cfg.PixelHeight)
	}

	tooBig := cfg.ScreenWidth > MaxWindowSize || cfg.ScreenHeight > MaxWindowSize ||
		cfg.PixelWidth > MaxWindowSize || cfg.PixelHeight > MaxWindowSize
	if !tooBig {
		w, h := cfg.WindowSize()
		tooBig = w > MaxWindowSize || h > MaxWindowSize
	}
	if tooBig {
		return fmt.Errorf(
			"%w: window of %dx%d screen pixels at %dx%d does not fit in %d",
			ErrInvalidConfig,
			cfg.ScreenWidth, cfg.ScreenHeight, cfg.PixelWidth, cfg.PixelHeight,
			MaxWindowSize,
		)
	}

	return nil
}

type Engine struct {
	cfg Config

	sprite *Sprite
	app    Application

	clock      *Clock
	fps        FPSCounter
	frameCount uint64
	created    bool

	shaders     *shader.Manager
	shader      *eb.Shader
	shaderTried bool
	shaderOn    bool
	shaderErr   error

	frameImg *eb.Image

	fs afero.Fs

	debug               DebugConsole
	showDebug           bool
	showGrid            bool
	screenshotRequested bool
}

// Construct checks cfg and allocates the sprite.
// Nothing is shown until Start.
func Construct(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Tint == nil {
		cfg.Tint = color.White
	}
	if cfg.ShaderName == "" {
		cfg.ShaderName = "custom"
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "."
	}

	e := &Engine{
		cfg:      cfg,
		sprite:   NewSprite(cfg.ScreenWidth, cfg.ScreenHeight),
		clock:    NewClock(time.Now),
		shaders:  shader.NewManager(),
		shaderOn: true,
		fs:       afero.NewOsFs(),
	}

	e.sprite.Clear(Black)

	e.debug.PutsPersist("title", cfg.Title)
	e.debug.PutsPersist("screen", fmt.Sprintf(
		"%dx%d at %dx%d", cfg.ScreenWidth, cfg.ScreenHeight, cfg.PixelWidth, cfg.PixelHeight,
	))
	e.debug.PutsPersist("tint", ColorToString(cfg.Tint))

	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Sprite is the framebuffer applications draw into.
func (e *Engine) Sprite() *Sprite {
	return e.sprite
}

// FrameCount is the number of completed OnUserUpdate calls.
func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

// Start opens the window and runs app until the window is closed
// or app returns false.
func (e *Engine) Start(app Application) error {
	if app == nil {
		return errNilApplication
	}
	e.app = app

	InitClipboardManager()

	w, h := e.cfg.WindowSize()

	eb.SetWindowTitle(e.cfg.Title)
	eb.SetWindowSize(w, h)
	eb.SetWindowResizingMode(eb.WindowResizingModeEnabled)
	eb.SetVsyncEnabled(e.cfg.VSync)
	eb.SetFullscreen(e.cfg.Fullscreen)
	// one Update per presented frame
	eb.SetTPS(eb.SyncWithFPS)

	if _, ok := app.(Destroyer); ok {
		eb.SetWindowClosingHandled(true)
	}

	misc.InfoLogger.Printf(
		"starting %s: %dx%d pixels of %dx%d, shader %s",
		e.cfg.Title, e.cfg.ScreenWidth, e.cfg.ScreenHeight, e.cfg.PixelWidth, e.cfg.PixelHeight, e.shaderLabel(),
	)

	err := eb.RunGameWithOptions(e, &eb.RunGameOptions{
		GraphicsLibrary: e.cfg.GraphicsLibrary,
	})
	e.shaders.Dispose()
	if errors.Is(err, eb.Termination) {
		return nil
	}

	return err
}

// frame runs one step of the application lifecycle.
// It returns eb.Termination when the application wants to stop.
func (e *Engine) frame(elapsed time.Duration) error {
	if !e.created {
		if !e.app.OnUserCreate(e.sprite) {
			misc.InfoLogger.Print("OnUserCreate returned false, stopping")
			return eb.Termination
		}
		e.created = true
	}

	if !e.app.OnUserUpdate(e.sprite, float32(elapsed.Seconds())) {
		return eb.Termination
	}
	e.frameCount++

	return nil
}

func (e *Engine) Update() error {
	e.debug.Clear()

	if !e.shaderTried {
		e.shaderTried = true
		e.loadShader()
	}

	e.handleHotkeys()

	elapsed := e.clock.Tick()
	if err := e.frame(elapsed); err != nil {
		return err
	}

	if e.fps.Add(elapsed) {
		eb.SetWindowTitle(fmt.Sprintf("%s - FPS: %d", e.cfg.Title, e.fps.FPS))
	}

	if d, ok := e.app.(Destroyer); ok && eb.IsWindowBeingClosed() {
		if d.OnUserDestroy() {
			return eb.Termination
		}
	}

	e.debug.Printf("FPS", "%.2f", eb.ActualFPS())
	e.debug.Printf("TPS", "%.2f", eb.ActualTPS())
	e.debug.Printf("frames", "%d", e.frameCount)
	e.debug.Puts("shader", e.shaderLabel())
	if e.shaderErr != nil {
		e.debug.Puts("shader error", e.shaderErr.Error())
	}

	return nil
}

func (e *Engine) handleHotkeys() {
	if IsKeyJustPressed(ShowDebugConsoleKey) {
		e.showDebug = !e.showDebug
	}

	if IsKeyJustPressed(ToggleShaderKey) {
		e.shaderOn = !e.shaderOn
		misc.InfoLogger.Printf("shader %s", e.shaderLabel())
	}

	if IsKeyJustPressed(ShowGridKey) {
		e.showGrid = !e.showGrid
	}

	if IsKeyJustPressed(NextShaderKey) {
		e.nextShader()
	}

	if IsKeyJustPressed(ReloadShaderKey) {
		if e.cfg.ShaderFile == "" {
			misc.WarnLogger.Print("no shader file to reload")
		} else {
			e.reloadShaderFile()
		}
	}

	if IsKeyJustPressed(PickShaderKey) {
		startDir := "."
		if e.cfg.ShaderFile != "" {
			startDir = filepath.Dir(e.cfg.ShaderFile)
		}
		path, err := PickShaderFile(startDir)
		if err != nil {
			misc.InfoLogger.Printf("no shader picked: %v", err)
		} else {
			e.cfg.ShaderFile = path
			e.cfg.ShaderName = filepath.Base(path)
			e.reloadShaderFile()
		}
	}

	if IsKeyJustPressed(ScreenshotKey) {
		e.screenshotRequested = true
	}
}

// loadShader compiles the configured shader.
// On failure the sprite is presented without a shader.
func (e *Engine) loadShader() {
	var err error

	switch {
	case e.cfg.ShaderFile != "":
		e.shader, err = e.shaders.LoadFile(e.cfg.ShaderFile)
	case e.cfg.Shader != nil:
		timer := NewProfTimer("compiling shader " + e.cfg.ShaderName)
		e.shader, err = e.shaders.Compile(e.cfg.ShaderName, e.cfg.Shader)
		timer.Report()
	}

	e.shaderErr = err
	if err != nil {
		e.shader = nil
		misc.ErrLogger.Printf("%v", err)
		misc.WarnLogger.Print("presenting without shader")
	}
}

// reloadShaderFile keeps the current shader when the file does not compile.
func (e *Engine) reloadShaderFile() {
	s, err := e.shaders.LoadFile(e.cfg.ShaderFile)
	e.shaderErr = err
	if err != nil {
		misc.ErrLogger.Printf("%v", err)
		return
	}
	e.shader = s
}

// nextShader switches to the registered shader after the current one.
func (e *Engine) nextShader() {
	ids := shader.IDs()

	next := ids[0]
	if e.cfg.ShaderFile == "" {
		for i, id := range ids {
			if id == e.cfg.ShaderName {
				next = ids[(i+1)%len(ids)]
				break
			}
		}
	}

	var timer *ProfTimer
	if next != shader.IDNone && !e.shaders.IsLoaded(next) {
		t := NewProfTimer("compiling shader " + next)
		timer = &t
	}
	s, err := e.shaders.Load(next)
	if timer != nil {
		timer.Report()
	}
	if err != nil {
		e.shaderErr = err
		misc.ErrLogger.Printf("%v", err)
		return
	}

	src, _ := shader.Source(next)

	e.shader = s
	e.shaderErr = nil
	e.shaderOn = true
	e.cfg.Shader = src
	e.cfg.ShaderName = next
	e.cfg.ShaderFile = ""

	misc.InfoLogger.Printf("switched to shader %s", e.shaderLabel())
}

func (e *Engine) shaderLabel() string {
	switch {
	case e.cfg.ShaderFile != "":
		if !e.shaderOn {
			return e.cfg.ShaderFile + " (off)"
		}
		return e.cfg.ShaderFile
	case e.cfg.Shader == nil:
		return shader.IDNone
	case !e.shaderOn:
		return e.cfg.ShaderName + " (off)"
	default:
		return e.cfg.ShaderName
	}
}

func (e *Engine) Draw(screen *eb.Image) {
	e.present(screen)

	if e.screenshotRequested {
		e.screenshotRequested = false
		e.takeScreenshot(screen)
	}

	if e.showGrid {
		DrawPixelGrid(screen, e.cfg, gridColor)
	}

	if e.showDebug {
		if e.shaderErr != nil {
			w, h := e.cfg.WindowSize()
			StrokeRect(screen, 1, 1, float64(w-2), float64(h-2), 2, Red)
		}
		e.debug.Draw(screen)
	}
}

// present uploads the sprite and draws it scaled up to fill dst.
func (e *Engine) present(dst *eb.Image) {
	w, h := e.sprite.Width(), e.sprite.Height()

	if e.frameImg == nil {
		e.frameImg = eb.NewImage(w, h)
	}
	e.frameImg.WritePixels(e.sprite.Pix)

	px, py := float64(e.cfg.PixelWidth), float64(e.cfg.PixelHeight)

	if e.shader != nil && e.shaderOn {
		op := &DrawRectShaderOptions{}
		op.GeoM.Scale(px, py)
		op.ColorScale.ScaleWithColor(e.cfg.Tint)
		op.Uniforms = e.cfg.Uniforms
		op.Images[0] = e.frameImg
		DrawRectShader(dst, w, h, e.shader, op)
		return
	}

	op := &DrawImageOptions{}
	op.GeoM.Scale(px, py)
	op.ColorScale.ScaleWithColor(e.cfg.Tint)
	DrawImage(dst, e.frameImg, op)
}

func (e *Engine) takeScreenshot(screen *eb.Image) {
	path, err := SaveScreenshot(e.fs, e.cfg.ScreenshotDir, ImageImageFromEbImage(screen), time.Now())
	if err != nil {
		misc.ErrLogger.Printf("failed to take screenshot: %v", err)
		return
	}

	misc.InfoLogger.Printf("saved screenshot %s", path)
	ClipboardWriteText(path)
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.cfg.WindowSize()
}
