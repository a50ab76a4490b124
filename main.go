package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"testpge/misc"
	"testpge/pge"
	"testpge/shader"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	eb "github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 240
	PixelWidth   = 4
	PixelHeight  = 4
)

type Options struct {
	Shader     string
	ShaderFile string
	GL         string
	VSync      bool
	Fullscreen bool
	Tint       string
	Dim        float64

	Headless bool
	Frames   uint64
	Out      string
}

var Flags Options

// set by pprof.go when built with the pgepprof tag
var PprofEnabled bool

func init() {
	// bad arguments are warned about, they never stop the program
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	RegisterFlags(flag.CommandLine, &Flags)
}

func RegisterFlags(fs *flag.FlagSet, opts *Options) {
	fs.StringVar(&opts.Shader, "shader", "crt", "screen shader, one of "+strings.Join(shader.IDs(), ", "))
	fs.StringVar(&opts.ShaderFile, "shader-file", "", "load a kage shader from this file instead (F5 reloads it)")
	fs.StringVar(&opts.GL, "gl", "opengl", "graphics library, one of auto, opengl, directx, metal")
	fs.BoolVar(&opts.VSync, "vsync", true, "enable vsync")
	fs.BoolVar(&opts.Fullscreen, "fullscreen", false, "start in fullscreen")
	fs.StringVar(&opts.Tint, "tint", "white", "css color the screen is multiplied with")
	fs.Float64Var(&opts.Dim, "dim", 0, "darken the flat shader by this amount, 0 to 1")

	fs.BoolVar(&opts.Headless, "headless", false, "run without a window")
	fs.Uint64Var(&opts.Frames, "frames", 1, "frames to run in headless mode, 0 runs until interrupted")
	fs.StringVar(&opts.Out, "out", "", "write the last headless frame as png to this path")
}

// ParseFlags parses args into the flags registered on fs.
// Parsing stops at the first bad argument and the rest keep their defaults.
// It returns false when only the usage was asked for.
func ParseFlags(fs *flag.FlagSet, args []string) bool {
	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return false
	}
	if err != nil {
		misc.WarnLogger.Printf("%v, using defaults for the remaining flags", err)
		return true
	}
	if fs.NArg() > 0 {
		misc.WarnLogger.Printf("ignoring arguments %q", fs.Args())
	}
	return true
}

// Engine is the part of *pge.Engine that main uses.
type Engine interface {
	Start(app pge.Application) error
	RunHeadless(ctx context.Context, app pge.Application, hc pge.HeadlessConfig) error
	Sprite() *pge.Sprite
}

// headless frames are written here
var outputFs afero.Fs = afero.NewOsFs()

var constructEngine = func(cfg pge.Config) (Engine, error) {
	e, err := pge.Construct(cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func parseGraphicsLibrary(str string) (eb.GraphicsLibrary, error) {
	switch strings.ToLower(str) {
	case "auto":
		return eb.GraphicsLibraryAuto, nil
	case "opengl", "gl":
		return eb.GraphicsLibraryOpenGL, nil
	case "directx":
		return eb.GraphicsLibraryDirectX, nil
	case "metal":
		return eb.GraphicsLibraryMetal, nil
	}
	return eb.GraphicsLibraryAuto, fmt.Errorf("unknown graphics library %q", str)
}

// NewConfig turns opts into an engine config.
// Bad options are reported and replaced by defaults.
func NewConfig(opts Options) pge.Config {
	cfg := pge.DefaultConfig()

	cfg.ScreenWidth, cfg.ScreenHeight = ScreenWidth, ScreenHeight
	cfg.PixelWidth, cfg.PixelHeight = PixelWidth, PixelHeight
	cfg.VSync = opts.VSync
	cfg.Fullscreen = opts.Fullscreen

	if lib, err := parseGraphicsLibrary(opts.GL); err != nil {
		misc.WarnLogger.Printf("%v, using opengl", err)
	} else {
		cfg.GraphicsLibrary = lib
	}

	if opts.Tint != "" {
		if tint, err := pge.ParseColorString(opts.Tint); err != nil {
			misc.WarnLogger.Printf("invalid tint %q: %v", opts.Tint, err)
		} else {
			cfg.Tint = tint
		}
	}

	src, err := shader.Source(opts.Shader)
	if err != nil {
		misc.WarnLogger.Printf("%v, using crt", err)
		opts.Shader = "crt"
		src, _ = shader.Source(opts.Shader)
	}
	cfg.Shader = src
	cfg.ShaderName = opts.Shader
	cfg.ShaderFile = opts.ShaderFile

	if opts.Shader == "flat" {
		cfg.Uniforms = map[string]any{
			"Dim": float32(min(max(opts.Dim, 0), 1)),
		}
	}

	return cfg
}

func run(opts Options) int {
	if PprofEnabled {
		misc.InfoLogger.Print("pprof enabled on localhost:6060")
	}

	cfg := NewConfig(opts)

	e, err := constructEngine(cfg)
	if err != nil {
		misc.InfoLogger.Printf("could not construct engine: %v", err)
		return 0
	}

	app := &Example{}

	if !opts.Headless {
		if err := e.Start(app); err != nil {
			misc.ErrLogger.Printf("%v", err)
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := e.RunHeadless(ctx, app, pge.HeadlessConfig{Frames: opts.Frames}); err != nil {
		misc.ErrLogger.Printf("%v", err)
		return 0
	}

	if opts.Out != "" {
		if err := WriteFrame(outputFs, opts.Out, e.Sprite(), cfg); err != nil {
			misc.ErrLogger.Printf("failed to write frame: %v", err)
			return 0
		}
		misc.InfoLogger.Printf("wrote %s", opts.Out)
	}

	return 0
}

func main() {
	if !ParseFlags(flag.CommandLine, os.Args[1:]) {
		os.Exit(0)
	}
	os.Exit(run(Flags))
}
