package pge

import (
	eb "github.com/hajimehoshi/ebiten/v2"
	ebi "github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	ShowDebugConsoleKey = eb.KeyF1
	ToggleShaderKey     = eb.KeyF2
	NextShaderKey       = eb.KeyF3
	ShowGridKey         = eb.KeyF4
	ReloadShaderKey     = eb.KeyF5
	PickShaderKey       = eb.KeyF6
	ScreenshotKey       = eb.KeyF12
)

func IsKeyJustPressed(key eb.Key) bool {
	return ebi.IsKeyJustPressed(key)
}
