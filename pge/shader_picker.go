//go:build !js && (windows || cgo)

package pge

import (
	"path/filepath"

	"github.com/sqweek/dialog"
)

// PickShaderFile asks the user for a Kage file.
// It blocks until the dialog is closed.
func PickShaderFile(startDir string) (string, error) {
	return dialog.File().
		SetStartDir(filepath.Clean(startDir)).
		Filter("kage shaders", "kage", "go").
		Title("Load shader").
		Load()
}
