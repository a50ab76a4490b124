//go:build js || (!windows && !cgo)

package pge

import "errors"

func PickShaderFile(startDir string) (string, error) {
	return "", errors.New("file dialog is not available in this build")
}
