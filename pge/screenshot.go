package pge

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"time"

	"testpge/misc"

	eb "github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
)

// SaveScreenshot writes img as a png into dir under a name that is not taken yet
// and returns the full path.
func SaveScreenshot(fs afero.Fs, dir string, img image.Image, now time.Time) (string, error) {
	timeStr := now.Format("0102150405")

	filename, err := misc.UniqueFileName(fs, dir, fmt.Sprintf("pic-%s.png", timeStr))
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	if err := WritePNG(fs, fullPath, img); err != nil {
		return "", err
	}

	return fullPath, nil
}

func WritePNG(fs afero.Fs, path string, img image.Image) error {
	buffer := &bytes.Buffer{}
	if err := png.Encode(buffer, img); err != nil {
		return err
	}

	return afero.WriteFile(fs, path, buffer.Bytes(), 0644)
}

// ImageImageFromEbImage copies the pixels of img.
// It only works while the game is running.
func ImageImageFromEbImage(img *eb.Image) *image.RGBA {
	rgba := image.NewRGBA(RectWH(img.Bounds().Dx(), img.Bounds().Dy()))
	img.ReadPixels(rgba.Pix)
	return rgba
}
