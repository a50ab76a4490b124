package pge

import (
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestSaveScreenshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "shots"
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)

	s := NewSprite(4, 2)
	s.Clear(Magenta)

	first, err := SaveScreenshot(fs, dir, s, now)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "pic-0307150405.png"); first != want {
		t.Errorf("path = %s, want %s", first, want)
	}

	second, err := SaveScreenshot(fs, dir, s, now)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "pic-0307150405-(2).png"); second != want {
		t.Errorf("second path = %s, want %s", second, want)
	}

	f, err := fs.Open(first)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("decoded bounds = %v", b)
	}
	if got := ColorToRGBA(img.At(3, 1)); got != Magenta {
		t.Errorf("decoded pixel = %v, want magenta", got)
	}
}

func TestSaveScreenshotMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	if _, err := SaveScreenshot(afero.NewOsFs(), dir, NewSprite(1, 1), time.Now()); err == nil {
		t.Errorf("SaveScreenshot into a missing dir succeeded")
	}
}
