package main

import (
	"image/color"
	"math"
	"slices"
	"testing"

	"testpge/pge"
)

type drawCall struct {
	op      string
	x, y    int
	w, h, r int
	c       color.Color
}

// recordingCanvas records draw calls. Any other call panics on the nil Canvas.
type recordingCanvas struct {
	pge.Canvas
	calls []drawCall
}

func (rc *recordingCanvas) FillRect(x, y, w, h int, c color.Color) {
	rc.calls = append(rc.calls, drawCall{op: "FillRect", x: x, y: y, w: w, h: h, c: c})
}

func (rc *recordingCanvas) FillCircle(x, y, r int, c color.Color) {
	rc.calls = append(rc.calls, drawCall{op: "FillCircle", x: x, y: y, r: r, c: c})
}

var exampleFrame = []drawCall{
	{op: "FillRect", x: 0, y: 0, w: 256, h: 240, c: pge.DarkBlue},
	{op: "FillCircle", x: 100, y: 100, r: 50, c: pge.Cyan},
	{op: "FillCircle", x: 200, y: 150, r: 50, c: pge.Magenta},
}

func TestExampleCreate(t *testing.T) {
	ex := &Example{}
	rc := &recordingCanvas{}

	if !ex.OnUserCreate(rc) {
		t.Errorf("OnUserCreate = false")
	}
	if len(rc.calls) != 0 {
		t.Errorf("OnUserCreate drew %v", rc.calls)
	}
}

func TestExampleUpdate(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float32
	}{
		{"first frame", 0},
		{"60hz", 1.0 / 60},
		{"tiny", math.SmallestNonzeroFloat32},
		{"negative", -1},
		{"huge", math.MaxFloat32},
	}

	ex := &Example{}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rc := &recordingCanvas{}

			if !ex.OnUserUpdate(rc, tc.elapsed) {
				t.Errorf("OnUserUpdate(%v) = false", tc.elapsed)
			}
			if !slices.Equal(rc.calls, exampleFrame) {
				t.Errorf("draw calls = %v, want %v", rc.calls, exampleFrame)
			}
		})
	}
}

func TestExampleFramesIdentical(t *testing.T) {
	ex := &Example{}
	rc := &recordingCanvas{}

	const frames = 10
	for range frames {
		ex.OnUserUpdate(rc, 1.0/60)
	}

	if len(rc.calls) != frames*len(exampleFrame) {
		t.Fatalf("%d calls over %d frames", len(rc.calls), frames)
	}
	for i := 0; i < len(rc.calls); i += len(exampleFrame) {
		if !slices.Equal(rc.calls[i:i+len(exampleFrame)], exampleFrame) {
			t.Errorf("frame %d differs: %v", i/len(exampleFrame), rc.calls[i:i+len(exampleFrame)])
		}
	}
}

func TestExampleOnSprite(t *testing.T) {
	s := pge.NewSprite(ScreenWidth, ScreenHeight)
	(&Example{}).OnUserUpdate(s, 0)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, pge.DarkBlue},
		{255, 239, pge.DarkBlue},
		{100, 100, pge.Cyan},
		{100, 51, pge.Cyan},
		{200, 150, pge.Magenta},
		{145, 100, pge.Cyan},
		{200, 195, pge.Magenta},
		// between the circles
		{150, 125, pge.DarkBlue},
		{20, 220, pge.DarkBlue},
	}

	for _, tc := range tests {
		if got := s.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel %d,%d = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
