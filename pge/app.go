package pge

import "image/color"

// Canvas is the drawing surface handed to an Application.
// Coordinates are in screen pixels, not window pixels.
type Canvas interface {
	Width() int
	Height() int

	Draw(x, y int, c color.Color)
	Clear(c color.Color)
	FillRect(x, y, w, h int, c color.Color)
	DrawRect(x, y, w, h int, c color.Color)
	FillCircle(x, y, radius int, c color.Color)
	DrawCircle(x, y, radius int, c color.Color)
	DrawLine(x1, y1, x2, y2 int, c color.Color)
	DrawString(x, y int, text string, c color.Color)
}

// Application is what the engine runs.
//
// OnUserCreate is called once before the first frame.
// OnUserUpdate is called every frame with the seconds since the previous one.
// Returning false from either stops the engine.
type Application interface {
	OnUserCreate(c Canvas) bool
	OnUserUpdate(c Canvas, elapsed float32) bool
}

// Destroyer is implemented by applications that want a say when the window is closed.
// Returning false keeps the window open.
type Destroyer interface {
	OnUserDestroy() bool
}

// AppFuncs adapts plain functions to Application.
// A nil function counts as returning true.
type AppFuncs struct {
	Create func(c Canvas) bool
	Update func(c Canvas, elapsed float32) bool
}

func (a AppFuncs) OnUserCreate(c Canvas) bool {
	if a.Create == nil {
		return true
	}
	return a.Create(c)
}

func (a AppFuncs) OnUserUpdate(c Canvas, elapsed float32) bool {
	if a.Update == nil {
		return true
	}
	return a.Update(c, elapsed)
}
