package main

import (
	"testpge/pge"
)

// Example draws a dark blue screen with two overlapping circles.
// It keeps no state between frames.
type Example struct{}

func (ex *Example) OnUserCreate(c pge.Canvas) bool {
	return true
}

func (ex *Example) OnUserUpdate(c pge.Canvas, elapsed float32) bool {
	c.FillRect(0, 0, 256, 240, pge.DarkBlue)
	c.FillCircle(100, 100, 50, pge.Cyan)
	c.FillCircle(200, 150, 50, pge.Magenta)
	return true
}
