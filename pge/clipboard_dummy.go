// golang.design/x/clipboard crashes instead of returning an error
// from Init when it was built without cgo.

//go:build js || (!windows && !cgo)

package pge

import "testpge/misc"

var TheClipboardManager struct {
	Initialized bool
}

func InitClipboardManager() {
	misc.InfoLogger.Print("initializing clipboard")
	misc.WarnLogger.Printf("clipboard is disabled")
}

func ClipboardWriteText(str string) {
}
