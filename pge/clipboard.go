//go:build !js && (windows || cgo)

package pge

import (
	"testpge/misc"

	"golang.design/x/clipboard"
)

var TheClipboardManager struct {
	Initialized bool
}

func InitClipboardManager() {
	cm := &TheClipboardManager
	err := clipboard.Init()
	cm.Initialized = err == nil
	if err != nil {
		misc.WarnLogger.Printf("clipboard is disabled: %v", err)
	}
}

func ClipboardWriteText(str string) {
	cm := &TheClipboardManager
	if cm.Initialized {
		clipboard.Write(clipboard.FmtText, []byte(str))
	}
}
