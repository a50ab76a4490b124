package pge

import (
	"fmt"
	"strings"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebu "github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type DebugMsg struct {
	Key   string
	Value string
}

// DebugConsole collects key value messages shown on top of the screen.
// Persistent messages survive Clear.
type DebugConsole struct {
	DebugMsgs           []DebugMsg
	PersistentDebugMsgs []DebugMsg

	builder strings.Builder
}

func putMsg(msgs []DebugMsg, key, value string) []DebugMsg {
	for i, msg := range msgs {
		if msg.Key == key {
			msgs[i].Value = value
			return msgs
		}
	}

	return append(msgs, DebugMsg{
		Key:   key,
		Value: value,
	})
}

func (dc *DebugConsole) Printf(key, fmtStr string, values ...any) {
	dc.Puts(key, fmt.Sprintf(fmtStr, values...))
}

func (dc *DebugConsole) Puts(key, value string) {
	dc.DebugMsgs = putMsg(dc.DebugMsgs, key, value)
}

func (dc *DebugConsole) PutsPersist(key, value string) {
	dc.PersistentDebugMsgs = putMsg(dc.PersistentDebugMsgs, key, value)
}

func (dc *DebugConsole) Clear() {
	dc.DebugMsgs = dc.DebugMsgs[:0]
}

func (dc *DebugConsole) String() string {
	dc.builder.Reset()

	total := len(dc.PersistentDebugMsgs) + len(dc.DebugMsgs)
	msgCounter := 0

	for _, msgs := range [][]DebugMsg{dc.PersistentDebugMsgs, dc.DebugMsgs} {
		for _, msg := range msgs {
			// builder doesn't actually errors out
			// no need to check error
			dc.builder.WriteString(msg.Key)
			dc.builder.WriteString(": ")
			dc.builder.WriteString(msg.Value)

			msgCounter++
			if msgCounter != total {
				dc.builder.WriteString("\n")
			}
		}
	}

	return dc.builder.String()
}

func (dc *DebugConsole) Draw(dst *eb.Image) {
	ebu.DebugPrint(dst, dc.String())
}
