//go:build pgepprof

package main

import (
	"net/http"
	_ "net/http/pprof"

	"testpge/misc"
)

func init() {
	PprofEnabled = true

	go func() {
		misc.InfoLogger.Print("initializing pprof")
		misc.InfoLogger.Print(http.ListenAndServe("localhost:6060", nil))
	}()
}
