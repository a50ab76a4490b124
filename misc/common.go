package misc

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

var (
	ErrLogger  = log.New(os.Stderr, "[ FAIL ]: ", log.Lshortfile)
	WarnLogger = log.New(os.Stderr, "[ WARN ]: ", log.Lshortfile)
	InfoLogger = log.New(os.Stdout, "[ INFO ]: ", log.Lshortfile)
)

// SilenceLoggers sends every logger to w.
// Tests use it with io.Discard.
func SilenceLoggers(w io.Writer) {
	ErrLogger.SetOutput(w)
	WarnLogger.SetOutput(w)
	InfoLogger.SetOutput(w)
}

func GetScriptName() string {
	_, scriptName := filepath.Split(os.Args[0])
	if _, scriptFile, _, ok := runtime.Caller(1); ok {
		_, scriptName = filepath.Split(scriptFile)
	}

	return scriptName
}

func CheckFileExists(path string) (bool, error) {
	info, err := os.Stat(path)

	if err == nil { // file exists
		mode := info.Mode()
		if !mode.IsRegular() {
			return false, fmt.Errorf("%s is not a regular file", path)
		}

		return true, nil
	} else if errors.Is(err, os.ErrNotExist) { // file does not exists
		return false, nil
	} else { // unable to check if file exists or not
		return false, err
	}
}

// Checks if executables exists.
//
// Executables sitting next to the program but not in PATH
// are not found since exec.LookPath only searches PATH.
func CheckExeExists(exe string) bool {
	_, err := exec.LookPath(exe)
	return err == nil
}

// UniqueFileName returns name if nothing called name exists in dir.
// Otherwise it appends -(2), -(3), ... before the extension
// until it finds a free one.
func UniqueFileName(fs afero.Fs, dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]

	candidate := name
	for counter := 2; ; counter++ {
		_, err := fs.Stat(filepath.Join(dir, candidate))
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-(%d)%s", base, counter, ext)
	}
}
