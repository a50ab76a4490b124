//go:build ignore

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"testpge/misc"
)

const SettingsPath = "build-settings.txt"

var SettingsList []string
var DefaultSettings = make(map[string]bool)
var SettingsComments = make(map[string]string)

func init() {
	setDefault := func(name string, value bool, comment string) {
		SettingsList = append(SettingsList, name)
		DefaultSettings[name] = value
		SettingsComments[name] = comment
	}

	setDefault("pprof", false, "Serve pprof on localhost:6060.")
	setDefault("opt", true, "Optimize and inline.")
	setDefault("wasm-opt", false, "Optimize wasm (requires wasm-opt from https://github.com/WebAssembly/binaryen).")
	setDefault("glcheck", true, "Also build cmd/glcheck when building for desktop.")
	setDefault("no-vcs", false, "Stop Go compiler from stamp binary with version control information.")
}

var validTargets = []string{"desktop", "web", "glcheck", "all"}

func PrintUsage() {
	scriptName := misc.GetScriptName()

	fmt.Printf("\n")
	fmt.Printf("Usage of %s:\n", scriptName)
	fmt.Printf("\n")
	fmt.Printf("go run %s\n", scriptName)
	fmt.Printf("go run %s [target]\n", scriptName)
	fmt.Printf("\n")
	fmt.Printf("valid targets:\n")
	for _, target := range validTargets {
		fmt.Printf("  %s\n", target)
	}
	fmt.Printf("\n")
	fmt.Printf("build settings are read from %s\n", SettingsPath)
	fmt.Printf("\n")
}

func main() {
	args := os.Args[1:]

	// print help
	{
		helps := []string{
			"help",
			"-help",
			"--help",
			"h",
			"-h",
			"--h",
		}
		if len(args) > 0 && slices.Contains(helps, args[0]) {
			PrintUsage()
			os.Exit(1)
		}
	}

	var buildTarget = "desktop"

	if len(args) == 1 {
		buildTarget = args[0]
	} else if len(args) > 1 {
		misc.ErrLogger.Printf("too many arguments")
		PrintUsage()
		os.Exit(1)
	}

	if !slices.Contains(validTargets, buildTarget) {
		misc.ErrLogger.Printf("%s is not a valid target", buildTarget)
		PrintUsage()
		os.Exit(1)
	}

	// if settings file doesn't exist, create one
	if exist, err := misc.CheckFileExists(SettingsPath); err != nil {
		misc.ErrLogger.Printf("could not check if %s file exists: %v", SettingsPath, err)
		os.Exit(1)
	} else if !exist {
		misc.InfoLogger.Printf("couldn't find %s, making a default one", SettingsPath)

		err := SaveSettings(SettingsPath, DefaultSettings)
		if err != nil {
			misc.ErrLogger.Printf("could not write default settings to %s: %v", SettingsPath, err)
			os.Exit(1)
		}
	}

	misc.InfoLogger.Printf("loading settings from %s", SettingsPath)
	settings, err := LoadSettings(SettingsPath)
	if err != nil {
		misc.ErrLogger.Printf("failed to load settings : %v", err)
		os.Exit(1)
	}

	// print settings
	{
		nameSize := 0
		for _, name := range SettingsList {
			nameSize = max(nameSize, len(name))
		}
		fmt.Printf("\n")
		for _, name := range SettingsList {
			value := settings[name]
			for len(name) < nameSize {
				name = name + " "
			}
			fmt.Printf("  %v : %v\n", name, value)
		}
		fmt.Printf("\n")
	}

	misc.InfoLogger.Printf("building %s", buildTarget)

	exitOnErr := func(what string, err error, errcode int) {
		if err != nil {
			misc.ErrLogger.Printf("failed to build %s: %v", what, err)
			os.Exit(errcode)
		}
	}

	buildDesktop := func() {
		err, errcode := BuildApp(settings, false)
		exitOnErr("for desktop", err, errcode)
	}
	buildWeb := func() {
		err, errcode := BuildApp(settings, true)
		exitOnErr("for web", err, errcode)
	}
	buildGLCheck := func() {
		err, errcode := BuildGLCheck(settings)
		exitOnErr("glcheck", err, errcode)
	}

	switch buildTarget {
	case "desktop":
		buildDesktop()
		if settings["glcheck"] {
			buildGLCheck()
		}
	case "web":
		buildWeb()
	case "glcheck":
		buildGLCheck()
	case "all":
		buildDesktop()
		buildGLCheck()
		buildWeb()
	}
}

func SetMissingSettingsToDefault(settings map[string]bool) {
	for _, name := range SettingsList {
		if _, ok := settings[name]; !ok {
			settings[name] = DefaultSettings[name]
		}
	}
}

func CopySettings(settings map[string]bool) map[string]bool {
	settingsCopy := make(map[string]bool)
	for k, v := range settings {
		settingsCopy[k] = v
	}

	SetMissingSettingsToDefault(settingsCopy)

	return settingsCopy
}

func SaveSettings(path string, settings map[string]bool) error {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "// settings file for building\n")
	fmt.Fprintf(sb, "// lines starting with // are comments\n")
	fmt.Fprintf(sb, "\n")
	for _, settingName := range SettingsList {
		fmt.Fprintf(sb, "// %s\n", SettingsComments[settingName])
		fmt.Fprintf(sb, "%s %v\n", settingName, settings[settingName])
		fmt.Fprintf(sb, "\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0664)
}

func LoadSettings(path string) (map[string]bool, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(file) {
		return nil, fmt.Errorf("not a valid utf8 file")
	}

	text := strings.ReplaceAll(string(file), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	settings := CopySettings(DefaultSettings)

	for i, line := range lines {
		logWarning := func(format string, a ...any) {
			fileAndLine := fmt.Sprintf("%s:%d: ", path, i+1)
			fmt.Fprintf(os.Stderr, fileAndLine+format+"\n", a...)
		}

		trimmed := strings.TrimSpace(line)

		if len(trimmed) <= 0 || strings.HasPrefix(trimmed, "//") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			logWarning("\"%s\" doesn't have two fields, ignored", line)
			continue
		}

		if _, ok := DefaultSettings[fields[0]]; !ok {
			logWarning("\"%s\" is not a valid option, ignored", fields[0])
			continue
		}

		switch fields[1] {
		case "true":
			settings[fields[0]] = true
		case "false":
			settings[fields[0]] = false
		default:
			logWarning("\"%s\" is not true or false, ignored", fields[1])
		}
	}

	return settings, nil
}

func runCmd(cmd *exec.Cmd) (error, int) {
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	misc.InfoLogger.Printf("%s", cmd.String())

	fmt.Printf("\n")
	err := cmd.Run()
	fmt.Printf("\n")

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return err, exitErr.ExitCode()
		}
		return err, 1
	}
	return nil, 0
}

func goBuildCmd(settings map[string]bool, dst, tags string, pkgs ...string) *exec.Cmd {
	gcFlags := "-e -l -N"
	if settings["opt"] {
		gcFlags = "-e"
	}

	cmd := exec.Command(
		"go",
		"build",
		"-o", dst,
		"-tags="+tags,
		"-gcflags=all="+gcFlags,
	)

	if settings["no-vcs"] {
		cmd.Args = append(cmd.Args, "-buildvcs=false")
	}

	cmd.Args = append(cmd.Args, pkgs...)
	return cmd
}

func BuildApp(settings map[string]bool, buildWeb bool) (error, int) {
	tags := ""
	if settings["pprof"] {
		tags += "pgepprof,"
	}

	dst := "testpge"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	if buildWeb {
		dst = "./web_build/testpge.wasm"
	}

	cmd := goBuildCmd(settings, dst, tags)

	if buildWeb {
		cmd.Env = append(cmd.Env, os.Environ()...)
		cmd.Env = append(cmd.Env, "GOOS=js")
		cmd.Env = append(cmd.Env, "GOARCH=wasm")
	}

	if err, errcode := runCmd(cmd); err != nil {
		return err, errcode
	}

	if buildWeb && settings["wasm-opt"] {
		misc.InfoLogger.Printf("optimizing using wasm-opt")
		if !misc.CheckExeExists("wasm-opt") {
			return fmt.Errorf("couldn't find wasm-opt"), 1
		}

		cmd := exec.Command(
			"wasm-opt",
			"./web_build/testpge.wasm",
			"-O2",
			"--enable-bulk-memory-opt",
			"-o",
			"./web_build/testpge-opt.wasm",
		)
		if err, errcode := runCmd(cmd); err != nil {
			return err, errcode
		}

		if err := os.Rename("./web_build/testpge.wasm", "./web_build/testpge.wasm.bak"); err != nil {
			return err, 1
		}
		if err := os.Rename("./web_build/testpge-opt.wasm", "./web_build/testpge.wasm"); err != nil {
			return err, 1
		}
	}

	return nil, 0
}

// BuildGLCheck rebuilds cmd/glcheck when it or the glsl sources changed.
func BuildGLCheck(settings map[string]bool) (error, int) {
	dst := "glcheck"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}

	srcs := []string{
		"cmd/glcheck/main.go",
		"shader/registry.go",
	}
	glsl, err := filepath.Glob("shader/shaders/*.glsl")
	if err != nil {
		return err, 1
	}
	srcs = append(srcs, glsl...)

	if !NeedToBuild([]string{dst}, srcs) {
		misc.InfoLogger.Printf("%s is up to date", dst)
		return nil, 0
	}

	return runCmd(goBuildCmd(settings, dst, "", "./cmd/glcheck"))
}

func NeedToBuild(targets []string, srcs []string) bool {
	// if any of the targets don't exist,
	// we definitely need to build it
	for _, target := range targets {
		if exists, err := misc.CheckFileExists(target); err != nil {
			misc.ErrLogger.Fatalf("failed to check if %s exists: %v", target, err)
		} else if !exists {
			return true
		}
	}

	var srcNewest time.Time
	var targetOldest time.Time

	for i, src := range srcs {
		info, err := os.Stat(src)
		if err != nil {
			misc.ErrLogger.Fatalf("failed to check mod time of %s: %v", src, err)
		}
		if i == 0 || srcNewest.Before(info.ModTime()) {
			srcNewest = info.ModTime()
		}
	}

	for i, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			misc.ErrLogger.Fatalf("failed to check mod time of %s: %v", target, err)
		}
		if i == 0 || targetOldest.After(info.ModTime()) {
			targetOldest = info.ModTime()
		}
	}

	return srcNewest.After(targetOldest)
}
