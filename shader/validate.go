package shader

import (
	"fmt"
	"regexp"
	"slices"
)

// StripComments blanks out // and /* */ comments.
// Newlines are kept so line numbers stay the same.
func StripComments(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	for i := 0; i < len(out); i++ {
		if out[i] != '/' || i+1 >= len(out) {
			continue
		}

		switch out[i+1] {
		case '/':
			for ; i < len(out) && out[i] != '\n'; i++ {
				out[i] = ' '
			}
		case '*':
			out[i], out[i+1] = ' ', ' '
			i += 2
			for ; i < len(out); i++ {
				if out[i] == '*' && i+1 < len(out) && out[i+1] == '/' {
					out[i], out[i+1] = ' ', ' '
					i++
					break
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
			}
		}
	}

	return out
}

var closerOf = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// CheckBalanced reports the first unbalanced (), [] or {} in src.
// Comments are ignored.
func CheckBalanced(src []byte) error {
	type open struct {
		char byte
		line int
	}

	var stack []open
	line := 1

	for _, c := range StripComments(src) {
		switch c {
		case '\n':
			line++
		case '(', '[', '{':
			stack = append(stack, open{c, line})
		case ')', ']', '}':
			if len(stack) == 0 {
				return fmt.Errorf("line %d: unexpected %q", line, c)
			}
			top := stack[len(stack)-1]
			if closerOf[top.char] != c {
				return fmt.Errorf("line %d: %q closes %q opened at line %d", line, c, top.char, top.line)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("line %d: %q is never closed", top.line, top.char)
	}

	return nil
}

// Interface is the set of external names a GLSL stage depends on or provides.
type Interface struct {
	Uniforms []string
	Inputs   []string
	Outputs  []string
}

var glslDeclRe = regexp.MustCompile(
	`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(uniform|in|out)\s+\w+\s+(\w+)\s*;`,
)

// GLSLInterface lists the uniform, in and out declarations of a GLSL stage, sorted.
func GLSLInterface(src string) Interface {
	var iface Interface

	for _, m := range glslDeclRe.FindAllStringSubmatch(string(StripComments([]byte(src))), -1) {
		switch m[1] {
		case "uniform":
			iface.Uniforms = append(iface.Uniforms, m[2])
		case "in":
			iface.Inputs = append(iface.Inputs, m[2])
		case "out":
			iface.Outputs = append(iface.Outputs, m[2])
		}
	}

	slices.Sort(iface.Uniforms)
	slices.Sort(iface.Inputs)
	slices.Sort(iface.Outputs)

	return iface
}

var kageUniformRe = regexp.MustCompile(`(?m)^var\s+(\w+)\s`)

// KageUniforms lists the top level uniform variables of a Kage program in declaration order.
func KageUniforms(src []byte) []string {
	var names []string
	for _, m := range kageUniformRe.FindAllSubmatch(StripComments(src), -1) {
		names = append(names, string(m[1]))
	}
	return names
}
