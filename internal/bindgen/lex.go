package bindgen

import (
	"regexp"
	"strings"

	"github.com/uibind/uibind/internal/core/domain"
)

// publicName matches the library's public identifier shape: a "ui" prefix
// followed by capitalized words. Everything else in the headers is private
// plumbing and stays unbound.
var publicName = regexp.MustCompile(`^ui(?:[A-Z][a-z0-9]*)*$`)

func allowlisted(name string) bool {
	return publicName.MatchString(name)
}

// typeWords are tokens that can only ever be part of a type, used to tell a
// trailing parameter name from an unnamed parameter's type.
var typeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"const": true, "struct": true, "enum": true, "union": true, "tm": true,
	"size_t": true, "uintptr_t": true, "intmax_t": true, "uintmax_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
}

// stripComments blanks out line and block comments while preserving newlines,
// so statement line numbers stay accurate.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			block := src[i:]
			if end := strings.Index(src[i+2:], "*/"); end >= 0 {
				block = src[i : i+2+end+2]
			}
			for _, c := range block {
				if c == '\n' {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
			}
			i += len(block)
		default:
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String()
}

type logicalLine struct {
	text string
	num  int
}

// logicalLines splits the source into lines, joining backslash continuations
// into the line they start on.
func logicalLines(src string) []logicalLine {
	raw := strings.Split(src, "\n")
	lines := make([]logicalLine, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		start := i + 1
		text := raw[i]
		for continued(text) && i+1 < len(raw) {
			text = strings.TrimSuffix(strings.TrimRight(text, " \t"), `\`) + " " + raw[i+1]
			i++
		}
		lines = append(lines, logicalLine{text: text, num: start})
	}
	return lines
}

func continued(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t"), `\`)
}

func identChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// ident splits a leading identifier from the rest of the string.
func ident(s string) (string, string) {
	i := 0
	for i < len(s) && identChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// trailingIdent splits a trailing identifier from the type specifier before
// it. Both halves are trimmed; either may come back empty.
func trailingIdent(s string) (name, spec string) {
	i := len(s)
	for i > 0 && identChar(s[i-1]) {
		i--
	}
	return s[i:], strings.TrimSpace(s[:i])
}

func validIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !identChar(s[i]) {
			return false
		}
	}
	return true
}

// parseType interprets a type specifier: qualifiers are dropped, pointer
// depth counted, and the remaining words form the base name.
func parseType(spec string) (domain.CType, bool) {
	t := domain.CType{Pointers: strings.Count(spec, "*")}
	var words []string
	for _, w := range strings.Fields(strings.ReplaceAll(spec, "*", " ")) {
		if w == "const" || w == "volatile" {
			continue
		}
		if !validIdent(w) {
			return domain.CType{}, false
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return domain.CType{}, false
	}
	t.Base = strings.Join(words, " ")
	return t, true
}

// splitParams splits a parameter list on top-level commas, leaving commas
// inside function-pointer parameter lists alone.
func splitParams(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

// parseParam interprets one parameter. Function pointers collapse to a bare
// function type the way cgo sees them; a missing name is legal and left
// empty for the emitter to fill.
func parseParam(spec string) (domain.Param, bool) {
	if open := strings.Index(spec, "(*"); open >= 0 {
		closing := strings.Index(spec[open:], ")")
		if closing < 0 {
			return domain.Param{}, false
		}
		name := strings.TrimSpace(spec[open+2 : open+closing])
		if name != "" && !validIdent(name) {
			return domain.Param{}, false
		}
		return domain.Param{Name: name, Type: domain.CType{Func: true}}, true
	}
	name, typeSpec := trailingIdent(spec)
	if name == "" || typeSpec == "" || typeWords[name] {
		// The whole spec is the type of an unnamed parameter.
		typ, ok := parseType(spec)
		if !ok {
			return domain.Param{}, false
		}
		return domain.Param{Type: typ}, true
	}
	typ, ok := parseType(typeSpec)
	if !ok {
		return domain.Param{}, false
	}
	return domain.Param{Name: name, Type: typ}, true
}
