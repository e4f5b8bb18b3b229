package bindgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/uibind/uibind/internal/core/domain"
)

// cgoNames maps C base types to their cgo spellings. Base types absent from
// the table belong to the toolkit headers and go through C verbatim.
var cgoNames = map[string]string{
	"char":               "C.char",
	"signed char":        "C.schar",
	"unsigned char":      "C.uchar",
	"short":              "C.short",
	"unsigned short":     "C.ushort",
	"int":                "C.int",
	"unsigned":           "C.uint",
	"unsigned int":       "C.uint",
	"long":               "C.long",
	"unsigned long":      "C.ulong",
	"long long":          "C.longlong",
	"unsigned long long": "C.ulonglong",
	"float":              "C.float",
	"double":             "C.double",
	"size_t":             "C.size_t",
	"uintptr_t":          "C.uintptr_t",
	"intmax_t":           "C.intmax_t",
	"uintmax_t":          "C.uintmax_t",
	"int8_t":             "C.int8_t",
	"int16_t":            "C.int16_t",
	"int32_t":            "C.int32_t",
	"int64_t":            "C.int64_t",
	"uint8_t":            "C.uint8_t",
	"uint16_t":           "C.uint16_t",
	"uint32_t":           "C.uint32_t",
	"uint64_t":           "C.uint64_t",
	"struct tm":          "C.struct_tm",
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
}

// emitter renders one declaration set as Go source. Output is emitted
// already gofmt-shaped so formatting never reorders or realigns anything,
// which keeps repeated runs byte-identical.
type emitter struct {
	body    bytes.Buffer
	aliases map[string]string
	unsafe  bool
}

func newEmitter(decls *domain.DeclSet) *emitter {
	e := &emitter{aliases: make(map[string]string)}
	for _, s := range decls.Structs {
		e.aliases[s.Name] = exported(s.Name)
	}
	for _, c := range decls.Callbacks {
		e.aliases[c.Name] = exported(c.Name)
	}
	for _, en := range decls.Enums {
		e.aliases[en.Name] = exported(en.Name)
	}
	return e
}

func (e *emitter) emit(decls *domain.DeclSet) {
	for _, s := range decls.Structs {
		fmt.Fprintf(&e.body, "\n// %s mirrors the C type %s.\n", exported(s.Name), s.Name)
		fmt.Fprintf(&e.body, "type %s = C.%s\n", exported(s.Name), s.Name)
	}
	for _, c := range decls.Callbacks {
		fmt.Fprintf(&e.body, "\n// %s mirrors the C callback type %s.\n", exported(c.Name), c.Name)
		fmt.Fprintf(&e.body, "type %s = C.%s\n", exported(c.Name), c.Name)
	}
	for _, en := range decls.Enums {
		e.enum(en)
	}
	e.defines(decls.Defines)
	for _, fn := range decls.Functions {
		e.function(fn)
	}
}

func (e *emitter) enum(en domain.Enum) {
	name := exported(en.Name)
	fmt.Fprintf(&e.body, "\n// %s mirrors the C enum %s.\n", name, en.Name)
	fmt.Fprintf(&e.body, "type %s = C.%s\n", name, en.Name)
	if len(en.Members) == 0 {
		return
	}
	fmt.Fprintf(&e.body, "\n// %s values.\n", name)
	e.body.WriteString("const (\n")
	width := 0
	for _, m := range en.Members {
		if n := len(exported(m.Name)); n > width {
			width = n
		}
	}
	for _, m := range en.Members {
		fmt.Fprintf(&e.body, "\t%-*s = C.%s\n", width, exported(m.Name), m.Name)
	}
	e.body.WriteString(")\n")
}

func (e *emitter) defines(defines []domain.Define) {
	if len(defines) == 0 {
		return
	}
	e.body.WriteString("\n// Numeric constants from the public headers.\n")
	e.body.WriteString("const (\n")
	width := 0
	for _, d := range defines {
		if n := len(exported(d.Name)); n > width {
			width = n
		}
	}
	for _, d := range defines {
		fmt.Fprintf(&e.body, "\t%-*s = C.%s\n", width, exported(d.Name), d.Name)
	}
	e.body.WriteString(")\n")
}

func (e *emitter) function(fn domain.Function) {
	if fn.Variadic {
		// cgo cannot call variadic C functions.
		return
	}
	params := make([]string, 0, len(fn.Params))
	args := make([]string, 0, len(fn.Params))
	for i, p := range fn.Params {
		name := paramName(p.Name, i)
		params = append(params, name+" "+e.goType(p.Type))
		args = append(args, name)
	}
	name := exported(fn.Name)
	fmt.Fprintf(&e.body, "\n// %s wraps the C function %s.\n", name, fn.Name)
	call := fmt.Sprintf("C.%s(%s)", fn.Name, strings.Join(args, ", "))
	if fn.Return.Void() {
		fmt.Fprintf(&e.body, "func %s(%s) {\n\t%s\n}\n", name, strings.Join(params, ", "), call)
		return
	}
	fmt.Fprintf(&e.body, "func %s(%s) %s {\n\treturn %s\n}\n",
		name, strings.Join(params, ", "), e.goType(fn.Return), call)
}

// goType maps a parsed C type onto the Go spelling cgo expects: aliases for
// library types, unsafe.Pointer for void pointers, *[0]byte for bare
// function pointers, and C.<name> for everything else.
func (e *emitter) goType(t domain.CType) string {
	if t.Func {
		return "*[0]byte"
	}
	if t.Base == "void" && t.Pointers > 0 {
		e.unsafe = true
		return strings.Repeat("*", t.Pointers-1) + "unsafe.Pointer"
	}
	base, ok := cgoNames[t.Base]
	if !ok {
		base = "C." + t.Base
		if alias, ok := e.aliases[t.Base]; ok {
			base = alias
		}
	}
	return strings.Repeat("*", t.Pointers) + base
}

// exported derives the Go name by dropping the shared prefix the allowlist
// guarantees, leaving a capitalized, exported identifier.
func exported(cName string) string {
	if name := strings.TrimPrefix(cName, "ui"); name != "" {
		return name
	}
	return "UI"
}

func paramName(name string, index int) string {
	switch {
	case name == "":
		return fmt.Sprintf("arg%d", index)
	case goKeywords[name]:
		return name + "_"
	default:
		return name
	}
}
