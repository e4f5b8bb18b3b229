package bindgen

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/uibind/uibind/internal/core/domain"
	"go.trai.ch/zerr"
)

// parser scans one public header and accumulates declarations into a shared
// set. The grammar covers exactly the constructs the public headers use;
// anything the grammar does not recognize is a parse error naming file and
// line rather than a silently dropped declaration.
type parser struct {
	file    string
	decls   *domain.DeclSet
	structs map[string]int // struct name to index in decls.Structs
}

func parseHeader(path string, decls *domain.DeclSet, structs map[string]int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHeaderNotFound.Error()), "path", path)
	}
	p := &parser{file: filepath.Base(path), decls: decls, structs: structs}
	return p.parse(string(raw))
}

// parse walks the comment-stripped source line by line, folding braced blocks
// and preprocessor continuations into single logical statements. The C++
// linkage guard survives the directive skip as bare text and is dropped here.
func (p *parser) parse(src string) error {
	var (
		stmt     []string
		stmtLine int
		depth    int
	)
	for _, ln := range logicalLines(stripComments(src)) {
		text := strings.TrimSpace(ln.text)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			if err := p.directive(text, ln.num); err != nil {
				return err
			}
			continue
		}
		if depth == 0 && len(stmt) == 0 {
			if text == `extern "C" {` || text == "}" {
				continue
			}
			stmtLine = ln.num
		}
		stmt = append(stmt, text)
		depth += strings.Count(text, "{") - strings.Count(text, "}")
		if depth < 0 {
			return p.errorf(ln.num, "unbalanced braces")
		}
		if depth == 0 && strings.HasSuffix(text, ";") {
			if err := p.statement(strings.Join(stmt, " "), stmtLine); err != nil {
				return err
			}
			stmt = stmt[:0]
		}
	}
	if len(stmt) > 0 {
		return p.errorf(stmtLine, "unterminated declaration")
	}
	return nil
}

// directive handles one preprocessor line. Conditionals, pragmas and includes
// carry no declarations, so only #define is inspected further.
func (p *parser) directive(text string, line int) error {
	name, rest := ident(strings.TrimSpace(text[1:]))
	if name == "define" {
		return p.define(strings.TrimSpace(rest), line)
	}
	return nil
}

// define records allow-listed object-like numeric macros. Function-like
// macros are helper casts and boilerplate generators, never constants.
func (p *parser) define(body string, line int) error {
	name, rest := ident(body)
	if name == "" {
		return p.errorf(line, "malformed #define")
	}
	if strings.HasPrefix(rest, "(") || !allowlisted(name) {
		return nil
	}
	value := strings.TrimSpace(rest)
	if value == "" || !strings.ContainsAny(value[:1], "0123456789.+-(") {
		return nil
	}
	p.decls.Defines = append(p.decls.Defines, domain.Define{Name: name, Value: value})
	return nil
}

func (p *parser) statement(s string, line int) error {
	s = strings.Join(strings.Fields(s), " ")
	switch {
	case strings.HasPrefix(s, "_UI_ENUM("):
		return p.enumDecl(s, line)
	case strings.HasPrefix(s, "_UI_EXTERN "):
		return p.functionDecl(strings.TrimPrefix(s, "_UI_EXTERN "), line)
	case strings.HasPrefix(s, "typedef "):
		return p.typedefDecl(strings.TrimPrefix(s, "typedef "), line)
	case strings.HasPrefix(s, "struct "):
		return p.structDecl(strings.TrimPrefix(s, "struct "), line)
	default:
		return p.errorf(line, "unrecognized declaration "+strconv.Quote(s))
	}
}

// enumDecl parses an _UI_ENUM(name) { members }; block. The macro expands to
// a typedef plus the enum itself, so the name doubles as a type.
func (p *parser) enumDecl(s string, line int) error {
	open := strings.Index(s, "(")
	closing := strings.Index(s, ")")
	bodyStart := strings.Index(s, "{")
	if closing < open || bodyStart < closing || !strings.HasSuffix(s, "};") {
		return p.errorf(line, "malformed enum block")
	}
	name := strings.TrimSpace(s[open+1 : closing])
	if !validIdent(name) {
		return p.errorf(line, "malformed enum name "+strconv.Quote(name))
	}
	enum := domain.Enum{Name: name}
	for _, entry := range strings.Split(s[bodyStart+1:len(s)-2], ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		member := domain.EnumMember{Name: entry}
		if eq := strings.Index(entry, "="); eq >= 0 {
			member.Name = strings.TrimSpace(entry[:eq])
			member.Value = strings.TrimSpace(entry[eq+1:])
		}
		if !validIdent(member.Name) {
			return p.errorf(line, "malformed enumerator "+strconv.Quote(entry))
		}
		if allowlisted(member.Name) {
			enum.Members = append(enum.Members, member)
		}
	}
	if allowlisted(name) {
		p.decls.Enums = append(p.decls.Enums, enum)
	}
	return nil
}

// functionDecl parses an _UI_EXTERN prototype. Functions outside the
// allowlist are parsed for validity but not bound.
func (p *parser) functionDecl(s string, line int) error {
	body := strings.TrimSuffix(s, ";")
	open := strings.Index(body, "(")
	if open < 0 || !strings.HasSuffix(body, ")") {
		return p.errorf(line, "malformed function prototype")
	}
	name, retSpec := trailingIdent(strings.TrimSpace(body[:open]))
	if name == "" || retSpec == "" {
		return p.errorf(line, "malformed function declarator")
	}
	ret, ok := parseType(retSpec)
	if !ok {
		return p.errorf(line, "malformed return type "+strconv.Quote(retSpec))
	}
	fn := domain.Function{Name: name, Return: ret}
	for i, spec := range splitParams(body[open+1 : len(body)-1]) {
		spec = strings.TrimSpace(spec)
		switch {
		case spec == "" && i == 0:
			continue
		case spec == "void" && i == 0:
			continue
		case spec == "...":
			fn.Variadic = true
		default:
			param, ok := parseParam(spec)
			if !ok {
				return p.errorf(line, "malformed parameter "+strconv.Quote(spec))
			}
			fn.Params = append(fn.Params, param)
		}
	}
	if allowlisted(name) {
		p.decls.Functions = append(p.decls.Functions, fn)
	}
	return nil
}

// typedefDecl parses the three typedef shapes the headers use: the opaque
// struct typedef, the function-pointer typedef, and the plain alias.
func (p *parser) typedefDecl(s string, line int) error {
	body := strings.TrimSuffix(s, ";")
	if strings.ContainsAny(body, "{}") {
		return p.errorf(line, "unsupported typedef body")
	}
	if open := strings.Index(body, "(*"); open >= 0 {
		closing := strings.Index(body[open:], ")")
		if closing < 0 {
			return p.errorf(line, "malformed function pointer typedef")
		}
		name := strings.TrimSpace(body[open+2 : open+closing])
		if !validIdent(name) {
			return p.errorf(line, "malformed function pointer typedef")
		}
		if allowlisted(name) {
			p.decls.Callbacks = append(p.decls.Callbacks, domain.Callback{Name: name})
		}
		return nil
	}
	name, spec := trailingIdent(body)
	if name == "" || spec == "" {
		return p.errorf(line, "malformed typedef")
	}
	if allowlisted(name) {
		p.declareStruct(name, true)
	}
	return nil
}

// structDecl handles a struct definition or forward declaration. Field lists
// are consumed without interpretation: the generated alias exposes fields
// through the C type itself.
func (p *parser) structDecl(s string, line int) error {
	name, rest := ident(s)
	if name == "" {
		return p.errorf(line, "malformed struct declaration")
	}
	rest = strings.TrimSpace(rest)
	switch {
	case rest == ";":
		return nil
	case strings.HasPrefix(rest, "{") && strings.HasSuffix(rest, "};"):
		if allowlisted(name) {
			p.declareStruct(name, false)
		}
		return nil
	}
	return p.errorf(line, "malformed struct declaration")
}

// declareStruct records a struct name once. A definition following the usual
// opaque typedef flips the existing entry instead of duplicating it.
func (p *parser) declareStruct(name string, opaque bool) {
	if i, ok := p.structs[name]; ok {
		if !opaque {
			p.decls.Structs[i].Opaque = false
		}
		return
	}
	p.structs[name] = len(p.decls.Structs)
	p.decls.Structs = append(p.decls.Structs, domain.Struct{Name: name, Opaque: opaque})
}

func (p *parser) errorf(line int, detail string) error {
	err := zerr.With(domain.ErrHeaderParseFailed, "file", p.file)
	err = zerr.With(err, "line", line)
	return zerr.With(err, "detail", detail)
}
