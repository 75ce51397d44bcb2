// Package fixture builds checker state and query responses from YAML documents,
// so responses can be produced without running the checker.
package fixture

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/core"
	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/symbols"
	"github.com/funvibe/fxquery/internal/typesystem"
)

// Document is the top-level fixture layout.
type Document struct {
	Files     []FileSpec     `yaml:"files"`
	Methods   []MethodSpec   `yaml:"methods,omitempty"`
	Responses []ResponseSpec `yaml:"responses"`
}

type FileSpec struct {
	Path string `yaml:"path"`
	Text string `yaml:"text"`
}

// MethodSpec declares a method. Methods referenced by responses but not declared
// here are entered without a definition location.
type MethodSpec struct {
	Name  string    `yaml:"name"`
	Owner string    `yaml:"owner,omitempty"`
	Def   *SpanSpec `yaml:"def,omitempty"`
	Sugar bool      `yaml:"sugar,omitempty"`
}

// SpanSpec locates text either by substring (At, the Nth occurrence counting from
// zero) or by explicit offsets (Range). Empty collapses the span to its start.
type SpanSpec struct {
	File  string   `yaml:"file,omitempty"`
	At    string   `yaml:"at,omitempty"`
	Nth   int      `yaml:"nth,omitempty"`
	Range []uint32 `yaml:"range,omitempty"`
	Empty bool     `yaml:"empty,omitempty"`
}

// ResponseSpec describes one response. Which fields apply depends on Kind.
type ResponseSpec struct {
	File string `yaml:"file"`
	Kind string `yaml:"kind"`

	Term SpanSpec `yaml:"term"`

	// send
	Receiver  *SpanSpec `yaml:"receiver,omitempty"`
	Method    string    `yaml:"method,omitempty"`
	Returns   string    `yaml:"returns,omitempty"`
	Secondary []string  `yaml:"secondary,omitempty"`

	// ident, literal, constant, field, definition
	Name    string     `yaml:"name,omitempty"`
	Type    string     `yaml:"type,omitempty"`
	Origins []SpanSpec `yaml:"origins,omitempty"`

	// edit
	Replacement string `yaml:"replacement,omitempty"`
}

// Fixture is a loaded document: the state it built and the responses it pushed,
// in document order.
type Fixture struct {
	State     *core.GlobalState
	Responses []*query.Response
}

// Load reads a fixture file.
func Load(path string, cfg *config.Config, logger *zap.Logger) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	fx, err := Parse(data, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fx, nil
}

// Parse builds a fixture from YAML. Every response is pushed onto the state's queue.
func Parse(data []byte, cfg *config.Config, logger *zap.Logger) (*Fixture, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return Build(&doc, cfg, logger)
}

// Build turns a decoded document into state and responses.
func Build(doc *Document, cfg *config.Config, logger *zap.Logger) (*Fixture, error) {
	gs := core.NewGlobalState(cfg, logger)
	b := &builder{gs: gs}

	for _, f := range doc.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("file without a path")
		}
		if !config.IsSourceFile(f.Path) {
			return nil, fmt.Errorf("file %q: not a source file (want one of %s)", f.Path, strings.Join(config.SourceFileExtensions, ", "))
		}
		gs.Files().Enter(f.Path, f.Text)
	}
	if len(doc.Files) == 0 {
		return nil, fmt.Errorf("fixture declares no files")
	}
	b.defaultFile = doc.Files[0].Path

	for i, m := range doc.Methods {
		if m.Name == "" {
			return nil, fmt.Errorf("methods[%d]: missing name", i)
		}
		sym := symbols.MethodSymbol{
			Name:            m.Name,
			Owner:           m.Owner,
			IsOperatorSugar: m.Sugar,
		}
		if m.Def != nil {
			loc, err := b.span(*m.Def, b.defaultFile)
			if err != nil {
				return nil, fmt.Errorf("methods[%d].def: %w", i, err)
			}
			sym.DefinitionLoc = loc
		}
		gs.Symbols().EnterMethod(sym)
	}

	fx := &Fixture{State: gs}
	for i, rs := range doc.Responses {
		resp, err := b.response(rs)
		if err != nil {
			return nil, fmt.Errorf("responses[%d]: %w", i, err)
		}
		fx.Responses = append(fx.Responses, resp)
	}
	return fx, nil
}

type builder struct {
	gs          *core.GlobalState
	defaultFile string
}

func (b *builder) file(path string) (source.FileRef, error) {
	ref, ok := b.gs.Files().Lookup(path)
	if !ok {
		return 0, fmt.Errorf("file %q: %w", path, source.ErrUnknownFile)
	}
	return ref, nil
}

func (b *builder) span(s SpanSpec, defaultPath string) (source.Loc, error) {
	path := s.File
	if path == "" {
		path = defaultPath
	}
	ref, err := b.file(path)
	if err != nil {
		return source.None(), err
	}
	f, err := b.gs.Files().File(ref)
	if err != nil {
		return source.None(), err
	}

	var begin, end uint32
	switch {
	case len(s.Range) == 2:
		begin, end = s.Range[0], s.Range[1]
		if begin > end || int(end) > len(f.Source) {
			return source.None(), fmt.Errorf("range [%d, %d) outside %s", begin, end, path)
		}
	case s.At != "":
		idx := nthIndex(f.Source, s.At, s.Nth)
		if idx < 0 {
			return source.None(), fmt.Errorf("%q (occurrence %d) not found in %s", s.At, s.Nth, path)
		}
		begin, end = uint32(idx), uint32(idx+len(s.At))
	default:
		return source.None(), fmt.Errorf("span needs either at or range")
	}
	if s.Empty {
		end = begin
	}
	return source.NewLoc(ref, begin, end), nil
}

func nthIndex(s, sub string, n int) int {
	offset := 0
	for i := 0; ; i++ {
		idx := strings.Index(s[offset:], sub)
		if idx < 0 {
			return -1
		}
		if i == n {
			return offset + idx
		}
		offset += idx + 1
	}
}

func (b *builder) method(fullName string) symbols.MethodRef {
	if refs := b.gs.Symbols().Find(fullName); len(refs) > 0 {
		return refs[0]
	}
	owner, name := "", fullName
	if i := strings.LastIndex(fullName, "."); i > 0 {
		owner, name = fullName[:i], fullName[i+1:]
	}
	return b.gs.Symbols().EnterMethod(symbols.MethodSymbol{Name: name, Owner: owner})
}

func (b *builder) typeAndOrigins(rs ResponseSpec, file string) (typesystem.TypeAndOrigins, error) {
	if rs.Type == "" {
		return typesystem.TypeAndOrigins{}, fmt.Errorf("%s response needs a type", rs.Kind)
	}
	typ, err := ParseType(rs.Type)
	if err != nil {
		return typesystem.TypeAndOrigins{}, err
	}
	tao := typesystem.TypeAndOrigins{Type: typ}
	for j, o := range rs.Origins {
		loc, err := b.span(o, file)
		if err != nil {
			return typesystem.TypeAndOrigins{}, fmt.Errorf("origins[%d]: %w", j, err)
		}
		tao.Origins = append(tao.Origins, loc)
	}
	return tao, nil
}

func (b *builder) response(rs ResponseSpec) (*query.Response, error) {
	path := rs.File
	if path == "" {
		path = b.defaultFile
	}
	ref, err := b.file(path)
	if err != nil {
		return nil, err
	}
	kind, err := query.ParseKind(rs.Kind)
	if err != nil {
		return nil, err
	}
	term, err := b.span(rs.Term, path)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}

	var v query.Variant
	switch kind {
	case query.KindSend:
		v, err = b.send(rs, path, term)
	case query.KindEdit:
		v = &query.EditResponse{Loc: term, Replacement: rs.Replacement}
	default:
		var tao typesystem.TypeAndOrigins
		tao, err = b.typeAndOrigins(rs, path)
		if err != nil {
			return nil, err
		}
		switch kind {
		case query.KindIdent:
			v = &query.IdentResponse{TermLoc: term, Name: rs.Name, RetType: tao}
		case query.KindLiteral:
			v = &query.LiteralResponse{TermLoc: term, RetType: tao}
		case query.KindConstant:
			v = &query.ConstantResponse{TermLoc: term, Name: rs.Name, RetType: tao}
		case query.KindField:
			v = &query.FieldResponse{TermLoc: term, Name: rs.Name, RetType: tao}
		case query.KindDefinition:
			v = &query.DefinitionResponse{TermLoc: term, Name: rs.Name, RetType: tao}
		}
	}
	if err != nil {
		return nil, err
	}
	return b.gs.Context(ref).PushQueryResponse(v), nil
}

func (b *builder) send(rs ResponseSpec, path string, term source.Loc) (query.Variant, error) {
	if rs.Method == "" {
		return nil, fmt.Errorf("send response needs a method")
	}
	ret, err := ParseType(orDefault(rs.Returns, "Nil"))
	if err != nil {
		return nil, err
	}

	// Without a receiver the call is bare: collapse the receiver onto the term start.
	receiver := source.NewLoc(term.File(), term.BeginPos(), term.BeginPos())
	if rs.Receiver != nil {
		receiver, err = b.span(*rs.Receiver, path)
		if err != nil {
			return nil, fmt.Errorf("receiver: %w", err)
		}
	}

	dispatch := &typesystem.DispatchResult{
		ReturnType: ret,
		Main:       typesystem.DispatchComponent{Method: b.method(rs.Method)},
	}
	tail := dispatch
	for _, name := range rs.Secondary {
		tail.Secondary = &typesystem.DispatchResult{
			ReturnType: ret,
			Main:       typesystem.DispatchComponent{Method: b.method(name)},
		}
		tail = tail.Secondary
	}
	return &query.SendResponse{TermLoc: term, ReceiverLoc: receiver, Dispatch: dispatch}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
