package lsp

import (
	"fmt"

	"github.com/funvibe/fxquery/internal/core"
	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/typesystem"
)

// HoverFor renders the hover box for resp. Edits have nothing to show and yield nil.
func HoverFor(gs *core.GlobalState, resp *query.Response) (*Hover, error) {
	if !resp.HasType() {
		return nil, nil
	}
	typ := typesystem.PrettifyType(resp.RetType())
	loc := resp.Loc()

	var text string
	switch v := resp.Variant().(type) {
	case *query.SendResponse:
		sym, err := gs.Symbols().Method(v.Dispatch.Main.Method)
		if err != nil {
			return nil, err
		}
		text = fmt.Sprintf("```funxy\n%s: %s\n```", sym.FullName(), typ)
		// Anchor the box on the method name when it can be found.
		if nameLoc, ok := v.MethodNameLoc(gs); ok {
			loc = nameLoc
		}
	case *query.IdentResponse:
		text = fmt.Sprintf("```funxy\n%s: %s\n```", v.Name, typ)
	case *query.ConstantResponse:
		text = fmt.Sprintf("```funxy\n%s: %s\n```", v.Name, typ)
	case *query.FieldResponse:
		text = fmt.Sprintf("```funxy\n%s: %s\n```", v.Name, typ)
	case *query.DefinitionResponse:
		text = fmt.Sprintf("```funxy\n%s: %s\n```", v.Name, typ)
	case *query.LiteralResponse:
		text = fmt.Sprintf("```funxy\n%s\n```", typ)
	}

	rng, err := RangeOf(gs.Files(), loc)
	if err != nil {
		return nil, err
	}
	return &Hover{
		Contents: MarkupContent{Kind: "markdown", Value: text},
		Range:    &rng,
	}, nil
}

// DefinitionFor lists where the thing under the cursor is defined: every dispatch
// candidate for a call, the term itself for a definition, and the type's origins
// otherwise.
func DefinitionFor(gs *core.GlobalState, resp *query.Response) ([]Location, error) {
	var locs []source.Loc
	switch v := resp.Variant().(type) {
	case *query.SendResponse:
		if v.Dispatch == nil {
			return nil, nil
		}
		for _, ref := range v.Dispatch.Methods() {
			if loc := gs.Symbols().DefinitionLoc(ref); loc.Exists() {
				locs = append(locs, loc)
			}
		}
	case *query.DefinitionResponse:
		locs = append(locs, v.TermLoc)
	case *query.EditResponse:
		return nil, nil
	default:
		locs = resp.TypeAndOrigins().OriginLocs()
	}

	out := make([]Location, 0, len(locs))
	for _, loc := range locs {
		l, err := LocationOf(gs.Files(), loc)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// EditFor turns an edit response into a protocol text edit.
func EditFor(gs *core.GlobalState, resp *query.Response) (*TextEdit, error) {
	edit := resp.IsEdit()
	if edit == nil {
		return nil, fmt.Errorf("%s response is not an edit", resp.Kind())
	}
	rng, err := RangeOf(gs.Files(), edit.Loc)
	if err != nil {
		return nil, err
	}
	return &TextEdit{Range: rng, NewText: edit.Replacement}, nil
}
