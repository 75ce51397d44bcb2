package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/core"
	"github.com/funvibe/fxquery/internal/fixture"
	"github.com/funvibe/fxquery/internal/lsp"
	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/typesystem"
)

var (
	inspectJSON  bool
	inspectColor string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <fixture.yaml>",
	Short: "Print every response in a fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Emit LSP hover/definition JSON")
	inspectCmd.Flags().StringVar(&inspectColor, "color", "auto", "Color output: auto, always, never")
}

// styles holds color formatters for human output.
type styles struct {
	kind    *color.Color
	loc     *color.Color
	typ     *color.Color
	method  *color.Color
	inconcl *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		kind:    color.New(color.Bold, color.FgHiBlue),
		loc:     color.New(color.FgHiWhite),
		typ:     color.New(color.FgHiGreen),
		method:  color.New(color.FgYellow),
		inconcl: color.New(color.FgRed),
	}
	if !enabled {
		for _, c := range []*color.Color{s.kind, s.loc, s.typ, s.method, s.inconcl} {
			c.DisableColor()
		}
	}
	return s
}

func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func runInspect(cmd *cobra.Command, args []string) error {
	config.IsLSPMode = true
	fx, err := fixture.Load(args[0], cfg, logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if inspectJSON {
		return writeJSON(out, fx)
	}
	return writeHuman(out, fx, newStyles(colorEnabled(inspectColor, out)))
}

func writeHuman(out io.Writer, fx *fixture.Fixture, st *styles) error {
	gs := fx.State
	for _, resp := range fx.Responses {
		fmt.Fprintf(out, "%s %s", st.kind.Sprint(resp.Kind()), st.loc.Sprint(resp.Loc().Show(gs.Files())))
		if text, ok := resp.Loc().Source(gs.Files()); ok {
			fmt.Fprintf(out, " %q", text)
		}
		if resp.HasType() {
			fmt.Fprintf(out, " : %s", st.typ.Sprint(typesystem.PrettifyType(resp.RetType())))
		}
		if send := resp.IsSend(); send != nil {
			fmt.Fprint(out, " method ")
			if nameLoc, ok := send.MethodNameLoc(gs); ok {
				fmt.Fprint(out, st.method.Sprintf("[%d,%d)", nameLoc.BeginPos(), nameLoc.EndPos()))
			} else {
				fmt.Fprint(out, st.inconcl.Sprint(inconclusiveLabel(gs, send)))
			}
		}
		if edit := resp.IsEdit(); edit != nil {
			fmt.Fprintf(out, " -> %q", edit.Replacement)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// inconclusiveLabel marks calls written with operator syntax, whose method name
// never appears in the source text.
func inconclusiveLabel(gs *core.GlobalState, send *query.SendResponse) string {
	if send.Dispatch != nil {
		sym, err := gs.Symbols().Method(send.Dispatch.Main.Method)
		if err == nil && sym.IsOperatorSugar {
			return "inconclusive (operator)"
		}
	}
	return "inconclusive"
}

type jsonResponse struct {
	Kind       string         `json:"kind"`
	Location   *lsp.Location  `json:"location,omitempty"`
	Hover      *lsp.Hover     `json:"hover,omitempty"`
	Definition []lsp.Location `json:"definition,omitempty"`
	Edit       *lsp.TextEdit  `json:"edit,omitempty"`
}

func toJSON(gs *core.GlobalState, resp *query.Response) (jsonResponse, error) {
	jr := jsonResponse{Kind: resp.Kind().String()}
	loc, err := lsp.LocationOf(gs.Files(), resp.Loc())
	if err != nil {
		return jr, err
	}
	jr.Location = &loc
	if jr.Hover, err = lsp.HoverFor(gs, resp); err != nil {
		return jr, err
	}
	if jr.Definition, err = lsp.DefinitionFor(gs, resp); err != nil {
		return jr, err
	}
	if resp.IsEdit() != nil {
		if jr.Edit, err = lsp.EditFor(gs, resp); err != nil {
			return jr, err
		}
	}
	return jr, nil
}

func writeJSON(out io.Writer, fx *fixture.Fixture) error {
	all := make([]jsonResponse, 0, len(fx.Responses))
	for _, resp := range fx.Responses {
		jr, err := toJSON(fx.State, resp)
		if err != nil {
			return err
		}
		all = append(all, jr)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(all)
}
