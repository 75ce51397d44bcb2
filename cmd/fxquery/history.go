package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/funvibe/fxquery/internal/store"
)

var historyDB string

var historyCmd = &cobra.Command{
	Use:   "history <path>",
	Short: "List logged responses for a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "", "Query log database (defaults to store.path)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := storePath(historyDB)
	if err != nil {
		return err
	}
	st, err := store.New(store.Config{Path: path})
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ByFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tRANGE\tTYPE\tMETHOD")
	for _, r := range records {
		method := "-"
		if r.Method != "" {
			method = fmt.Sprintf("%s [%d,%d)", r.Method, r.MethodBegin, r.MethodEnd)
		}
		typ := r.Type
		if typ == "" {
			typ = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t[%d,%d)\t%s\t%s\n", r.ID, r.Kind, r.Begin, r.End, typ, method)
	}
	return w.Flush()
}
