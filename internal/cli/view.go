package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gochat247/botadmin/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "view [table]",
		Short: "View all records of a table",
		Long:  "View a table's records. Tables: Bots, KnowledgeBase, BotKnowledgeLink.",
		Args:  cobra.ExactArgs(1),
		Run:   runView,
	}

	cmd.Flags().StringP("columns", "c", "", "Comma-separated columns to show (default: all)")
	cmd.Flags().StringP("sort", "s", "", "Column to sort by")
	cmd.Flags().Bool("desc", false, "Sort descending")

	RootCmd.AddCommand(cmd)
}

func runView(cmd *cobra.Command, args []string) {
	colsFlag, _ := cmd.Flags().GetString("columns")
	sortCol, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")

	table := store.Table(args[0])

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.ReadAll(cmd.Context(), table)
	if err != nil {
		exitErr("view", err)
	}

	columns := selectColumns(table, colsFlag)

	if sortCol != "" {
		if !table.HasColumn(sortCol) {
			exitErr("view", fmt.Errorf("unknown sort column %q", sortCol))
		}
		sortRows(rows, sortCol, desc)
	}

	if formatFlag == "table" {
		printTable(columns, rows)
		return
	}

	out := make([]store.Row, len(rows))
	for i, r := range rows {
		picked := make(store.Row, len(columns))
		for _, c := range columns {
			picked[c] = r[c]
		}
		out[i] = picked
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

// selectColumns resolves the --columns flag, keeping the table's required
// identifier column visible even when the operator deselects it.
func selectColumns(table store.Table, colsFlag string) []string {
	if colsFlag == "" {
		return table.Columns()
	}

	var columns []string
	for _, c := range strings.Split(colsFlag, ",") {
		c = strings.TrimSpace(c)
		if c != "" && table.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	required := table.RequiredColumn()
	for _, c := range columns {
		if c == required {
			return columns
		}
	}
	fmt.Fprintf(os.Stderr, "warning: the %q column cannot be removed\n", required)
	return append([]string{required}, columns...)
}

// sortRows orders rows by the given column, numerically when both values
// parse as numbers, lexically otherwise.
func sortRows(rows []store.Row, col string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][col], rows[j][col]
		less := a < b
		na, errA := strconv.ParseFloat(a, 64)
		nb, errB := strconv.ParseFloat(b, 64)
		if errA == nil && errB == nil {
			less = na < nb
		}
		if desc {
			return !less
		}
		return less
	})
}

func printTable(columns []string, rows []store.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(columns, "\t"))
	for _, r := range rows {
		vals := make([]string, len(columns))
		for i, c := range columns {
			vals[i] = r[c]
		}
		fmt.Fprintln(w, strings.Join(vals, "\t"))
	}
	w.Flush()
}
