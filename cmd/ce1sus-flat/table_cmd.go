package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
)

const defaultPerPage = 10

type tableOptions struct {
	page    int
	perPage int
	all     bool
	format  string
}

func newTableCmd() *cobra.Command {
	var opts tableOptions

	cmd := &cobra.Command{
		Use:   "table <file|->",
		Short: "Print one page of the flat observable table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.page < 1 {
				return withCode(exitUsage, fmt.Errorf("--page must be 1 or greater, got %d", opts.page))
			}
			if opts.perPage < 1 {
				return withCode(exitUsage, fmt.Errorf("--per-page must be 1 or greater, got %d", opts.perPage))
			}
			rows, err := readRows(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			perPage := opts.perPage
			if opts.all && len(rows) > 0 {
				perPage = len(rows)
			}
			flat := observable.NewFlatTable(rows, opts.page-1, perPage)
			switch opts.format {
			case "table":
				renderFlatTable(cmd.OutOrStdout(), flat)
				return nil
			case "json":
				return renderFlatJSON(cmd.OutOrStdout(), flat)
			default:
				return withCode(exitUsage, fmt.Errorf("unknown --format %q (table or json)", opts.format))
			}
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "Page to print (1-based)")
	cmd.Flags().IntVar(&opts.perPage, "per-page", defaultPerPage, "Rows per page")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Print every row on one page")
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table or json")
	return cmd
}

func yesNo(v observable.Flag) string {
	if v {
		return "yes"
	}
	return "no"
}

// renderFlatTable prints the visible rows. The observable column is only
// filled where the web view starts a merged group cell.
func renderFlatTable(w io.Writer, flat *observable.FlatTable) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Observable", "Span", "Object", "Definition", "Value", "IOC", "Shared"})

	offset := flat.Offset()
	for i, row := range flat.Visible() {
		index := offset + i
		group, span := "", ""
		if flat.WriteGroupCell(index) {
			group = row.GroupTitle()
			if row.ComposedOperator != "" {
				group += " (" + row.ComposedOperator + ")"
			}
			span = fmt.Sprint(flat.RowSpan(index))
		}
		t.AppendRow(table.Row{group, span, row.Object, row.Definition, row.Value, yesNo(row.IOC), yesNo(row.Shared)})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("page %d/%d", flat.Page+1, max(flat.NumPages(), 1)), "", fmt.Sprintf("%d rows", len(flat.Rows))})
	t.Render()
}

type jsonRow struct {
	*observable.FlatRow
	GroupTitle string `json:"group_title"`
	GroupCell  bool   `json:"group_cell"`
	RowSpan    int    `json:"row_span"`
}

type jsonPage struct {
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	Pages   int       `json:"pages"`
	Total   int       `json:"total"`
	Rows    []jsonRow `json:"rows"`
}

func renderFlatJSON(w io.Writer, flat *observable.FlatTable) error {
	out := jsonPage{
		Page:    flat.Page,
		PerPage: flat.PerPage,
		Pages:   flat.NumPages(),
		Total:   len(flat.Rows),
		Rows:    []jsonRow{},
	}
	offset := flat.Offset()
	for i, row := range flat.Visible() {
		index := offset + i
		out.Rows = append(out.Rows, jsonRow{
			FlatRow:    row,
			GroupTitle: row.GroupTitle(),
			GroupCell:  flat.WriteGroupCell(index),
			RowSpan:    flat.RowSpan(index),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
