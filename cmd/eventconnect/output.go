package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vango-dev/eventconnect/pkg/form"
)

// newTable returns a borderless left-aligned table on w.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// printErrors lists the non-empty dialog errors in key order.
func printErrors(w io.Writer, schema *form.Schema, errs form.Errors) {
	for _, key := range schema.ErrorKeys() {
		if msg := errs[key]; msg != "" {
			fmt.Fprintf(w, "%s %s: %s\n", color.FgRed.Sprint("✗"), key, msg)
		}
	}
}

// yesNo renders a boolean column.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
