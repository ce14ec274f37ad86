// AngelaMos | 2026
// output.go

package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/importer"
)

func printDryRun(w io.Writer, res *importer.DryRunResult) {
	fmt.Fprintf(w, "%d valid rows (%d new, %d updates), %d rejected\n\n",
		len(res.Payloads), res.Creates(), res.Updates(), len(res.Errors))

	if len(res.Payloads) > 0 {
		printPayloads(w, res)
	}
	if len(res.Errors) > 0 {
		fmt.Fprintln(w)
		printRowErrors(w, res.Errors)
	}
}

func printPayloads(w io.Writer, res *importer.DryRunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Row", "Name", "Phone", "Gender", "Start", "Expire", "Months", "Action"})

	for _, p := range res.Payloads {
		start := text.FgHiBlack.Sprint("-")
		months := 1
		if p.Fields.StartDate != nil {
			start = p.Fields.StartDate.String()
			months = calendar.MonthsBetween(*p.Fields.StartDate, p.Fields.ExpireDate)
		}

		action := text.FgGreen.Sprint("CREATE")
		if slices.Contains(res.Repeats[p.Fields.Phone], p.Row) {
			action = text.FgYellow.Sprint("UPDATE")
		}

		t.AppendRow(table.Row{
			p.Row,
			p.Fields.Name,
			p.Fields.Phone,
			string(p.Fields.Gender),
			start,
			p.Fields.ExpireDate.String(),
			months,
			action,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.Render()
}

func printRowErrors(w io.Writer, errs []importer.RowError) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Row", "Reason"})

	for _, e := range errs {
		t.AppendRow(table.Row{e.Row, text.FgRed.Sprint(e.Reason)})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
}
