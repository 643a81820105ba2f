package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"marketadmin/internal/app/dashboard"
)

type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, header ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	if len(header) > 0 {
		t.row(header...)
	}
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

// footer prints the pager line under a list, plus how many rows a
// client-side filter kept out of the fetched page.
func (a *app) footer(p dashboard.Pager, total int64, shown, fetched int) {
	if shown != fetched {
		a.printf("%s (%d of %d on this page match)\n", p.Label(total), shown, fetched)
		return
	}
	a.printf("%s\n", p.Label(total))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
