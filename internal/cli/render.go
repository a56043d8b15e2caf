package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/govault/govault/internal/record"
)

// renderRecords renders the table printed by the list/search/sort commands.
func renderRecords(records []record.Record) string {
	if len(records) == 0 {
		return "No records found."
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVALUE\tCREATED")
	for _, r := range records {
		created := "N/A"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Value, created)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
