package vault

import (
	"fmt"
	"os"
	"strings"
)

// DefaultExportPath is where Export writes when no path is given.
// The file is overwritten on every call.
const DefaultExportPath = "export.txt"

const exportTitle = "GOVAULT DATA EXPORT"

// ExportResult describes a completed export.
type ExportResult struct {
	Path  string `json:"path"`
	Count int    `json:"recordCount"`
}

// Export serializes the full record set to a human-readable text report.
//
// The report is a banner block (title, export date, total count) followed by
// one indented block per record with a 1-based index header. Timestamps
// render in UTC.
func (v *Vault) Export(path string) (ExportResult, error) {
	if path == "" {
		path = DefaultExportPath
	}

	records, err := v.store.ReadAll()
	if err != nil {
		return ExportResult{}, err
	}

	var b strings.Builder
	banner := strings.Repeat("=", 50)
	b.WriteString(banner + "\n")
	b.WriteString(exportTitle + "\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Export Date: %s\n", v.now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Records: %d\n", len(records))
	b.WriteString(banner + "\n\n")

	for i, r := range records {
		fmt.Fprintf(&b, "RECORD %d\n", i+1)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		fmt.Fprintf(&b, "  ID:    %d\n", r.ID)
		fmt.Fprintf(&b, "  Name:  %s\n", r.Name)
		fmt.Fprintf(&b, "  Value: %s\n", r.Value)
		if !r.CreatedAt.IsZero() {
			fmt.Fprintf(&b, "  Created: %s\n", r.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return ExportResult{}, fmt.Errorf("write export: %w", err)
	}

	v.logger.Info("export written", "path", path, "records", len(records))
	return ExportResult{Path: path, Count: len(records)}, nil
}
