// Package export builds the dashboard's CSV download: the selected
// contacts if any are selected, otherwise the full filtered result.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"leadscope/internal/models"
)

const header = "Name,Title,Company,Industry,Employees,Score,Status,LinkedIn URL,Email"

// Filename returns the export name for a given day, e.g.
// leads-export-2026-08-28.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("leads-export-%s.csv", now.Format("2006-01-02"))
}

// Build renders the CSV payload. Text fields are always double-quoted
// (internal quotes doubled); the numeric and status columns stay bare.
func Build(contacts []models.Contact) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	for _, c := range contacts {
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%d,%s,%s,%s\n",
			quote(c.Name),
			quote(c.Title),
			quote(c.CompanyName),
			quote(c.Industry),
			c.EmployeeCount,
			c.TotalScore,
			c.Status,
			quote(c.LinkedInURL),
			quote(c.Email),
		))
	}

	return b.String()
}

// WriteFile builds the CSV and writes it under dir with the dated
// filename, returning the full path.
func WriteFile(dir string, contacts []models.Contact, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, []byte(Build(contacts)), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
