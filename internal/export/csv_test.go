package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leadscope/internal/models"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "leads-export-2026-08-28.csv", Filename(now))
}

func TestBuildQuotesTextFields(t *testing.T) {
	contacts := []models.Contact{
		{
			ID:            "c1",
			Name:          `Doe, Jane`,
			Title:         `Head of "Growth"`,
			CompanyName:   "Acme Corp",
			Industry:      "Software",
			EmployeeCount: 1200,
			TotalScore:    87,
			Status:        models.StatusHot,
			LinkedInURL:   "https://linkedin.com/in/janedoe",
			Email:         "jane@acme.example",
		},
	}

	out := Build(contacts)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "header plus one row")
	require.Equal(t, "Name,Title,Company,Industry,Employees,Score,Status,LinkedIn URL,Email", lines[0])

	// Numeric and status columns stay unquoted.
	require.Contains(t, lines[1], ",1200,87,hot,")

	// A comma inside a name survives the round trip as a single field.
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	require.Equal(t, "Doe, Jane", row[0])
	require.Equal(t, `Head of "Growth"`, row[1])
	require.Equal(t, "1200", row[4])
	require.Equal(t, "hot", row[6])
}

func TestBuildEmptyCollection(t *testing.T) {
	out := Build(nil)
	require.Equal(t, "Name,Title,Company,Industry,Employees,Score,Status,LinkedIn URL,Email\n", out)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	contacts := []models.Contact{
		{ID: "c1", Name: "Jane Doe", Status: models.StatusMQL},
	}

	path, err := WriteFile(dir, contacts, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "leads-export-2026-08-28.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, Build(contacts), string(data))
}
