package utils

import (
	"strings"
	"testing"

	"leadscope/internal/models"
)

func TestBuildNoteContext(t *testing.T) {
	c := &models.Contact{
		Name:          "Jane Doe",
		Title:         "VP Engineering",
		CompanyName:   "Acme Corp",
		Industry:      "Software",
		EmployeeCount: 1200,
		EngagedWith:   models.StringList{"amira", "josh"},
		Notes:         "met at KubeCon",
	}

	got := BuildNoteContext(c)
	want := strings.Join([]string{
		"Name: Jane Doe",
		"Title: VP Engineering",
		"Company: Acme Corp",
		"Industry: Software",
		"Employees: 1200",
		"Engaged with: amira, josh",
		"Notes: met at KubeCon",
	}, "\n")

	if got != want {
		t.Errorf("context mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildNoteContextSkipsEmptySections(t *testing.T) {
	c := &models.Contact{
		Name:        "Jane Doe",
		Title:       "CTO",
		CompanyName: "Bolt",
		Industry:    "Logistics",
	}

	got := BuildNoteContext(c)
	if strings.Contains(got, "Engaged with") {
		t.Error("expected no engagement line for empty EngagedWith")
	}
	if strings.Contains(got, "Notes") {
		t.Error("expected no notes line for empty notes")
	}
	if !strings.HasSuffix(got, "Employees: 0") {
		t.Errorf("expected summary to end with the employee count, got:\n%s", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := Truncate("a very long contact name", 10); got != "a very ..." {
		t.Errorf("expected truncation with ellipsis, got %q", got)
	}
	if len(Truncate("abcdef", 3)) != 3 {
		t.Error("tiny widths should hard-cut")
	}
}

func TestFormatEmployeeCount(t *testing.T) {
	cases := map[int]string{
		0:     "-",
		42:    "42",
		999:   "999",
		1200:  "1.2k",
		60000: "60.0k",
	}
	for count, want := range cases {
		if got := FormatEmployeeCount(count); got != want {
			t.Errorf("FormatEmployeeCount(%d) = %q, want %q", count, got, want)
		}
	}
}
