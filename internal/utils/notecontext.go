package utils

import (
	"fmt"
	"strings"

	"leadscope/internal/models"
)

// BuildNoteContext renders a plain-text summary of a contact for
// pasting into an outreach message draft. Fields appear in a fixed
// order; engagement and notes lines are skipped when empty.
func BuildNoteContext(c *models.Contact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Company: %s\n", c.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", c.Industry)
	fmt.Fprintf(&b, "Employees: %d\n", c.EmployeeCount)

	if len(c.EngagedWith) > 0 {
		fmt.Fprintf(&b, "Engaged with: %s\n", strings.Join(c.EngagedWith, ", "))
	}
	if c.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
	}

	return strings.TrimSuffix(b.String(), "\n")
}
