package models

import "testing"

func TestBucketOf(t *testing.T) {
	cases := []struct {
		count int
		want  SizeBucket
	}{
		{0, SizeSmall},
		{499, SizeSmall},
		{500, SizeMedium},
		{4999, SizeMedium},
		{5000, SizeLarge},
		{49999, SizeLarge},
		{50000, SizeEnterprise},
		{250000, SizeEnterprise},
	}

	for _, c := range cases {
		if got := BucketOf(c.count); got != c.want {
			t.Errorf("BucketOf(%d) = %s, want %s", c.count, got, c.want)
		}
	}
}

func TestOutreachDefaultsToNotContacted(t *testing.T) {
	c := &Contact{ID: "x"}
	if c.Outreach() != OutreachNotContacted {
		t.Errorf("expected not_contacted for missing outreach status, got %s", c.Outreach())
	}

	c.OutreachStatus = OutreachReplied
	if c.Outreach() != OutreachReplied {
		t.Errorf("expected replied, got %s", c.Outreach())
	}
}

func TestAssignee(t *testing.T) {
	c := &Contact{ID: "x"}
	if c.Assignee() != "" {
		t.Error("expected empty assignee for nil AssignedTo")
	}

	name := "Pete"
	c.AssignedTo = &name
	if c.Assignee() != "Pete" {
		t.Errorf("expected Pete, got %q", c.Assignee())
	}
}

func TestMatchesSearch(t *testing.T) {
	c := &Contact{
		Name:        "Jane Doe",
		CompanyName: "Acme Corp",
		Title:       "VP Engineering",
	}

	for _, q := range []string{"", "jane", "ACME", "engineer", "e d"} {
		if !c.MatchesSearch(q) {
			t.Errorf("expected %q to match", q)
		}
	}

	if c.MatchesSearch("zebra") {
		t.Error("expected no match for zebra")
	}

	// Contacts with missing fields should not match, and never panic.
	empty := &Contact{}
	if empty.MatchesSearch("jane") {
		t.Error("empty contact should not match")
	}
	if !empty.MatchesSearch("") {
		t.Error("empty query should match everything")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range LeadStatuses {
		if !s.Valid() {
			t.Errorf("expected %s valid", s)
		}
	}
	if LeadStatus("warm").Valid() {
		t.Error("warm is not a valid status")
	}

	for _, s := range OutreachStatuses {
		if !s.Valid() {
			t.Errorf("expected %s valid", s)
		}
	}
	if OutreachStatus("ghosted").Valid() {
		t.Error("ghosted is not a valid outreach status")
	}
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"amira", "josh"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded StringList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(decoded) != 2 || decoded[0] != "amira" || decoded[1] != "josh" {
		t.Errorf("round trip mismatch: %v", decoded)
	}

	var fromNil StringList
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if fromNil != nil {
		t.Errorf("expected nil list from nil column, got %v", fromNil)
	}
}
