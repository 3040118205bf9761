package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"leadscope/internal/config"
	"leadscope/internal/gateway"
	"leadscope/internal/models"
)

func newTestModel(t *testing.T, contacts []models.Contact) *LeadsModel {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(`CREATE TABLE contacts (
		id TEXT PRIMARY KEY,
		assigned_to TEXT,
		outreach_status TEXT,
		notes TEXT,
		last_contact_date TEXT
	)`).Error; err != nil {
		t.Fatalf("failed to create contacts table: %v", err)
	}
	for _, c := range contacts {
		if err := db.Exec(`INSERT INTO contacts (id, notes) VALUES (?, '')`, c.ID).Error; err != nil {
			t.Fatalf("failed to seed contact: %v", err)
		}
	}

	cfg := &config.Config{
		DBDriver:  "sqlite",
		DBDSN:     ":memory:",
		Assignee:  "Pete",
		ExportDir: t.TempDir(),
	}

	m := NewLeadsModel(gateway.NewWithDB(db), cfg)
	m.Update(ContactsLoadedMsg{Contacts: contacts})
	return m
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func testContacts() []models.Contact {
	return []models.Contact{
		{ID: "c1", Name: "Alice", CompanyName: "Acme", Status: models.StatusHot, TotalScore: 90},
		{ID: "c2", Name: "Bob", CompanyName: "Bolt", Status: models.StatusMQL, TotalScore: 50},
	}
}

func TestUnassignAlreadyUnassignedIsNoop(t *testing.T) {
	m := newTestModel(t, testContacts())

	if cmd := m.unassign("c1"); cmd != nil {
		t.Error("unassigning an unassigned contact should be a no-op")
	}
}

func TestAssignThenUnassign(t *testing.T) {
	m := newTestModel(t, testContacts())

	msg := runCmd(t, m.assign("c1", "Pete"))
	if wr, ok := msg.(WriteResultMsg); !ok || wr.Err != nil {
		t.Fatalf("assign write failed: %v", msg)
	}
	if m.findContact("c1").Assignee() != "Pete" {
		t.Error("expected optimistic assignee update")
	}

	msg = runCmd(t, m.unassign("c1"))
	if wr, ok := msg.(WriteResultMsg); !ok || wr.Err != nil {
		t.Fatalf("unassign write failed: %v", msg)
	}
	if m.findContact("c1").AssignedTo != nil {
		t.Error("expected optimistic unassign")
	}
}

func TestRequestSentStampsLastContactDate(t *testing.T) {
	m := newTestModel(t, testContacts())

	runCmd(t, m.setOutreachStatus("c1", models.OutreachRequestSent))

	c := m.findContact("c1")
	if c.OutreachStatus != models.OutreachRequestSent {
		t.Fatalf("expected request_sent, got %s", c.OutreachStatus)
	}
	if c.LastContactDate == nil {
		t.Fatal("expected last contact date stamped")
	}
	today := time.Now().Format("2006-01-02")
	if *c.LastContactDate != today {
		t.Errorf("expected %s, got %s", today, *c.LastContactDate)
	}

	// Re-applying the same status still refreshes the date.
	c.LastContactDate = nil
	runCmd(t, m.setOutreachStatus("c1", models.OutreachRequestSent))
	if c.LastContactDate == nil {
		t.Error("expected the date stamped again on a same-value transition")
	}
}

func TestNonRequestSentLeavesDateAlone(t *testing.T) {
	m := newTestModel(t, testContacts())

	runCmd(t, m.setOutreachStatus("c1", models.OutreachConnected))
	if m.findContact("c1").LastContactDate != nil {
		t.Error("connected should not stamp a contact date")
	}
}

func TestBulkAssignRequiresSelection(t *testing.T) {
	m := newTestModel(t, testContacts())

	if cmd := m.bulkAssign(); cmd != nil {
		t.Error("bulk assign with empty selection should be a no-op")
	}

	m.state = m.state.ToggleSelect("c1").ToggleSelect("c2")
	m.rederive()

	msg := runCmd(t, m.bulkAssign())
	done, ok := msg.(BulkAssignDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("bulk assign failed: %v", msg)
	}
	if done.Count != 2 {
		t.Errorf("expected 2 assigned, got %d", done.Count)
	}
	if m.findContact("c1").Assignee() != "Pete" || m.findContact("c2").Assignee() != "Pete" {
		t.Error("expected optimistic bulk assignment")
	}

	// Selection clears only once the write is confirmed.
	m.Update(done)
	if len(m.state.Selected) != 0 {
		t.Error("expected selection cleared after successful bulk assign")
	}
}

func TestExportFallsBackToFilteredResult(t *testing.T) {
	m := newTestModel(t, testContacts())

	msg := runCmd(t, m.exportCSV())
	done, ok := msg.(ExportDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("export failed: %v", msg)
	}
	if done.Count != 2 {
		t.Errorf("expected full filtered export of 2, got %d", done.Count)
	}

	m.state = m.state.ToggleSelect("c2")
	m.rederive()
	msg = runCmd(t, m.exportCSV())
	done = msg.(ExportDoneMsg)
	if done.Count != 1 {
		t.Errorf("expected selected-only export of 1, got %d", done.Count)
	}
}

func TestNotesWriteOnlyWhenChanged(t *testing.T) {
	m := newTestModel(t, testContacts())

	m.state = m.state.ToggleExpand("c1")
	m.rederive()
	m.editingNotes = true
	m.notesBaseline = ""
	m.notesInput.SetValue("")

	_, cmd := m.updateNotesEditing(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("unchanged notes should not trigger a write")
	}

	m.editingNotes = true
	m.notesInput.SetValue("intro call booked")
	_, cmd = m.updateNotesEditing(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("changed notes should trigger a write")
	}
	if wr, ok := cmd().(WriteResultMsg); !ok || wr.Err != nil {
		t.Fatalf("notes write failed")
	}
	if m.findContact("c1").Notes != "intro call booked" {
		t.Error("expected optimistic notes update")
	}
}
