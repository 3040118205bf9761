package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"leadscope/internal/config"
	"leadscope/internal/export"
	"leadscope/internal/gateway"
	"leadscope/internal/models"
	"leadscope/internal/utils"
	"leadscope/internal/viewstate"
)

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackInfo    FeedbackType = "info"
)

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

// Messages
type ContactsLoadedMsg struct {
	Contacts []models.Contact
}

type LoadFailedMsg struct {
	Err error
}

type WriteResultMsg struct {
	Op  string
	Err error
}

type BulkAssignDoneMsg struct {
	Count int
	Err   error
}

type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

type ContextCopiedMsg struct {
	Err error
}

type FeedbackTimeoutMsg struct{}

// LeadsModel is the dashboard: the full contact collection, the view
// state that derives the visible page from it, and the handful of
// outreach-workflow mutations that write back through the gateway.
// Writes are optimistic: local state changes first, a failed remote
// write is logged and flagged but never rolled back.
type LeadsModel struct {
	gw  *gateway.Gateway
	cfg *config.Config

	contacts   []models.Contact
	state      viewstate.State
	view       viewstate.View
	counts     map[models.LeadStatus]int
	industries []string

	cursor int // row index within the current page

	searchInput textinput.Model
	searching   bool

	notesInput    textarea.Model
	editingNotes  bool
	notesBaseline string

	loading  bool
	loadErr  error
	feedback *FeedbackMessage

	width  int
	height int
}

func NewLeadsModel(gw *gateway.Gateway, cfg *config.Config) *LeadsModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search name, company, title..."
	searchInput.CharLimit = 60
	searchInput.Prompt = "/ "

	notesInput := textarea.New()
	notesInput.Placeholder = "Notes..."
	notesInput.SetHeight(3)
	notesInput.CharLimit = 2000

	m := &LeadsModel{
		gw:          gw,
		cfg:         cfg,
		state:       viewstate.New(),
		counts:      map[models.LeadStatus]int{},
		searchInput: searchInput,
		notesInput:  notesInput,
		loading:     true,
	}
	m.rederive()
	return m
}

func (m *LeadsModel) Init() tea.Cmd {
	return m.loadContacts()
}

func (m *LeadsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ContactsLoadedMsg:
		m.contacts = msg.Contacts
		m.loading = false
		m.loadErr = nil
		m.counts = viewstate.StatusCounts(m.contacts)
		m.industries = viewstate.IndustryOptions(m.contacts)
		m.rederive()
		return m, nil

	case LoadFailedMsg:
		// No automatic retry: the dashboard stays empty until the user
		// refreshes.
		m.loading = false
		m.loadErr = msg.Err
		m.contacts = nil
		m.counts = map[models.LeadStatus]int{}
		m.industries = nil
		m.rederive()
		slog.Error("contact fetch failed", "error", msg.Err)
		return m, m.showFeedback(FeedbackError, "Failed to load contacts", 5*time.Second)

	case WriteResultMsg:
		if msg.Err != nil {
			// Optimistic local state is deliberately left in place; it
			// diverges from the store until the next refresh.
			slog.Error("remote write failed", "op", msg.Op, "error", msg.Err)
			return m, m.showFeedback(FeedbackError, fmt.Sprintf("Save failed (%s)", msg.Op), 3*time.Second)
		}
		return m, nil

	case BulkAssignDoneMsg:
		if msg.Err != nil {
			slog.Error("bulk assign failed", "error", msg.Err)
			return m, m.showFeedback(FeedbackError, "Bulk assign failed", 3*time.Second)
		}
		m.state = m.state.ClearSelection()
		m.rederive()
		return m, m.showFeedback(FeedbackSuccess, fmt.Sprintf("Assigned %d contacts to %s", msg.Count, m.cfg.Assignee), 3*time.Second)

	case ExportDoneMsg:
		if msg.Err != nil {
			slog.Error("csv export failed", "error", msg.Err)
			return m, m.showFeedback(FeedbackError, "Export failed", 3*time.Second)
		}
		return m, m.showFeedback(FeedbackSuccess, fmt.Sprintf("Exported %d contacts to %s", msg.Count, msg.Path), 3*time.Second)

	case ContextCopiedMsg:
		if msg.Err != nil {
			slog.Error("clipboard copy failed", "error", msg.Err)
			return m, m.showFeedback(FeedbackError, "Copy failed", 3*time.Second)
		}
		return m, m.showFeedback(FeedbackSuccess, "Context copied to clipboard!", 2*time.Second)

	case FeedbackTimeoutMsg:
		if m.feedback != nil && time.Since(m.feedback.ShowTime) >= m.feedback.Duration {
			m.feedback = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.editingNotes {
			return m.updateNotesEditing(msg)
		}
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *LeadsModel) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		if m.state.SearchQuery != "" {
			m.searchInput.SetValue("")
			m.state = m.state.WithSearch("")
			m.rederive()
		}
		return m, nil

	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if query := m.searchInput.Value(); query != m.state.SearchQuery {
		m.state = m.state.WithSearch(query)
		m.rederive()
	}
	return m, cmd
}

func (m *LeadsModel) updateNotesEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		// Blur commits: write only when the text actually changed.
		m.editingNotes = false
		m.notesInput.Blur()

		text := m.notesInput.Value()
		if text == m.notesBaseline {
			return m, nil
		}
		id := m.state.ExpandedID
		if c := m.findContact(id); c != nil {
			c.Notes = text
			m.rederive()
		}
		return m, m.writeNotes(id, text)
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

func (m *LeadsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Page)-1 {
			m.cursor++
		}

	case "pgup", "left", "h":
		if m.view.PageNumber > 1 {
			m.state = m.state.WithPage(m.view.PageNumber - 1)
			m.cursor = 0
			m.rederive()
		}

	case "pgdn", "right", "l":
		if m.view.PageNumber < m.view.TotalPages {
			m.state = m.state.WithPage(m.view.PageNumber + 1)
			m.cursor = 0
			m.rederive()
		}

	case "/":
		m.searching = true
		return m, m.searchInput.Focus()

	case "r":
		m.loading = true
		return m, m.loadContacts()

	case "f":
		m.state = m.state.WithStatusFilter(cycleStatus(m.state.StatusFilter))
		m.rederive()

	case "o":
		m.state = m.state.WithOutreachFilter(cycleOutreach(m.state.OutreachFilter))
		m.rederive()

	case "u":
		m.state = m.state.WithAssigneeFilter(m.cycleAssignee(m.state.AssigneeFilter))
		m.rederive()

	case "z":
		m.state = m.state.WithSizeFilter(cycleSize(m.state.SizeFilter))
		m.rederive()

	case "i":
		m.state = m.state.WithIndustryFilter(cycleIndustry(m.state.IndustryFilter, m.industries))
		m.rederive()

	case "tab":
		m.state = m.state.WithSort(nextSortField(m.state.SortField))
		m.rederive()

	case "shift+tab":
		m.state = m.state.WithSort(m.state.SortField)
		m.rederive()

	case " ", "x":
		if c := m.cursorContact(); c != nil {
			m.state = m.state.ToggleSelect(c.ID)
		}

	case "a":
		m.state = m.state.ToggleSelectAll(m.view.PageIDs())

	case "A":
		return m, m.bulkAssign()

	case "m":
		if c := m.cursorContact(); c != nil {
			return m, m.assign(c.ID, m.cfg.Assignee)
		}

	case "M":
		if c := m.cursorContact(); c != nil {
			return m, m.unassign(c.ID)
		}

	case "1", "2", "3", "4", "5":
		if c := m.cursorContact(); c != nil {
			idx := int(msg.String()[0] - '1')
			return m, m.setOutreachStatus(c.ID, models.OutreachStatuses[idx])
		}

	case "enter":
		if c := m.cursorContact(); c != nil {
			m.state = m.state.ToggleExpand(c.ID)
		}

	case "n":
		if c := m.expandedContact(); c != nil {
			m.editingNotes = true
			m.notesBaseline = c.Notes
			m.notesInput.SetValue(c.Notes)
			return m, m.notesInput.Focus()
		}

	case "c":
		if c := m.cursorContact(); c != nil {
			return m, m.copyNoteContext(c)
		}

	case "E":
		return m, m.exportCSV()
	}

	return m, nil
}

// rederive recomputes the visible slice after any state or collection
// change, and keeps the cursor on the page.
func (m *LeadsModel) rederive() {
	m.view = m.state.Derive(m.contacts)
	if m.cursor >= len(m.view.Page) {
		m.cursor = len(m.view.Page) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *LeadsModel) cursorContact() *models.Contact {
	if m.cursor < 0 || m.cursor >= len(m.view.Page) {
		return nil
	}
	return &m.view.Page[m.cursor]
}

func (m *LeadsModel) expandedContact() *models.Contact {
	if m.state.ExpandedID == "" {
		return nil
	}
	return m.findContact(m.state.ExpandedID)
}

func (m *LeadsModel) findContact(id string) *models.Contact {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			return &m.contacts[i]
		}
	}
	return nil
}

// Commands

func (m *LeadsModel) loadContacts() tea.Cmd {
	return func() tea.Msg {
		contacts, err := m.gw.FetchSummaries(context.Background(), gateway.SummaryFilter{})
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return ContactsLoadedMsg{Contacts: contacts}
	}
}

func (m *LeadsModel) assign(id, assignee string) tea.Cmd {
	if c := m.findContact(id); c != nil {
		a := assignee
		c.AssignedTo = &a
		m.rederive()
	}
	return func() tea.Msg {
		a := assignee
		return WriteResultMsg{Op: "assign", Err: m.gw.UpdateAssignee(context.Background(), id, &a)}
	}
}

func (m *LeadsModel) unassign(id string) tea.Cmd {
	c := m.findContact(id)
	if c != nil && c.AssignedTo == nil {
		// Already unassigned: nothing to write.
		return nil
	}
	if c != nil {
		c.AssignedTo = nil
		m.rederive()
	}
	return func() tea.Msg {
		return WriteResultMsg{Op: "unassign", Err: m.gw.UpdateAssignee(context.Background(), id, nil)}
	}
}

func (m *LeadsModel) bulkAssign() tea.Cmd {
	selected := m.state.SelectedContacts(m.view.Filtered)
	if len(selected) == 0 {
		return nil
	}

	ids := make([]string, len(selected))
	for i, c := range selected {
		ids[i] = c.ID
	}

	assignee := m.cfg.Assignee
	for _, id := range ids {
		if c := m.findContact(id); c != nil {
			a := assignee
			c.AssignedTo = &a
		}
	}
	m.rederive()

	return func() tea.Msg {
		err := m.gw.BulkUpdateAssignee(context.Background(), ids, assignee)
		return BulkAssignDoneMsg{Count: len(ids), Err: err}
	}
}

func (m *LeadsModel) setOutreachStatus(id string, status models.OutreachStatus) tea.Cmd {
	var lastContact *string
	if status == models.OutreachRequestSent {
		// Always stamped on request_sent, even when the status value is
		// unchanged.
		today := time.Now().Format("2006-01-02")
		lastContact = &today
	}

	if c := m.findContact(id); c != nil {
		c.OutreachStatus = status
		if lastContact != nil {
			c.LastContactDate = lastContact
		}
		m.rederive()
	}

	return func() tea.Msg {
		return WriteResultMsg{Op: "outreach", Err: m.gw.UpdateOutreach(context.Background(), id, status, lastContact)}
	}
}

func (m *LeadsModel) writeNotes(id, text string) tea.Cmd {
	return func() tea.Msg {
		return WriteResultMsg{Op: "notes", Err: m.gw.UpdateNotes(context.Background(), id, text)}
	}
}

func (m *LeadsModel) exportCSV() tea.Cmd {
	// Selected contacts when any, otherwise the whole filtered result
	// (pre-pagination).
	contacts := m.state.SelectedContacts(m.view.Filtered)
	if len(contacts) == 0 {
		contacts = m.view.Filtered
	}
	dir := m.cfg.ExportDir

	return func() tea.Msg {
		path, err := export.WriteFile(dir, contacts, time.Now())
		return ExportDoneMsg{Path: path, Count: len(contacts), Err: err}
	}
}

func (m *LeadsModel) copyNoteContext(c *models.Contact) tea.Cmd {
	text := utils.BuildNoteContext(c)
	return func() tea.Msg {
		return ContextCopiedMsg{Err: utils.CopyToClipboard(text)}
	}
}

func (m *LeadsModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) tea.Cmd {
	m.feedback = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return FeedbackTimeoutMsg{}
	})
}

// Filter cycling helpers

func cycleStatus(current string) string {
	options := []string{viewstate.FilterAll}
	for _, s := range models.LeadStatuses {
		options = append(options, string(s))
	}
	return cycleOption(options, current)
}

func cycleOutreach(current string) string {
	options := []string{viewstate.FilterAll}
	for _, s := range models.OutreachStatuses {
		options = append(options, string(s))
	}
	return cycleOption(options, current)
}

func (m *LeadsModel) cycleAssignee(current string) string {
	return cycleOption([]string{viewstate.FilterAll, m.cfg.Assignee, viewstate.FilterUnassigned}, current)
}

func cycleSize(current string) string {
	options := []string{viewstate.FilterAll}
	for _, b := range models.SizeBuckets {
		options = append(options, string(b))
	}
	return cycleOption(options, current)
}

func cycleIndustry(current string, industries []string) string {
	options := append([]string{viewstate.FilterAll}, industries...)
	return cycleOption(options, current)
}

func cycleOption(options []string, current string) string {
	for i, opt := range options {
		if strings.EqualFold(opt, current) {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func nextSortField(current viewstate.SortField) viewstate.SortField {
	switch current {
	case viewstate.SortByScore:
		return viewstate.SortByName
	case viewstate.SortByName:
		return viewstate.SortByCompany
	case viewstate.SortByCompany:
		return viewstate.SortByEmployees
	case viewstate.SortByEmployees:
		return viewstate.SortByTitle
	default:
		return viewstate.SortByScore
	}
}

// Rendering

func (m *LeadsModel) View() string {
	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")
	content.WriteString(m.renderStatusTiles())
	content.WriteString("\n")
	content.WriteString(m.renderFilterBar())
	content.WriteString("\n")

	switch {
	case m.loading:
		loadingStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Yellow)).
			Padding(2, 0)
		content.WriteString(loadingStyle.Render("Loading contacts..."))
	case m.loadErr != nil:
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Padding(2, 0)
		content.WriteString(errStyle.Render("Could not load contacts. Press r to retry."))
	case len(m.view.Page) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay1)).
			Padding(2, 0)
		content.WriteString(emptyStyle.Render("No contacts match the current filters."))
	default:
		content.WriteString(m.renderTable())
	}

	if c := m.expandedContact(); c != nil {
		content.WriteString("\n")
		content.WriteString(m.renderDetail(c))
	}

	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	if m.feedback != nil {
		content.WriteString("\n")
		content.WriteString(m.renderFeedback())
	}

	return content.String()
}

func (m *LeadsModel) renderHeader() string {
	title := "LeadScope"
	if len(m.contacts) > 0 {
		title += fmt.Sprintf(" — %d leads", len(m.contacts))
	}

	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(m.width).
		Render(title)
}

func (m *LeadsModel) renderStatusTiles() string {
	tiles := make([]string, 0, len(models.LeadStatuses))
	for _, status := range models.LeadStatuses {
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(statusColour(status))).
			Padding(0, 2)
		tiles = append(tiles, style.Render(fmt.Sprintf("%s %d", status.Label(), m.counts[status])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m *LeadsModel) renderFilterBar() string {
	parts := []string{}

	addFilter := func(label, value string) {
		if value != viewstate.FilterAll {
			parts = append(parts, fmt.Sprintf("%s:%s", label, value))
		}
	}
	addFilter("status", m.state.StatusFilter)
	addFilter("assigned", m.state.AssigneeFilter)
	addFilter("outreach", m.state.OutreachFilter)
	addFilter("size", m.state.SizeFilter)
	addFilter("industry", m.state.IndustryFilter)

	filterInfo := "filters: none"
	if len(parts) > 0 {
		filterInfo = "filters: " + strings.Join(parts, " ")
	}

	dir := "▲"
	if m.state.SortDirection == viewstate.SortDescending {
		dir = "▼"
	}
	sortInfo := fmt.Sprintf("sort: %s %s", m.state.SortField, dir)

	search := m.searchInput.View()
	if !m.searching && m.state.SearchQuery == "" {
		search = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay1)).
			Render("/ to search")
	}

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		search,
		infoStyle.Render(sortInfo),
		infoStyle.Render(filterInfo),
	)
}

func (m *LeadsModel) renderTable() string {
	rows := make([]string, 0, len(m.view.Page)+1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Subtext1))
	rows = append(rows, headerStyle.Render(fmt.Sprintf(
		"   %-22s %-22s %-20s %6s %5s %-8s %-17s %-10s",
		"Name", "Title", "Company", "Emp", "Score", "Status", "Outreach", "Assigned")))

	for i, c := range m.view.Page {
		rows = append(rows, m.renderRow(&c, i == m.cursor))
	}

	return strings.Join(rows, "\n")
}

func (m *LeadsModel) renderRow(c *models.Contact, isCursor bool) string {
	marker := " "
	if m.state.Selected[c.ID] {
		marker = "✓"
	}

	assigned := c.Assignee()
	if assigned == "" {
		assigned = "-"
	}

	line := fmt.Sprintf(" %s %-22s %-22s %-20s %6s %5d %-8s %-17s %-10s",
		marker,
		utils.Truncate(c.Name, 22),
		utils.Truncate(c.Title, 22),
		utils.Truncate(c.CompanyName, 20),
		utils.FormatEmployeeCount(c.EmployeeCount),
		c.TotalScore,
		c.Status,
		c.Outreach().Label(),
		utils.Truncate(assigned, 10),
	)

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	if isCursor {
		style = style.
			Background(lipgloss.Color(utils.Colours.Surface1)).
			Bold(true)
	}
	return style.Render(line)
}

func (m *LeadsModel) renderFooter() string {
	controls := "[↑↓]Move [←→]Page [Enter]Detail [Space]Select [A]ssign Selected [m/M]Assign/Unassign [1-5]Outreach [c]opy Context [E]xport [r]efresh [q]uit"
	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)

	stats := fmt.Sprintf("Page %d of %d | %d matching", m.view.PageNumber, m.view.TotalPages, m.view.Total)
	if n := len(m.state.Selected); n > 0 {
		stats += fmt.Sprintf(" | %d selected", n)
	}
	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		controlsStyle.Render(controls),
		statsStyle.Render(stats),
	)
}

func (m *LeadsModel) renderFeedback() string {
	colour := utils.Colours.Blue
	prefix := "ℹ"
	switch m.feedback.Type {
	case FeedbackSuccess:
		colour = utils.Colours.Green
		prefix = "✓"
	case FeedbackError:
		colour = utils.Colours.Red
		prefix = "✗"
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colour)).
		Padding(0, 1).
		Render(prefix + " " + m.feedback.Message)
}

func statusColour(status models.LeadStatus) string {
	switch status {
	case models.StatusHot:
		return utils.Colours.Red
	case models.StatusSQL:
		return utils.Colours.Peach
	case models.StatusMQL:
		return utils.Colours.Yellow
	default:
		return utils.Colours.Overlay1
	}
}
