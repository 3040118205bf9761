// Package viewstate holds the dashboard's filter, sort, pagination and
// selection state and derives the visible slice of the contact
// collection from it. Everything here is pure: the collection is passed
// in, transitions return a new State, and rendering stays elsewhere.
package viewstate

import (
	"sort"
	"strings"

	"leadscope/internal/models"
)

// PageSize is the fixed number of rows per page.
const PageSize = 50

// FilterAll is the neutral value for every filter dimension.
const FilterAll = "all"

// FilterUnassigned selects contacts with no assignee.
const FilterUnassigned = "unassigned"

type SortField string

const (
	SortByName      SortField = "name"
	SortByCompany   SortField = "company_name"
	SortByEmployees SortField = "employee_count"
	SortByScore     SortField = "total_score"
	SortByTitle     SortField = "title"
)

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// State is the full set of user-chosen view parameters. It is treated as
// a value: every transition returns the next State, so the derivation
// pipeline can be exercised in isolation from the UI.
type State struct {
	StatusFilter   string // "all" or a models.LeadStatus
	AssigneeFilter string // "all", an assignee, or "unassigned"
	OutreachFilter string // "all" or a models.OutreachStatus
	SizeFilter     string // "all" or a models.SizeBucket
	IndustryFilter string // "all" or an observed industry
	SearchQuery    string

	SortField     SortField
	SortDirection SortDirection

	Page       int // 1-based
	Selected   map[string]bool
	ExpandedID string
}

// New returns the default state: no filters, total score descending,
// first page, empty selection.
func New() State {
	return State{
		StatusFilter:   FilterAll,
		AssigneeFilter: FilterAll,
		OutreachFilter: FilterAll,
		SizeFilter:     FilterAll,
		IndustryFilter: FilterAll,
		SortField:      SortByScore,
		SortDirection:  SortDescending,
		Page:           1,
		Selected:       map[string]bool{},
	}
}

// reset is applied on every filter, sort or search change: back to the
// first page with an empty selection.
func (s State) reset() State {
	s.Page = 1
	s.Selected = map[string]bool{}
	return s
}

func (s State) WithStatusFilter(v string) State {
	s.StatusFilter = v
	return s.reset()
}

func (s State) WithAssigneeFilter(v string) State {
	s.AssigneeFilter = v
	return s.reset()
}

func (s State) WithOutreachFilter(v string) State {
	s.OutreachFilter = v
	return s.reset()
}

func (s State) WithSizeFilter(v string) State {
	s.SizeFilter = v
	return s.reset()
}

func (s State) WithIndustryFilter(v string) State {
	s.IndustryFilter = v
	return s.reset()
}

func (s State) WithSearch(query string) State {
	s.SearchQuery = query
	return s.reset()
}

// WithSort selects a sort field. Re-selecting the current field flips
// the direction; a new field starts ascending.
func (s State) WithSort(field SortField) State {
	if s.SortField == field {
		if s.SortDirection == SortAscending {
			s.SortDirection = SortDescending
		} else {
			s.SortDirection = SortAscending
		}
	} else {
		s.SortField = field
		s.SortDirection = SortAscending
	}
	return s.reset()
}

func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// ToggleSelect flips membership of a single contact id.
func (s State) ToggleSelect(id string) State {
	next := make(map[string]bool, len(s.Selected)+1)
	for k := range s.Selected {
		next[k] = true
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	s.Selected = next
	return s
}

// ToggleSelectAll selects exactly the given page of ids, unless every
// one of them is already selected, in which case the whole selection is
// cleared.
func (s State) ToggleSelectAll(pageIDs []string) State {
	allSelected := len(pageIDs) > 0
	for _, id := range pageIDs {
		if !s.Selected[id] {
			allSelected = false
			break
		}
	}

	if allSelected {
		s.Selected = map[string]bool{}
		return s
	}

	next := make(map[string]bool, len(pageIDs))
	for _, id := range pageIDs {
		next[id] = true
	}
	s.Selected = next
	return s
}

// ClearSelection drops every selected id.
func (s State) ClearSelection() State {
	s.Selected = map[string]bool{}
	return s
}

// ToggleExpand opens the detail panel for id, or closes it if already open.
func (s State) ToggleExpand(id string) State {
	if s.ExpandedID == id {
		s.ExpandedID = ""
	} else {
		s.ExpandedID = id
	}
	return s
}

// View is the derived, render-ready slice of the collection.
type View struct {
	Filtered   []models.Contact // post-filter, post-sort, pre-pagination
	Page       []models.Contact // current page slice
	PageNumber int              // clamped page actually shown
	TotalPages int
	Total      int // len(Filtered)
}

// PageIDs returns the ids on the current page, in display order.
func (v View) PageIDs() []string {
	ids := make([]string, len(v.Page))
	for i, c := range v.Page {
		ids[i] = c.ID
	}
	return ids
}

// Derive runs the full pipeline: filter, sort, paginate.
func (s State) Derive(contacts []models.Contact) View {
	filtered := s.Sorted(s.Filtered(contacts))

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page := s.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return View{
		Filtered:   filtered,
		Page:       filtered[start:end],
		PageNumber: page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}

// Filtered applies every active filter as a conjunction.
func (s State) Filtered(contacts []models.Contact) []models.Contact {
	out := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if !s.matches(&c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s State) matches(c *models.Contact) bool {
	if s.StatusFilter != FilterAll && !strings.EqualFold(string(c.Status), s.StatusFilter) {
		return false
	}

	switch s.AssigneeFilter {
	case FilterAll:
	case FilterUnassigned:
		if c.Assignee() != "" {
			return false
		}
	default:
		if !strings.EqualFold(c.Assignee(), s.AssigneeFilter) {
			return false
		}
	}

	if s.OutreachFilter != FilterAll && !strings.EqualFold(string(c.Outreach()), s.OutreachFilter) {
		return false
	}

	if s.SizeFilter != FilterAll && string(c.SizeBucket()) != s.SizeFilter {
		return false
	}

	if s.IndustryFilter != FilterAll && !strings.EqualFold(c.Industry, s.IndustryFilter) {
		return false
	}

	return c.MatchesSearch(s.SearchQuery)
}

// Sorted orders contacts by the active sort field. String fields compare
// case-insensitively, numeric fields numerically; the sort is stable so
// ties keep their relative (fetch) order.
func (s State) Sorted(contacts []models.Contact) []models.Contact {
	out := make([]models.Contact, len(contacts))
	copy(out, contacts)

	sort.SliceStable(out, func(i, j int) bool {
		cmp := 0
		switch s.SortField {
		case SortByName:
			cmp = strings.Compare(strings.ToLower(out[i].Name), strings.ToLower(out[j].Name))
		case SortByCompany:
			cmp = strings.Compare(strings.ToLower(out[i].CompanyName), strings.ToLower(out[j].CompanyName))
		case SortByTitle:
			cmp = strings.Compare(strings.ToLower(out[i].Title), strings.ToLower(out[j].Title))
		case SortByEmployees:
			cmp = out[i].EmployeeCount - out[j].EmployeeCount
		default:
			cmp = out[i].TotalScore - out[j].TotalScore
		}
		if s.SortDirection == SortDescending {
			cmp = -cmp
		}
		// Ties report "not less" both ways so the stable sort keeps
		// their fetch order.
		return cmp < 0
	})

	return out
}

// SelectedContacts returns the selected subset of the filtered result in
// display order.
func (s State) SelectedContacts(filtered []models.Contact) []models.Contact {
	if len(s.Selected) == 0 {
		return nil
	}
	out := make([]models.Contact, 0, len(s.Selected))
	for _, c := range filtered {
		if s.Selected[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// StatusCounts tallies the unfiltered collection so the stats tiles
// always show the global distribution, independent of active filters.
func StatusCounts(contacts []models.Contact) map[models.LeadStatus]int {
	counts := make(map[models.LeadStatus]int, len(models.LeadStatuses))
	for _, c := range contacts {
		counts[c.Status]++
	}
	return counts
}

// IndustryOptions lists the industries observed in the collection,
// deduplicated case-insensitively and lexicographically ordered.
func IndustryOptions(contacts []models.Contact) []string {
	seen := make(map[string]string)
	for _, c := range contacts {
		if c.Industry == "" {
			continue
		}
		key := strings.ToLower(c.Industry)
		if _, ok := seen[key]; !ok {
			seen[key] = c.Industry
		}
	}

	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
