package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type LeadStatus string

const (
	StatusHot     LeadStatus = "hot"
	StatusSQL     LeadStatus = "sql"
	StatusMQL     LeadStatus = "mql"
	StatusNurture LeadStatus = "nurture"
)

// LeadStatuses lists every status in display order (hottest first).
var LeadStatuses = []LeadStatus{StatusHot, StatusSQL, StatusMQL, StatusNurture}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusHot, StatusSQL, StatusMQL, StatusNurture:
		return true
	}
	return false
}

func (s LeadStatus) Label() string {
	switch s {
	case StatusHot:
		return "Hot"
	case StatusSQL:
		return "SQL"
	case StatusMQL:
		return "MQL"
	case StatusNurture:
		return "Nurture"
	default:
		return string(s)
	}
}

type OutreachStatus string

const (
	OutreachNotContacted     OutreachStatus = "not_contacted"
	OutreachRequestSent      OutreachStatus = "request_sent"
	OutreachConnected        OutreachStatus = "connected"
	OutreachReplied          OutreachStatus = "replied"
	OutreachMeetingScheduled OutreachStatus = "meeting_scheduled"
)

// OutreachStatuses lists every outreach stage in workflow order.
var OutreachStatuses = []OutreachStatus{
	OutreachNotContacted,
	OutreachRequestSent,
	OutreachConnected,
	OutreachReplied,
	OutreachMeetingScheduled,
}

func (s OutreachStatus) Valid() bool {
	switch s {
	case OutreachNotContacted, OutreachRequestSent, OutreachConnected,
		OutreachReplied, OutreachMeetingScheduled:
		return true
	}
	return false
}

func (s OutreachStatus) Label() string {
	switch s {
	case OutreachNotContacted:
		return "Not Contacted"
	case OutreachRequestSent:
		return "Request Sent"
	case OutreachConnected:
		return "Connected"
	case OutreachReplied:
		return "Replied"
	case OutreachMeetingScheduled:
		return "Meeting Scheduled"
	default:
		return string(s)
	}
}

type SizeBucket string

const (
	SizeSmall      SizeBucket = "small"      // < 500
	SizeMedium     SizeBucket = "medium"     // [500, 5000)
	SizeLarge      SizeBucket = "large"      // [5000, 50000)
	SizeEnterprise SizeBucket = "enterprise" // >= 50000
)

var SizeBuckets = []SizeBucket{SizeSmall, SizeMedium, SizeLarge, SizeEnterprise}

// BucketOf classifies an employee count. A missing count is treated as 0.
func BucketOf(employeeCount int) SizeBucket {
	switch {
	case employeeCount < 500:
		return SizeSmall
	case employeeCount < 5000:
		return SizeMedium
	case employeeCount < 50000:
		return SizeLarge
	default:
		return SizeEnterprise
	}
}

func (b SizeBucket) Label() string {
	switch b {
	case SizeSmall:
		return "Small (<500)"
	case SizeMedium:
		return "Medium (500-5k)"
	case SizeLarge:
		return "Large (5k-50k)"
	case SizeEnterprise:
		return "Enterprise (50k+)"
	default:
		return string(b)
	}
}

// StringList stores a slice of strings as a JSON array column so the same
// model works against both the postgres and sqlite drivers.
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Contact is the denormalized read model served by the
// contact_engagement_summary view: contact identity and scores joined
// with company attributes and engagement aggregates. Identity, scoring,
// classification and company fields are never mutated here; only the
// outreach workflow fields (AssignedTo, OutreachStatus, Notes,
// LastContactDate) are written back, field by field, to the contacts
// table.
type Contact struct {
	ID          string `json:"id" gorm:"primaryKey;column:id"`
	Name        string `json:"name" gorm:"column:name"`
	Title       string `json:"title" gorm:"column:title"`
	LinkedInURL string `json:"linkedin_url" gorm:"column:linkedin_url"`
	Email       string `json:"email" gorm:"column:email"`

	FirmographicScore int `json:"firmographic_score" gorm:"column:firmographic_score"`
	TitleScore        int `json:"title_score" gorm:"column:title_score"`
	EngagementScore   int `json:"engagement_score" gorm:"column:engagement_score"`
	TotalScore        int `json:"total_score" gorm:"column:total_score"`

	Status LeadStatus `json:"status" gorm:"column:status"`

	AssignedTo      *string        `json:"assigned_to" gorm:"column:assigned_to"`
	OutreachStatus  OutreachStatus `json:"outreach_status" gorm:"column:outreach_status"`
	Notes           string         `json:"notes" gorm:"column:notes"`
	LastContactDate *string        `json:"last_contact_date" gorm:"column:last_contact_date"`

	CompanyName   string `json:"company_name" gorm:"column:company_name"`
	EmployeeCount int    `json:"employee_count" gorm:"column:employee_count"`
	Industry      string `json:"industry" gorm:"column:industry"`

	EngagedWith   StringList `json:"engaged_with" gorm:"column:engaged_with;type:text"`
	LastEngagedAt *time.Time `json:"last_engaged_at" gorm:"column:last_engaged_at"`
}

func (Contact) TableName() string {
	return "contact_engagement_summary"
}

// Outreach normalizes a missing outreach status to not_contacted.
func (c *Contact) Outreach() OutreachStatus {
	if c.OutreachStatus == "" {
		return OutreachNotContacted
	}
	return c.OutreachStatus
}

// Assignee returns the assigned user, or empty string when unassigned.
func (c *Contact) Assignee() string {
	if c.AssignedTo == nil {
		return ""
	}
	return *c.AssignedTo
}

func (c *Contact) SizeBucket() SizeBucket {
	return BucketOf(c.EmployeeCount)
}

// MatchesSearch reports whether the query matches the contact's name,
// company or title, case-insensitively. An empty query matches
// everything; missing fields simply never match.
func (c *Contact) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.CompanyName), q) ||
		strings.Contains(strings.ToLower(c.Title), q)
}
