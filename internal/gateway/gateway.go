// Package gateway is the thin data access layer between the dashboard
// and the backing store: reads come from the contact_engagement_summary
// view, writes go to the contacts table, one field at a time, keyed by
// contact id. It never creates or deletes contacts and never retries.
package gateway

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"leadscope/internal/config"
	"leadscope/internal/models"
)

const contactsTable = "contacts"

// FetchError wraps a failed load of the contact collection.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching contact summaries: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError wraps a failed field-level update.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type Gateway struct {
	db *gorm.DB
}

// Open connects to the configured database. The TUI owns the terminal,
// so gorm's logger is silenced; failures surface through slog instead.
func Open(cfg *config.Config) (*Gateway, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		dialector = postgres.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Gateway{db: db}, nil
}

// NewWithDB wraps an existing gorm handle. Used by tests.
func NewWithDB(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// SummaryFilter is an optional coarse pre-filter pushed down to the
// summary view. Correctness never depends on it: the view state
// re-applies every predicate client-side.
type SummaryFilter struct {
	Status   models.LeadStatus // zero value: no status filter
	Assignee *string           // nil: no filter; pointer to "" matches unassigned
}

// FetchSummaries loads the full contact collection from the read view,
// ordered by total score descending (the dashboard's default order).
func (g *Gateway) FetchSummaries(ctx context.Context, filter SummaryFilter) ([]models.Contact, error) {
	q := g.db.WithContext(ctx).Order("total_score DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Assignee != nil {
		if *filter.Assignee == "" {
			q = q.Where("assigned_to IS NULL")
		} else {
			q = q.Where("assigned_to = ?", *filter.Assignee)
		}
	}

	var contacts []models.Contact
	if err := q.Find(&contacts).Error; err != nil {
		return nil, &FetchError{Err: err}
	}
	return contacts, nil
}

// UpdateAssignee sets assigned_to for one contact; nil clears it.
func (g *Gateway) UpdateAssignee(ctx context.Context, id string, assignee *string) error {
	err := g.db.WithContext(ctx).
		Table(contactsTable).
		Where("id = ?", id).
		Update("assigned_to", assignee).Error
	if err != nil {
		return &WriteError{Op: "update assignee", Err: err}
	}
	return nil
}

// BulkUpdateAssignee assigns every given contact in a single statement.
// An empty id list is a no-op.
func (g *Gateway) BulkUpdateAssignee(ctx context.Context, ids []string, assignee string) error {
	if len(ids) == 0 {
		return nil
	}
	err := g.db.WithContext(ctx).
		Table(contactsTable).
		Where("id IN ?", ids).
		Update("assigned_to", assignee).Error
	if err != nil {
		return &WriteError{Op: "bulk update assignee", Err: err}
	}
	return nil
}

// UpdateOutreach sets the outreach status and, when lastContactDate is
// non-nil, the last contact date in the same statement.
func (g *Gateway) UpdateOutreach(ctx context.Context, id string, status models.OutreachStatus, lastContactDate *string) error {
	fields := map[string]interface{}{
		"outreach_status": string(status),
	}
	if lastContactDate != nil {
		fields["last_contact_date"] = *lastContactDate
	}

	err := g.db.WithContext(ctx).
		Table(contactsTable).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return &WriteError{Op: "update outreach status", Err: err}
	}
	return nil
}

// UpdateNotes replaces the free-text notes for one contact.
func (g *Gateway) UpdateNotes(ctx context.Context, id string, notes string) error {
	err := g.db.WithContext(ctx).
		Table(contactsTable).
		Where("id = ?", id).
		Update("notes", notes).Error
	if err != nil {
		return &WriteError{Op: "update notes", Err: err}
	}
	return nil
}
