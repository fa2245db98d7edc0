// Package store defines the record store contract the engine is written
// against. Concrete adapters live in the subpackages: memory for tests and
// single-session development, sqlstore for sqlite and postgres.
package store

import (
	"context"

	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// ApplicationFilter narrows ListApplications. Zero values mean "no filter".
type ApplicationFilter struct {
	Status    *model.Status
	CompanyID *int64
	Search    string
	Offset    int
	Limit     int
}

// ReminderFilter narrows ListReminders.
type ReminderFilter struct {
	ApplicationID *int64
	Completed     *bool
}

// Queries is the full set of record operations. The engine receives a Queries
// either directly (reads) or scoped inside RunInTransaction (paired writes).
type Queries interface {
	// Companies.
	CreateCompany(ctx context.Context, c *model.Company) (int64, error)
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
	UpdateCompany(ctx context.Context, c *model.Company) error
	// DeleteCompany returns a ConflictError while the company still owns
	// applications.
	DeleteCompany(ctx context.Context, id int64) (bool, error)

	// Contacts.
	CreateContact(ctx context.Context, c *model.Contact) (int64, error)
	GetContact(ctx context.Context, id int64) (*model.Contact, error)
	ListContacts(ctx context.Context, companyID *int64) ([]model.Contact, error)
	UpdateContact(ctx context.Context, c *model.Contact) error
	DeleteContact(ctx context.Context, id int64) (bool, error)

	// Applications.
	CreateApplication(ctx context.Context, a *model.Application) (int64, error)
	GetApplication(ctx context.Context, id int64) (*model.Application, error)
	ListApplications(ctx context.Context, f ApplicationFilter) ([]model.Application, error)
	UpdateApplication(ctx context.Context, a *model.Application) error
	// DeleteApplication cascades the application's interactions and
	// reminders. Change records are retained.
	DeleteApplication(ctx context.Context, id int64) (bool, error)

	// Documents.
	CreateDocument(ctx context.Context, d *model.Document) (int64, error)
	GetDocument(ctx context.Context, id int64) (*model.Document, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)
	UpdateDocument(ctx context.Context, d *model.Document) error
	DeleteDocument(ctx context.Context, id int64) (bool, error)

	// Interactions.
	CreateInteraction(ctx context.Context, i *model.Interaction) (int64, error)
	ListInteractionsByApplication(ctx context.Context, applicationID int64) ([]model.Interaction, error)
	ListRecentInteractions(ctx context.Context, limit int) ([]model.Interaction, error)
	DeleteInteraction(ctx context.Context, id int64) (bool, error)

	// Reminders.
	CreateReminder(ctx context.Context, r *model.Reminder) (int64, error)
	GetReminder(ctx context.Context, id int64) (*model.Reminder, error)
	ListReminders(ctx context.Context, f ReminderFilter) ([]model.Reminder, error)
	UpdateReminder(ctx context.Context, r *model.Reminder) error
	DeleteReminder(ctx context.Context, id int64) (bool, error)

	// Change records. AppendChangeRecord stamps CreatedAt at insertion;
	// records are append-only. ListChangeRecords returns storage order,
	// ordering is the caller's concern.
	AppendChangeRecord(ctx context.Context, r *model.ChangeRecord) (int64, error)
	ListChangeRecords(ctx context.Context, applicationID int64) ([]model.ChangeRecord, error)

	// Relationship edges. Link operations are idempotent and report whether
	// the edge actually changed.
	LinkContact(ctx context.Context, applicationID, contactID int64) (bool, error)
	UnlinkContact(ctx context.Context, applicationID, contactID int64) (bool, error)
	ListApplicationContacts(ctx context.Context, applicationID int64) ([]model.Contact, error)
	LinkDocument(ctx context.Context, applicationID, documentID int64) (bool, error)
	ListApplicationDocuments(ctx context.Context, applicationID int64) ([]model.Document, error)
}

// Store is a Queries plus transactional execution. Within one
// RunInTransaction call either every write commits or none do.
type Store interface {
	Queries
	RunInTransaction(ctx context.Context, fn func(q Queries) error) error
	Close() error
}
