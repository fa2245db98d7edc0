package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// Lifecycle is the single write path for application state that must be
// auditable. Every status, interaction, and contact-association mutation is
// paired with exactly one ledger entry inside one store transaction.
type Lifecycle struct {
	store  store.Store
	logger *zap.Logger
}

func NewLifecycle(s store.Store, logger *zap.Logger) *Lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lifecycle{store: s, logger: logger}
}

func parseDate(value, field string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &store.ValidationError{Field: field, Reason: "is not a valid date"}
}

// CreateApplication validates and persists a new application. Creation is
// not a change, so no ledger entry is written.
func (l *Lifecycle) CreateApplication(ctx context.Context, req model.CreateApplicationReq) (*model.Application, error) {
	if req.JobTitle == "" {
		return nil, &store.ValidationError{Field: "job_title", Reason: "is required"}
	}
	if req.Position == "" {
		return nil, &store.ValidationError{Field: "position", Reason: "is required"}
	}
	if !req.Status.Valid() {
		return nil, &store.ValidationError{Field: "status", Reason: "is not a valid status"}
	}
	appliedDate, err := parseDate(req.AppliedDate, "applied_date")
	if err != nil {
		return nil, err
	}
	if _, err := l.store.GetCompany(ctx, req.CompanyID); err != nil {
		return nil, &store.ValidationError{Field: "company_id", Reason: "references a nonexistent company"}
	}

	app := &model.Application{
		CompanyID:   req.CompanyID,
		JobTitle:    req.JobTitle,
		Position:    req.Position,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Status:      req.Status,
		AppliedDate: appliedDate,
		Link:        req.Link,
		Description: req.Description,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}
	if _, err := l.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	l.logger.Sugar().Infow("application created", "application_id", app.ID, "job_title", app.JobTitle)
	return app, nil
}

// UpdateStatus moves an application to a new status and audits the change.
// Setting the current status again is a documented no-op: nothing is written
// and updated_at stays untouched.
func (l *Lifecycle) UpdateStatus(ctx context.Context, applicationID int64, newStatus model.Status, note *string) (*model.Application, error) {
	if !newStatus.Valid() {
		return nil, &store.ValidationError{Field: "status", Reason: "is not a valid status"}
	}
	var app *model.Application
	err := l.store.RunInTransaction(ctx, func(q store.Queries) error {
		var err error
		app, err = q.GetApplication(ctx, applicationID)
		if err != nil {
			return err
		}
		if app.Status == newStatus {
			return nil
		}
		oldStatus := string(app.Status)
		newValue := string(newStatus)
		if err := appendChange(ctx, q, applicationID, model.ChangeStatus, &oldStatus, &newValue, note); err != nil {
			return err
		}
		app.Status = newStatus
		app.UpdatedAt = time.Now().UTC()
		return q.UpdateApplication(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateApplication applies a bulk field edit. A status change inside the
// edit is audited as a status change; any other effective edit produces one
// application-updated record. An edit that changes nothing writes nothing.
func (l *Lifecycle) UpdateApplication(ctx context.Context, applicationID int64, upd model.ApplicationUpdate) (*model.Application, error) {
	var app *model.Application
	err := l.store.RunInTransaction(ctx, func(q store.Queries) error {
		var err error
		app, err = q.GetApplication(ctx, applicationID)
		if err != nil {
			return err
		}
		before := *app
		statusChanged, err := applyUpdate(app, upd)
		if err != nil {
			return err
		}
		changed := applicationChanged(&before, app)
		if !changed {
			return nil
		}
		if statusChanged {
			oldStatus := string(before.Status)
			newStatus := string(app.Status)
			if err := appendChange(ctx, q, applicationID, model.ChangeStatus, &oldStatus, &newStatus, nil); err != nil {
				return err
			}
		} else {
			if err := appendChange(ctx, q, applicationID, model.ChangeApplicationUpdated, nil, nil, nil); err != nil {
				return err
			}
		}
		app.UpdatedAt = time.Now().UTC()
		return q.UpdateApplication(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func applyUpdate(app *model.Application, upd model.ApplicationUpdate) (statusChanged bool, err error) {
	if upd.JobTitle != nil {
		app.JobTitle = *upd.JobTitle
	}
	if upd.Position != nil {
		app.Position = *upd.Position
	}
	if upd.Location != nil {
		app.Location = upd.Location
	}
	if upd.SalaryMin != nil {
		app.SalaryMin = upd.SalaryMin
	}
	if upd.SalaryMax != nil {
		app.SalaryMax = upd.SalaryMax
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return false, &store.ValidationError{Field: "status", Reason: "is not a valid status"}
		}
		statusChanged = app.Status != *upd.Status
		app.Status = *upd.Status
	}
	if upd.AppliedDate != nil {
		t, err := parseDate(*upd.AppliedDate, "applied_date")
		if err != nil {
			return false, err
		}
		app.AppliedDate = t
	}
	if upd.Link != nil {
		app.Link = upd.Link
	}
	if upd.Description != nil {
		app.Description = upd.Description
	}
	if upd.Notes != nil {
		app.Notes = upd.Notes
	}
	if upd.Tags != nil {
		app.Tags = *upd.Tags
	}
	return statusChanged, nil
}

func applicationChanged(a, b *model.Application) bool {
	if a.JobTitle != b.JobTitle || a.Position != b.Position || a.Status != b.Status ||
		!a.AppliedDate.Equal(b.AppliedDate) || a.CompanyID != b.CompanyID {
		return true
	}
	if !strPtrEqual(a.Location, b.Location) || !strPtrEqual(a.Link, b.Link) ||
		!strPtrEqual(a.Description, b.Description) || !strPtrEqual(a.Notes, b.Notes) {
		return true
	}
	if !intPtrEqual(a.SalaryMin, b.SalaryMin) || !intPtrEqual(a.SalaryMax, b.SalaryMax) {
		return true
	}
	if len(a.Tags) != len(b.Tags) {
		return true
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return true
		}
	}
	return false
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AddInteraction records a new interaction under the application together
// with its interaction-added ledger entry.
func (l *Lifecycle) AddInteraction(ctx context.Context, applicationID int64, req model.CreateInteractionReq) (*model.Interaction, error) {
	if !req.Type.Valid() {
		return nil, &store.ValidationError{Field: "type", Reason: "is not a valid interaction type"}
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	interaction := &model.Interaction{
		ApplicationID: applicationID,
		ContactID:     req.ContactID,
		Type:          req.Type,
		Date:          date,
		Subject:       req.Subject,
		Notes:         req.Notes,
	}
	err = l.store.RunInTransaction(ctx, func(q store.Queries) error {
		if _, err := q.GetApplication(ctx, applicationID); err != nil {
			return err
		}
		newValue := string(req.Type)
		if err := appendChange(ctx, q, applicationID, model.ChangeInteractionAdded, nil, &newValue, req.Subject); err != nil {
			return err
		}
		_, err := q.CreateInteraction(ctx, interaction)
		return err
	})
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

// AddContact links a contact to an application. Linking an already-linked
// pair succeeds without duplicating the edge or the ledger entry.
func (l *Lifecycle) AddContact(ctx context.Context, applicationID, contactID int64) error {
	return l.store.RunInTransaction(ctx, func(q store.Queries) error {
		contact, err := q.GetContact(ctx, contactID)
		if err != nil {
			return err
		}
		created, err := q.LinkContact(ctx, applicationID, contactID)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		return appendChange(ctx, q, applicationID, model.ChangeContactAdded, nil, &contact.Name, nil)
	})
}

// RemoveContact unlinks a contact. Removing an unlinked pair is a no-op and
// writes nothing.
func (l *Lifecycle) RemoveContact(ctx context.Context, applicationID, contactID int64) error {
	return l.store.RunInTransaction(ctx, func(q store.Queries) error {
		contact, err := q.GetContact(ctx, contactID)
		if err != nil {
			return err
		}
		removed, err := q.UnlinkContact(ctx, applicationID, contactID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return appendChange(ctx, q, applicationID, model.ChangeContactRemoved, &contact.Name, nil, nil)
	})
}

// AttachDocument links a document to an application and audits it. Like
// contact links, re-attaching is a no-op.
func (l *Lifecycle) AttachDocument(ctx context.Context, applicationID, documentID int64) error {
	return l.store.RunInTransaction(ctx, func(q store.Queries) error {
		doc, err := q.GetDocument(ctx, documentID)
		if err != nil {
			return err
		}
		created, err := q.LinkDocument(ctx, applicationID, documentID)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		return appendChange(ctx, q, applicationID, model.ChangeDocumentAdded, nil, &doc.Name, nil)
	})
}

// AddNote records a free-form note against the application's history.
func (l *Lifecycle) AddNote(ctx context.Context, applicationID int64, note string) (*model.ChangeRecord, error) {
	if note == "" {
		return nil, &store.ValidationError{Field: "note", Reason: "is required"}
	}
	rec := &model.ChangeRecord{
		ApplicationID: applicationID,
		Kind:          model.ChangeNoteAdded,
		Note:          &note,
	}
	err := l.store.RunInTransaction(ctx, func(q store.Queries) error {
		if _, err := q.GetApplication(ctx, applicationID); err != nil {
			return err
		}
		_, err := q.AppendChangeRecord(ctx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteApplication removes the application with its interactions and
// reminders. Ledger entries are retained. Deleting a missing id reports
// false rather than an error.
func (l *Lifecycle) DeleteApplication(ctx context.Context, applicationID int64) (bool, error) {
	deleted, err := l.store.DeleteApplication(ctx, applicationID)
	if err != nil {
		return false, fmt.Errorf("delete application: %w", err)
	}
	if deleted {
		l.logger.Sugar().Infow("application deleted", "application_id", applicationID)
	}
	return deleted, nil
}
