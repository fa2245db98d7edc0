package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

func seedCompany(t *testing.T, st *Store, name string) int64 {
	t.Helper()
	id, err := st.CreateCompany(context.Background(), &model.Company{Name: name})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return id
}

func seedApplication(t *testing.T, st *Store, companyID int64, title string, applied time.Time) int64 {
	t.Helper()
	id, err := st.CreateApplication(context.Background(), &model.Application{
		CompanyID:   companyID,
		JobTitle:    title,
		Position:    "Engineer",
		Status:      model.StatusApplied,
		AppliedDate: applied,
	})
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return id
}

func TestCompanyCRUD(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	id := seedCompany(t, st, "Acme Corp")
	company, err := st.GetCompany(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if company.Name != "Acme Corp" || company.CreatedAt.IsZero() {
		t.Fatalf("unexpected company %+v", company)
	}

	website := "https://acme.example"
	company.Website = &website
	if err := st.UpdateCompany(ctx, company); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := st.GetCompany(ctx, id)
	if got.Website == nil || *got.Website != website {
		t.Fatalf("update not persisted: %+v", got)
	}

	if _, err := st.GetCompany(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := st.CreateCompany(ctx, &model.Company{}); !store.IsValidation(err) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}

	deleted, err := st.DeleteCompany(ctx, id)
	if err != nil || !deleted {
		t.Fatalf("delete: %v deleted=%t", err, deleted)
	}
	deleted, _ = st.DeleteCompany(ctx, id)
	if deleted {
		t.Fatalf("second delete should report false")
	}
}

func TestDeleteCompany_ConflictWhileOwningApplications(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	id := seedCompany(t, st, "Acme Corp")
	seedApplication(t, st, id, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if _, err := st.DeleteCompany(ctx, id); !store.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := st.GetCompany(ctx, id); err != nil {
		t.Fatalf("company must survive the failed delete: %v", err)
	}
}

func TestDeleteCompany_DetachesContacts(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	id := seedCompany(t, st, "Acme Corp")
	contactID, err := st.CreateContact(ctx, &model.Contact{Name: "Jordan", CompanyID: &id})
	if err != nil {
		t.Fatalf("seed contact: %v", err)
	}

	if _, err := st.DeleteCompany(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	contact, _ := st.GetContact(ctx, contactID)
	if contact.CompanyID != nil {
		t.Fatalf("contact should be detached, got %+v", contact)
	}
}

func TestListApplications_FilterAndOrder(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	acme := seedCompany(t, st, "Acme Corp")
	beta := seedCompany(t, st, "Beta LLC")

	first := seedApplication(t, st, acme, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	second := seedApplication(t, st, beta, "Platform Engineer", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))
	third := seedApplication(t, st, acme, "Data Engineer", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))

	apps, err := st.ListApplications(ctx, store.ApplicationFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 3 || apps[0].ID != second || apps[1].ID != third || apps[2].ID != first {
		t.Fatalf("not applied-date descending: %+v", apps)
	}

	byCompany, _ := st.ListApplications(ctx, store.ApplicationFilter{CompanyID: &acme})
	if len(byCompany) != 2 {
		t.Fatalf("company filter: %+v", byCompany)
	}

	status := model.StatusApplied
	byStatus, _ := st.ListApplications(ctx, store.ApplicationFilter{Status: &status})
	if len(byStatus) != 3 {
		t.Fatalf("status filter: %+v", byStatus)
	}

	paged, _ := st.ListApplications(ctx, store.ApplicationFilter{Offset: 1, Limit: 1})
	if len(paged) != 1 || paged[0].ID != third {
		t.Fatalf("pagination: %+v", paged)
	}
}

func TestListApplications_Search(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	acme := seedCompany(t, st, "Acme Corp")
	beta := seedCompany(t, st, "Beta LLC")
	seedApplication(t, st, acme, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	seedApplication(t, st, beta, "Designer", time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))

	// matches the job title, case-insensitive
	apps, _ := st.ListApplications(ctx, store.ApplicationFilter{Search: "backend"})
	if len(apps) != 1 || apps[0].JobTitle != "Backend Engineer" {
		t.Fatalf("title search: %+v", apps)
	}
	// matches the company name
	apps, _ = st.ListApplications(ctx, store.ApplicationFilter{Search: "beta"})
	if len(apps) != 1 || apps[0].JobTitle != "Designer" {
		t.Fatalf("company search: %+v", apps)
	}
	apps, _ = st.ListApplications(ctx, store.ApplicationFilter{Search: "nomatch"})
	if len(apps) != 0 {
		t.Fatalf("expected no matches: %+v", apps)
	}
}

func TestDeleteApplication_CascadesButKeepsChangeRecords(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if _, err := st.CreateInteraction(ctx, &model.Interaction{ApplicationID: appID, Type: model.InteractionEmail, Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("seed interaction: %v", err)
	}
	if _, err := st.CreateReminder(ctx, &model.Reminder{ApplicationID: &appID, Title: "Follow up", DueDate: time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("seed reminder: %v", err)
	}
	if _, err := st.AppendChangeRecord(ctx, &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeNoteAdded}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	deleted, err := st.DeleteApplication(ctx, appID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v deleted=%t", err, deleted)
	}

	interactions, _ := st.ListInteractionsByApplication(ctx, appID)
	if len(interactions) != 0 {
		t.Fatalf("interactions not cascaded: %+v", interactions)
	}
	reminders, _ := st.ListReminders(ctx, store.ReminderFilter{ApplicationID: &appID})
	if len(reminders) != 0 {
		t.Fatalf("reminders not cascaded: %+v", reminders)
	}
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 1 {
		t.Fatalf("change records must be retained: %+v", records)
	}
}

func TestAppendChangeRecord_StampsTimestamp(t *testing.T) {
	st := NewStore()
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	st.SetClock(func() time.Time { return now })
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	rec := &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeNoteAdded}
	if _, err := st.AppendChangeRecord(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !rec.CreatedAt.Equal(now) {
		t.Fatalf("timestamp not stamped by the store: %v", rec.CreatedAt)
	}
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	boom := errors.New("boom")
	err := st.RunInTransaction(ctx, func(q store.Queries) error {
		if _, err := q.AppendChangeRecord(ctx, &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeNoteAdded}); err != nil {
			return err
		}
		app, err := q.GetApplication(ctx, appID)
		if err != nil {
			return err
		}
		app.Status = model.StatusOffer
		if err := q.UpdateApplication(ctx, app); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	// neither write may be visible
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 0 {
		t.Fatalf("rolled-back record is visible: %+v", records)
	}
	app, _ := st.GetApplication(ctx, appID)
	if app.Status != model.StatusApplied {
		t.Fatalf("rolled-back update is visible: %+v", app)
	}
}

func TestRunInTransaction_CommitsOnSuccess(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	err := st.RunInTransaction(ctx, func(q store.Queries) error {
		_, err := q.AppendChangeRecord(ctx, &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeNoteAdded})
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 1 {
		t.Fatalf("committed record missing: %+v", records)
	}
}

func TestLinkContact_Validation(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	contactID, err := st.CreateContact(ctx, &model.Contact{Name: "Jordan"})
	if err != nil {
		t.Fatalf("seed contact: %v", err)
	}

	created, err := st.LinkContact(ctx, appID, contactID)
	if err != nil || !created {
		t.Fatalf("link: %v created=%t", err, created)
	}
	created, err = st.LinkContact(ctx, appID, contactID)
	if err != nil || created {
		t.Fatalf("relink must report false, got %v created=%t", err, created)
	}

	if _, err := st.LinkContact(ctx, 999, contactID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for missing application, got %v", err)
	}
	if _, err := st.LinkContact(ctx, appID, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for missing contact, got %v", err)
	}

	removed, err := st.UnlinkContact(ctx, appID, contactID)
	if err != nil || !removed {
		t.Fatalf("unlink: %v removed=%t", err, removed)
	}
	removed, _ = st.UnlinkContact(ctx, appID, contactID)
	if removed {
		t.Fatalf("second unlink must report false")
	}
}
