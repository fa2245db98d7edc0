package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/database"
	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st := New(db, DialectSQLite)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

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

func TestApplicationRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")

	location := "Remote"
	salaryMin := 90000
	applied := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	app := &model.Application{
		CompanyID:   companyID,
		JobTitle:    "Backend Engineer",
		Position:    "Senior",
		Location:    &location,
		SalaryMin:   &salaryMin,
		Status:      model.StatusSaved,
		AppliedDate: applied,
		Tags:        []string{"go", "remote"},
	}
	id, err := st.CreateApplication(ctx, app)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.GetApplication(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.JobTitle != "Backend Engineer" || got.Status != model.StatusSaved {
		t.Fatalf("core fields lost: %+v", got)
	}
	if got.Location == nil || *got.Location != "Remote" || got.SalaryMin == nil || *got.SalaryMin != 90000 {
		t.Fatalf("optional fields lost: %+v", got)
	}
	if !got.AppliedDate.Equal(applied) {
		t.Fatalf("applied date drifted: %v != %v", got.AppliedDate, applied)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "remote" {
		t.Fatalf("tags lost: %+v", got.Tags)
	}

	if _, err := st.GetApplication(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateApplication_DanglingCompany(t *testing.T) {
	st := newTestStore(t)
	_, err := st.CreateApplication(context.Background(), &model.Application{
		CompanyID:   999,
		JobTitle:    "Backend Engineer",
		Position:    "Senior",
		Status:      model.StatusSaved,
		AppliedDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if !store.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListApplications_SearchAndFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	acme := seedCompany(t, st, "Acme Corp")
	beta := seedCompany(t, st, "Beta LLC")
	seedApplication(t, st, acme, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	seedApplication(t, st, beta, "Designer", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))

	apps, err := st.ListApplications(ctx, store.ApplicationFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 || apps[0].JobTitle != "Designer" {
		t.Fatalf("not applied-date descending: %+v", apps)
	}

	apps, _ = st.ListApplications(ctx, store.ApplicationFilter{Search: "backend"})
	if len(apps) != 1 || apps[0].JobTitle != "Backend Engineer" {
		t.Fatalf("title search: %+v", apps)
	}
	apps, _ = st.ListApplications(ctx, store.ApplicationFilter{Search: "beta"})
	if len(apps) != 1 || apps[0].JobTitle != "Designer" {
		t.Fatalf("company name search: %+v", apps)
	}
	apps, _ = st.ListApplications(ctx, store.ApplicationFilter{CompanyID: &acme})
	if len(apps) != 1 {
		t.Fatalf("company filter: %+v", apps)
	}
}

func TestListApplications_OffsetWithoutLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	acme := seedCompany(t, st, "Acme Corp")
	seedApplication(t, st, acme, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	seedApplication(t, st, acme, "Platform Engineer", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))
	seedApplication(t, st, acme, "Staff Engineer", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))

	apps, err := st.ListApplications(ctx, store.ApplicationFilter{Offset: 1})
	if err != nil {
		t.Fatalf("offset-only list: %v", err)
	}
	if len(apps) != 2 || apps[0].JobTitle != "Platform Engineer" || apps[1].JobTitle != "Backend Engineer" {
		t.Fatalf("expected the two older applications: %+v", apps)
	}
}

func TestChangeRecords_AppendOnlyAndStamped(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	step := 0
	orig := timeNow
	timeNow = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	t.Cleanup(func() { timeNow = orig })

	old, new1 := "SAVED", "APPLIED"
	if _, err := st.AppendChangeRecord(ctx, &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeStatus, OldValue: &old, NewValue: &new1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := st.AppendChangeRecord(ctx, &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeApplicationUpdated}); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := st.ListChangeRecords(ctx, appID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %+v", records)
	}
	if records[0].Kind != model.ChangeStatus || records[0].OldValue == nil || *records[0].OldValue != "SAVED" {
		t.Fatalf("first record %+v", records[0])
	}
	if !records[1].CreatedAt.After(records[0].CreatedAt) {
		t.Fatalf("timestamps not monotonic: %v %v", records[0].CreatedAt, records[1].CreatedAt)
	}
}

func TestRunInTransaction_RollsBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	boom := errors.New("boom")
	err := st.RunInTransaction(ctx, func(q store.Queries) error {
		if _, err := q.AppendChangeRecord(ctx, &model.ChangeRecord{ApplicationID: appID, Kind: model.ChangeNoteAdded}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 0 {
		t.Fatalf("rolled-back record is visible: %+v", records)
	}
}

func TestDeleteApplication_CascadesButKeepsChangeRecords(t *testing.T) {
	st := newTestStore(t)
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

func TestDeleteCompany_Conflict(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	seedApplication(t, st, companyID, "Backend Engineer", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if _, err := st.DeleteCompany(ctx, companyID); !store.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := st.GetCompany(ctx, companyID); err != nil {
		t.Fatalf("company must survive the failed delete: %v", err)
	}
}

func TestContactLinks_Idempotent(t *testing.T) {
	st := newTestStore(t)
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
	contacts, err := st.ListApplicationContacts(ctx, appID)
	if err != nil || len(contacts) != 1 {
		t.Fatalf("linked contacts: %v %+v", err, contacts)
	}

	removed, err := st.UnlinkContact(ctx, appID, contactID)
	if err != nil || !removed {
		t.Fatalf("unlink: %v removed=%t", err, removed)
	}
}

func TestReminders_FilterAndOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, r := range []model.Reminder{
		{Title: "Later", DueDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		{Title: "Sooner", DueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Done", DueDate: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), Completed: true},
	} {
		rem := r
		if _, err := st.CreateReminder(ctx, &rem); err != nil {
			t.Fatalf("seed reminder: %v", err)
		}
	}

	all, err := st.ListReminders(ctx, store.ReminderFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Title != "Sooner" {
		t.Fatalf("not due-date ascending: %+v", all)
	}

	incomplete := false
	open, _ := st.ListReminders(ctx, store.ReminderFilter{Completed: &incomplete})
	if len(open) != 2 {
		t.Fatalf("completed filter: %+v", open)
	}
}
