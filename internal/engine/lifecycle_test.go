package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/internal/store/memory"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

func TestCreateApplication_WritesNoLedgerEntry(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")

	app, err := lc.CreateApplication(ctx, model.CreateApplicationReq{
		CompanyID:   companyID,
		JobTitle:    "Backend Engineer",
		Position:    "Senior",
		Status:      model.StatusSaved,
		AppliedDate: "2026-08-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if app.ID == 0 || app.Status != model.StatusSaved {
		t.Fatalf("unexpected application %+v", app)
	}

	records, err := st.ListChangeRecords(ctx, app.ID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("creation must not be audited, got %d records", len(records))
	}
}

func TestCreateApplication_Validation(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")

	cases := []struct {
		name string
		req  model.CreateApplicationReq
	}{
		{"missing job title", model.CreateApplicationReq{CompanyID: companyID, Position: "Senior", Status: model.StatusSaved, AppliedDate: "2026-08-01"}},
		{"missing position", model.CreateApplicationReq{CompanyID: companyID, JobTitle: "Backend", Status: model.StatusSaved, AppliedDate: "2026-08-01"}},
		{"bad status", model.CreateApplicationReq{CompanyID: companyID, JobTitle: "Backend", Position: "Senior", Status: "GHOSTED", AppliedDate: "2026-08-01"}},
		{"bad date", model.CreateApplicationReq{CompanyID: companyID, JobTitle: "Backend", Position: "Senior", Status: model.StatusSaved, AppliedDate: "soon"}},
		{"dangling company", model.CreateApplicationReq{CompanyID: 999, JobTitle: "Backend", Position: "Senior", Status: model.StatusSaved, AppliedDate: "2026-08-01"}},
	}
	for _, tc := range cases {
		if _, err := lc.CreateApplication(ctx, tc.req); !store.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestUpdateStatus_AuditsChange(t *testing.T) {
	st := memory.NewStore()
	st.SetClock(testClock(time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)))
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusSaved, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	app, err := lc.UpdateStatus(ctx, appID, model.StatusApplied, strp("sent via referral"))
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if app.Status != model.StatusApplied {
		t.Fatalf("status not applied: %s", app.Status)
	}

	records, err := st.ListChangeRecords(ctx, appID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Kind != model.ChangeStatus {
		t.Fatalf("wrong kind %s", rec.Kind)
	}
	if rec.OldValue == nil || *rec.OldValue != "SAVED" || rec.NewValue == nil || *rec.NewValue != "APPLIED" {
		t.Fatalf("wrong transition %+v", rec)
	}
	if rec.Note == nil || *rec.Note != "sent via referral" {
		t.Fatalf("note not recorded: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("record has no timestamp")
	}
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusApplied, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	before, err := st.GetApplication(ctx, appID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := lc.UpdateStatus(ctx, appID, model.StatusApplied, nil); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 0 {
		t.Fatalf("no-op must not be audited, got %d records", len(records))
	}
	after, _ := st.GetApplication(ctx, appID)
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("no-op must not touch updated_at")
	}
}

func TestUpdateStatus_Invalid(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusSaved, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if _, err := lc.UpdateStatus(context.Background(), appID, "GHOSTED", nil); !store.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := lc.UpdateStatus(context.Background(), 999, model.StatusApplied, nil); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateApplication_BulkEdit(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusSaved, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	// field edit without status change: one application-updated record
	app, err := lc.UpdateApplication(ctx, appID, model.ApplicationUpdate{
		Location:  strp("Remote"),
		SalaryMin: intp(90000),
	})
	if err != nil {
		t.Fatalf("bulk edit: %v", err)
	}
	if app.Location == nil || *app.Location != "Remote" {
		t.Fatalf("location not applied: %+v", app)
	}
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 1 || records[0].Kind != model.ChangeApplicationUpdated {
		t.Fatalf("expected one application-updated record, got %+v", records)
	}

	// status change inside a bulk edit is audited as a status change
	status := model.StatusApplied
	if _, err := lc.UpdateApplication(ctx, appID, model.ApplicationUpdate{Status: &status}); err != nil {
		t.Fatalf("status edit: %v", err)
	}
	records, _ = st.ListChangeRecords(ctx, appID)
	if len(records) != 2 || records[1].Kind != model.ChangeStatus {
		t.Fatalf("expected status-change record, got %+v", records)
	}

	// an edit that changes nothing writes nothing
	if _, err := lc.UpdateApplication(ctx, appID, model.ApplicationUpdate{Location: strp("Remote")}); err != nil {
		t.Fatalf("no-op edit: %v", err)
	}
	records, _ = st.ListChangeRecords(ctx, appID)
	if len(records) != 2 {
		t.Fatalf("no-op edit must not be audited, got %d records", len(records))
	}
}

func TestAddInteraction_Audited(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusApplied, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	interaction, err := lc.AddInteraction(ctx, appID, model.CreateInteractionReq{
		Type:    model.InteractionEmail,
		Date:    "2026-08-05",
		Subject: strp("follow up"),
	})
	if err != nil {
		t.Fatalf("add interaction: %v", err)
	}
	if interaction.ID == 0 || interaction.ApplicationID != appID {
		t.Fatalf("unexpected interaction %+v", interaction)
	}

	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 1 || records[0].Kind != model.ChangeInteractionAdded {
		t.Fatalf("expected interaction-added record, got %+v", records)
	}
	if records[0].NewValue == nil || *records[0].NewValue != "EMAIL" {
		t.Fatalf("record missing interaction type: %+v", records[0])
	}

	if _, err := lc.AddInteraction(ctx, 999, model.CreateInteractionReq{Type: model.InteractionEmail, Date: "2026-08-05"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	// a failed add must not leave an orphan ledger entry behind
	records, _ = st.ListChangeRecords(ctx, 999)
	if len(records) != 0 {
		t.Fatalf("failed add leaked %d records", len(records))
	}
}

func TestAddInteraction_InvalidType(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusApplied, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if _, err := lc.AddInteraction(ctx, appID, model.CreateInteractionReq{
		Type: "CARRIER_PIGEON",
		Date: "2026-08-05",
	}); !store.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	interactions, _ := st.ListInteractionsByApplication(ctx, appID)
	if len(interactions) != 0 {
		t.Fatalf("rejected add persisted %d interactions", len(interactions))
	}
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 0 {
		t.Fatalf("rejected add leaked %d records", len(records))
	}
}

func TestContactLinks_Idempotent(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusApplied, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	contactID := seedContact(t, st, "Jordan Reyes")

	if err := lc.AddContact(ctx, appID, contactID); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := lc.AddContact(ctx, appID, contactID); err != nil {
		t.Fatalf("relink: %v", err)
	}

	contacts, _ := st.ListApplicationContacts(ctx, appID)
	if len(contacts) != 1 {
		t.Fatalf("expected one linked contact, got %d", len(contacts))
	}
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 1 || records[0].Kind != model.ChangeContactAdded {
		t.Fatalf("relink must not duplicate the ledger entry, got %+v", records)
	}

	if err := lc.RemoveContact(ctx, appID, contactID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if err := lc.RemoveContact(ctx, appID, contactID); err != nil {
		t.Fatalf("re-unlink: %v", err)
	}
	records, _ = st.ListChangeRecords(ctx, appID)
	if len(records) != 2 || records[1].Kind != model.ChangeContactRemoved {
		t.Fatalf("expected one contact-removed record, got %+v", records)
	}

	if err := lc.AddContact(ctx, appID, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for missing contact, got %v", err)
	}
}

func TestAttachDocument_Audited(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusApplied, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	docID := seedDocument(t, st, "resume-v3.pdf")

	if err := lc.AttachDocument(ctx, appID, docID); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := lc.AttachDocument(ctx, appID, docID); err != nil {
		t.Fatalf("re-attach: %v", err)
	}

	docs, _ := st.ListApplicationDocuments(ctx, appID)
	if len(docs) != 1 {
		t.Fatalf("expected one attached document, got %d", len(docs))
	}
	records, _ := st.ListChangeRecords(ctx, appID)
	if len(records) != 1 || records[0].Kind != model.ChangeDocumentAdded {
		t.Fatalf("expected one document-added record, got %+v", records)
	}
	if records[0].NewValue == nil || *records[0].NewValue != "resume-v3.pdf" {
		t.Fatalf("record missing document name: %+v", records[0])
	}
}

func TestAddNote(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusApplied, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	rec, err := lc.AddNote(ctx, appID, "recruiter said two week turnaround")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if rec.Kind != model.ChangeNoteAdded || rec.Note == nil || *rec.Note != "recruiter said two week turnaround" {
		t.Fatalf("unexpected record %+v", rec)
	}

	if _, err := lc.AddNote(ctx, appID, ""); !store.IsValidation(err) {
		t.Fatalf("expected validation error for empty note, got %v", err)
	}
}

func TestDeleteApplication_RetainsLedger(t *testing.T) {
	st := memory.NewStore()
	lc := NewLifecycle(st, nil)
	ctx := context.Background()
	companyID := seedCompany(t, st, "Acme Corp")
	appID := seedApplication(t, st, companyID, "Backend Engineer", model.StatusSaved, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	if _, err := lc.UpdateStatus(ctx, appID, model.StatusApplied, nil); err != nil {
		t.Fatalf("update status: %v", err)
	}

	deleted, err := lc.DeleteApplication(ctx, appID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v deleted=%t", err, deleted)
	}
	if _, err := st.GetApplication(ctx, appID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("application should be gone, got %v", err)
	}

	records, err := st.ListChangeRecords(ctx, appID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ledger must survive deletion, got %d records", len(records))
	}

	deleted, err = lc.DeleteApplication(ctx, appID)
	if err != nil || deleted {
		t.Fatalf("second delete should report false, got %v deleted=%t", err, deleted)
	}
}
