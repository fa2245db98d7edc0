package engine

import (
	"context"
	"testing"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store/memory"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// testClock returns a deterministic clock that advances one second per call.
func testClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func strp(s string) *string { return &s }

func intp(i int) *int { return &i }

func seedCompany(t *testing.T, st *memory.Store, name string) int64 {
	t.Helper()
	id, err := st.CreateCompany(context.Background(), &model.Company{Name: name})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return id
}

func seedApplication(t *testing.T, st *memory.Store, companyID int64, title string, status model.Status, applied time.Time) int64 {
	t.Helper()
	id, err := st.CreateApplication(context.Background(), &model.Application{
		CompanyID:   companyID,
		JobTitle:    title,
		Position:    "Engineer",
		Status:      status,
		AppliedDate: applied,
	})
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return id
}

func seedContact(t *testing.T, st *memory.Store, name string) int64 {
	t.Helper()
	id, err := st.CreateContact(context.Background(), &model.Contact{Name: name})
	if err != nil {
		t.Fatalf("seed contact: %v", err)
	}
	return id
}

func seedDocument(t *testing.T, st *memory.Store, name string) int64 {
	t.Helper()
	id, err := st.CreateDocument(context.Background(), &model.Document{Name: name, Type: model.DocumentResume})
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return id
}
