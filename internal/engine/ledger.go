// Package engine holds the application lifecycle and analytics core: the
// audited write path, the change ledger, the merged timeline view, and the
// dashboard statistics. Everything here is written against store.Store so the
// backend stays pluggable.
package engine

import (
	"context"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// Ledger is the append-only audit trail. Records receive their timestamp
// from the store at insertion and are never mutated or removed afterwards,
// even when the application they describe is deleted.
type Ledger struct {
	store store.Store
}

func NewLedger(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Append writes one change record and returns it with id and timestamp set.
func (l *Ledger) Append(ctx context.Context, applicationID int64, kind model.ChangeKind, oldValue, newValue, note *string) (*model.ChangeRecord, error) {
	rec := &model.ChangeRecord{
		ApplicationID: applicationID,
		Kind:          kind,
		OldValue:      oldValue,
		NewValue:      newValue,
		Note:          note,
	}
	if _, err := l.store.AppendChangeRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("append change record: %w", err)
	}
	return rec, nil
}

// ListForApplication returns the application's records in storage order;
// ordering for display is the timeline aggregator's concern.
func (l *Ledger) ListForApplication(ctx context.Context, applicationID int64) ([]model.ChangeRecord, error) {
	return l.store.ListChangeRecords(ctx, applicationID)
}

// appendChange writes a ledger entry inside an open transaction so the
// entity write and its audit entry commit together.
func appendChange(ctx context.Context, q store.Queries, applicationID int64, kind model.ChangeKind, oldValue, newValue, note *string) error {
	rec := &model.ChangeRecord{
		ApplicationID: applicationID,
		Kind:          kind,
		OldValue:      oldValue,
		NewValue:      newValue,
		Note:          note,
	}
	if _, err := q.AppendChangeRecord(ctx, rec); err != nil {
		return fmt.Errorf("append change record: %w", err)
	}
	return nil
}
