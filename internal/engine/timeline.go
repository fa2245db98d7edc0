package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// Timeline merges ledger entries, interactions, and the application's own
// creation into one date-descending narrative. It is read-only.
type Timeline struct {
	store store.Store
}

func NewTimeline(s store.Store) *Timeline {
	return &Timeline{store: s}
}

const noteTruncateLen = 50

func truncateNote(s string) string {
	r := []rune(s)
	if len(r) > noteTruncateLen {
		return string(r[:noteTruncateLen]) + "..."
	}
	return s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func changeDescription(rec model.ChangeRecord) string {
	if rec.Note != nil && *rec.Note != "" {
		return *rec.Note
	}
	switch rec.Kind {
	case model.ChangeStatus:
		return fmt.Sprintf("Status changed from %s to %s", deref(rec.OldValue), deref(rec.NewValue))
	case model.ChangeApplicationUpdated:
		return "Application details were updated"
	}
	switch {
	case rec.OldValue != nil && rec.NewValue != nil:
		return fmt.Sprintf("Changed from %s to %s", *rec.OldValue, *rec.NewValue)
	case rec.NewValue != nil:
		return fmt.Sprintf("Set to %s", *rec.NewValue)
	default:
		return "Change recorded"
	}
}

// ForApplication builds the merged timeline for one application, most recent
// event first. Events with equal timestamps keep their arrival order: ledger
// entries, then interactions, then the creation event.
func (t *Timeline) ForApplication(ctx context.Context, applicationID int64) ([]model.TimelineEvent, error) {
	app, err := t.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	changes, err := t.store.ListChangeRecords(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list change records: %w", err)
	}
	interactions, err := t.store.ListInteractionsByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	events := make([]model.TimelineEvent, 0, len(changes)+len(interactions)+1)
	for _, rec := range changes {
		events = append(events, model.TimelineEvent{
			Timestamp:   rec.CreatedAt,
			Category:    strings.ReplaceAll(string(rec.Kind), "_", " "),
			Description: changeDescription(rec),
		})
	}
	for _, in := range interactions {
		events = append(events, model.TimelineEvent{
			Timestamp:   in.Date,
			Category:    "INTERACTION",
			Description: fmt.Sprintf("%s: %s", in.Type, truncateNote(deref(in.Notes))),
		})
	}
	events = append(events, model.TimelineEvent{
		Timestamp:   app.CreatedAt,
		Category:    "APPLICATION CREATED",
		Description: fmt.Sprintf("Application created for %s", app.JobTitle),
	})

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, nil
}
