// Package memory implements the record store on plain maps. It backs the
// engine tests and the "memory" backend; each Store is fully isolated, so a
// test gets its own world by constructing one.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// Store keeps all records in memory. Writes outside RunInTransaction apply
// immediately; inside it they run on a copy that swaps in only on success.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{st: newState(), now: func() time.Time { return time.Now().UTC() }}
}

// SetClock overrides the timestamp source. Tests use it to append change
// records at controlled times.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Close() error { return nil }

// RunInTransaction executes fn against a deep copy of the state and swaps the
// copy in only when fn succeeds, so a failed transaction leaves no trace.
func (s *Store) RunInTransaction(ctx context.Context, fn func(q store.Queries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := s.st.clone()
	if err := fn(&session{st: clone, now: s.now}); err != nil {
		return err
	}
	s.st = clone
	return nil
}

func (s *Store) read() *session {
	return &session{st: s.st, now: s.now}
}

func (s *Store) CreateCompany(ctx context.Context, c *model.Company) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateCompany(ctx, c)
}

func (s *Store) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetCompany(ctx, id)
}

func (s *Store) ListCompanies(ctx context.Context) ([]model.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListCompanies(ctx)
}

func (s *Store) UpdateCompany(ctx context.Context, c *model.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateCompany(ctx, c)
}

func (s *Store) DeleteCompany(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteCompany(ctx, id)
}

func (s *Store) CreateContact(ctx context.Context, c *model.Contact) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateContact(ctx, c)
}

func (s *Store) GetContact(ctx context.Context, id int64) (*model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetContact(ctx, id)
}

func (s *Store) ListContacts(ctx context.Context, companyID *int64) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListContacts(ctx, companyID)
}

func (s *Store) UpdateContact(ctx context.Context, c *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateContact(ctx, c)
}

func (s *Store) DeleteContact(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteContact(ctx, id)
}

func (s *Store) CreateApplication(ctx context.Context, a *model.Application) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateApplication(ctx, a)
}

func (s *Store) GetApplication(ctx context.Context, id int64) (*model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetApplication(ctx, id)
}

func (s *Store) ListApplications(ctx context.Context, f store.ApplicationFilter) ([]model.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListApplications(ctx, f)
}

func (s *Store) UpdateApplication(ctx context.Context, a *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateApplication(ctx, a)
}

func (s *Store) DeleteApplication(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteApplication(ctx, id)
}

func (s *Store) CreateDocument(ctx context.Context, d *model.Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateDocument(ctx, d)
}

func (s *Store) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetDocument(ctx, id)
}

func (s *Store) ListDocuments(ctx context.Context) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListDocuments(ctx)
}

func (s *Store) UpdateDocument(ctx context.Context, d *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateDocument(ctx, d)
}

func (s *Store) DeleteDocument(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteDocument(ctx, id)
}

func (s *Store) CreateInteraction(ctx context.Context, i *model.Interaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateInteraction(ctx, i)
}

func (s *Store) ListInteractionsByApplication(ctx context.Context, applicationID int64) ([]model.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListInteractionsByApplication(ctx, applicationID)
}

func (s *Store) ListRecentInteractions(ctx context.Context, limit int) ([]model.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListRecentInteractions(ctx, limit)
}

func (s *Store) DeleteInteraction(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteInteraction(ctx, id)
}

func (s *Store) CreateReminder(ctx context.Context, r *model.Reminder) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CreateReminder(ctx, r)
}

func (s *Store) GetReminder(ctx context.Context, id int64) (*model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().GetReminder(ctx, id)
}

func (s *Store) ListReminders(ctx context.Context, f store.ReminderFilter) ([]model.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListReminders(ctx, f)
}

func (s *Store) UpdateReminder(ctx context.Context, r *model.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UpdateReminder(ctx, r)
}

func (s *Store) DeleteReminder(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().DeleteReminder(ctx, id)
}

func (s *Store) AppendChangeRecord(ctx context.Context, r *model.ChangeRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().AppendChangeRecord(ctx, r)
}

func (s *Store) ListChangeRecords(ctx context.Context, applicationID int64) ([]model.ChangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListChangeRecords(ctx, applicationID)
}

func (s *Store) LinkContact(ctx context.Context, applicationID, contactID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().LinkContact(ctx, applicationID, contactID)
}

func (s *Store) UnlinkContact(ctx context.Context, applicationID, contactID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UnlinkContact(ctx, applicationID, contactID)
}

func (s *Store) ListApplicationContacts(ctx context.Context, applicationID int64) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListApplicationContacts(ctx, applicationID)
}

func (s *Store) LinkDocument(ctx context.Context, applicationID, documentID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().LinkDocument(ctx, applicationID, documentID)
}

func (s *Store) ListApplicationDocuments(ctx context.Context, applicationID int64) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListApplicationDocuments(ctx, applicationID)
}
