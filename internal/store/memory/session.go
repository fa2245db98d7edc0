package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// session implements store.Queries directly against a state. Inside a
// transaction the state is a clone; locking is the owning Store's concern.
type session struct {
	st  *state
	now func() time.Time
}

var _ store.Queries = (*session)(nil)

func (s *session) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

// Companies

func (s *session) CreateCompany(ctx context.Context, c *model.Company) (int64, error) {
	if c.Name == "" {
		return 0, &store.ValidationError{Field: "name", Reason: "is required"}
	}
	c.ID = s.st.nextID("company")
	c.CreatedAt = s.stamp(c.CreatedAt)
	c.UpdatedAt = s.stamp(c.UpdatedAt)
	s.st.companies[c.ID] = *c
	return c.ID, nil
}

func (s *session) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	c, ok := s.st.companies[id]
	if !ok {
		return nil, store.NotFound("company", id)
	}
	return &c, nil
}

func (s *session) ListCompanies(ctx context.Context) ([]model.Company, error) {
	out := make([]model.Company, 0, len(s.st.companies))
	for _, c := range s.st.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *session) UpdateCompany(ctx context.Context, c *model.Company) error {
	if _, ok := s.st.companies[c.ID]; !ok {
		return store.NotFound("company", c.ID)
	}
	c.UpdatedAt = s.now()
	s.st.companies[c.ID] = *c
	return nil
}

func (s *session) DeleteCompany(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.st.companies[id]; !ok {
		return false, nil
	}
	for _, a := range s.st.applications {
		if a.CompanyID == id {
			return false, &store.ConflictError{Reason: "company still owns applications"}
		}
	}
	for cid, c := range s.st.contacts {
		if c.CompanyID != nil && *c.CompanyID == id {
			c.CompanyID = nil
			s.st.contacts[cid] = c
		}
	}
	delete(s.st.companies, id)
	return true, nil
}

// Contacts

func (s *session) CreateContact(ctx context.Context, c *model.Contact) (int64, error) {
	if c.Name == "" {
		return 0, &store.ValidationError{Field: "name", Reason: "is required"}
	}
	if c.CompanyID != nil {
		if _, ok := s.st.companies[*c.CompanyID]; !ok {
			return 0, &store.ValidationError{Field: "company_id", Reason: "references a nonexistent company"}
		}
	}
	c.ID = s.st.nextID("contact")
	c.CreatedAt = s.stamp(c.CreatedAt)
	c.UpdatedAt = s.stamp(c.UpdatedAt)
	s.st.contacts[c.ID] = *c
	return c.ID, nil
}

func (s *session) GetContact(ctx context.Context, id int64) (*model.Contact, error) {
	c, ok := s.st.contacts[id]
	if !ok {
		return nil, store.NotFound("contact", id)
	}
	return &c, nil
}

func (s *session) ListContacts(ctx context.Context, companyID *int64) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range s.st.contacts {
		if companyID != nil && (c.CompanyID == nil || *c.CompanyID != *companyID) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *session) UpdateContact(ctx context.Context, c *model.Contact) error {
	if _, ok := s.st.contacts[c.ID]; !ok {
		return store.NotFound("contact", c.ID)
	}
	c.UpdatedAt = s.now()
	s.st.contacts[c.ID] = *c
	return nil
}

func (s *session) DeleteContact(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.st.contacts[id]; !ok {
		return false, nil
	}
	delete(s.st.contacts, id)
	edges := s.st.appContacts[:0]
	for _, e := range s.st.appContacts {
		if e.otherID != id {
			edges = append(edges, e)
		}
	}
	s.st.appContacts = edges
	return true, nil
}

// Applications

func (s *session) CreateApplication(ctx context.Context, a *model.Application) (int64, error) {
	if _, ok := s.st.companies[a.CompanyID]; !ok {
		return 0, &store.ValidationError{Field: "company_id", Reason: "references a nonexistent company"}
	}
	a.ID = s.st.nextID("application")
	a.CreatedAt = s.stamp(a.CreatedAt)
	a.UpdatedAt = s.stamp(a.UpdatedAt)
	s.st.applications[a.ID] = *a
	return a.ID, nil
}

func (s *session) GetApplication(ctx context.Context, id int64) (*model.Application, error) {
	a, ok := s.st.applications[id]
	if !ok {
		return nil, store.NotFound("application", id)
	}
	return &a, nil
}

func (s *session) ListApplications(ctx context.Context, f store.ApplicationFilter) ([]model.Application, error) {
	var out []model.Application
	for _, a := range s.st.applications {
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.CompanyID != nil && a.CompanyID != *f.CompanyID {
			continue
		}
		if f.Search != "" && !s.matchesSearch(a, f.Search) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedDate.After(out[j].AppliedDate) })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *session) matchesSearch(a model.Application, term string) bool {
	term = strings.ToLower(term)
	fields := []string{a.JobTitle, a.Position}
	for _, p := range []*string{a.Location, a.Description, a.Notes} {
		if p != nil {
			fields = append(fields, *p)
		}
	}
	if c, ok := s.st.companies[a.CompanyID]; ok {
		fields = append(fields, c.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (s *session) UpdateApplication(ctx context.Context, a *model.Application) error {
	if _, ok := s.st.applications[a.ID]; !ok {
		return store.NotFound("application", a.ID)
	}
	s.st.applications[a.ID] = *a
	return nil
}

func (s *session) DeleteApplication(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.st.applications[id]; !ok {
		return false, nil
	}
	delete(s.st.applications, id)
	for iid, i := range s.st.interactions {
		if i.ApplicationID == id {
			delete(s.st.interactions, iid)
		}
	}
	for rid, r := range s.st.reminders {
		if r.ApplicationID != nil && *r.ApplicationID == id {
			delete(s.st.reminders, rid)
		}
	}
	contacts := s.st.appContacts[:0]
	for _, e := range s.st.appContacts {
		if e.applicationID != id {
			contacts = append(contacts, e)
		}
	}
	s.st.appContacts = contacts
	docs := s.st.appDocuments[:0]
	for _, e := range s.st.appDocuments {
		if e.applicationID != id {
			docs = append(docs, e)
		}
	}
	s.st.appDocuments = docs
	// Change records are retained as the historical audit trail.
	return true, nil
}

// Documents

func (s *session) CreateDocument(ctx context.Context, d *model.Document) (int64, error) {
	if d.Name == "" {
		return 0, &store.ValidationError{Field: "name", Reason: "is required"}
	}
	d.ID = s.st.nextID("document")
	d.CreatedAt = s.stamp(d.CreatedAt)
	s.st.documents[d.ID] = *d
	return d.ID, nil
}

func (s *session) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	d, ok := s.st.documents[id]
	if !ok {
		return nil, store.NotFound("document", id)
	}
	return &d, nil
}

func (s *session) ListDocuments(ctx context.Context) ([]model.Document, error) {
	out := make([]model.Document, 0, len(s.st.documents))
	for _, d := range s.st.documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *session) UpdateDocument(ctx context.Context, d *model.Document) error {
	if _, ok := s.st.documents[d.ID]; !ok {
		return store.NotFound("document", d.ID)
	}
	s.st.documents[d.ID] = *d
	return nil
}

func (s *session) DeleteDocument(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.st.documents[id]; !ok {
		return false, nil
	}
	delete(s.st.documents, id)
	edges := s.st.appDocuments[:0]
	for _, e := range s.st.appDocuments {
		if e.otherID != id {
			edges = append(edges, e)
		}
	}
	s.st.appDocuments = edges
	return true, nil
}

// Interactions

func (s *session) CreateInteraction(ctx context.Context, i *model.Interaction) (int64, error) {
	if _, ok := s.st.applications[i.ApplicationID]; !ok {
		return 0, &store.ValidationError{Field: "application_id", Reason: "references a nonexistent application"}
	}
	if i.ContactID != nil {
		if _, ok := s.st.contacts[*i.ContactID]; !ok {
			return 0, &store.ValidationError{Field: "contact_id", Reason: "references a nonexistent contact"}
		}
	}
	i.ID = s.st.nextID("interaction")
	i.CreatedAt = s.stamp(i.CreatedAt)
	if i.Date.IsZero() {
		i.Date = s.now()
	}
	s.st.interactions[i.ID] = *i
	return i.ID, nil
}

func (s *session) ListInteractionsByApplication(ctx context.Context, applicationID int64) ([]model.Interaction, error) {
	var out []model.Interaction
	for _, i := range s.st.interactions {
		if i.ApplicationID == applicationID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *session) ListRecentInteractions(ctx context.Context, limit int) ([]model.Interaction, error) {
	out := make([]model.Interaction, 0, len(s.st.interactions))
	for _, i := range s.st.interactions {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *session) DeleteInteraction(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.st.interactions[id]; !ok {
		return false, nil
	}
	delete(s.st.interactions, id)
	return true, nil
}

// Reminders

func (s *session) CreateReminder(ctx context.Context, r *model.Reminder) (int64, error) {
	if r.Title == "" {
		return 0, &store.ValidationError{Field: "title", Reason: "is required"}
	}
	if r.ApplicationID != nil {
		if _, ok := s.st.applications[*r.ApplicationID]; !ok {
			return 0, &store.ValidationError{Field: "application_id", Reason: "references a nonexistent application"}
		}
	}
	r.ID = s.st.nextID("reminder")
	r.CreatedAt = s.stamp(r.CreatedAt)
	s.st.reminders[r.ID] = *r
	return r.ID, nil
}

func (s *session) GetReminder(ctx context.Context, id int64) (*model.Reminder, error) {
	r, ok := s.st.reminders[id]
	if !ok {
		return nil, store.NotFound("reminder", id)
	}
	return &r, nil
}

func (s *session) ListReminders(ctx context.Context, f store.ReminderFilter) ([]model.Reminder, error) {
	var out []model.Reminder
	for _, r := range s.st.reminders {
		if f.ApplicationID != nil && (r.ApplicationID == nil || *r.ApplicationID != *f.ApplicationID) {
			continue
		}
		if f.Completed != nil && r.Completed != *f.Completed {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *session) UpdateReminder(ctx context.Context, r *model.Reminder) error {
	if _, ok := s.st.reminders[r.ID]; !ok {
		return store.NotFound("reminder", r.ID)
	}
	s.st.reminders[r.ID] = *r
	return nil
}

func (s *session) DeleteReminder(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.st.reminders[id]; !ok {
		return false, nil
	}
	delete(s.st.reminders, id)
	return true, nil
}

// Change records

func (s *session) AppendChangeRecord(ctx context.Context, r *model.ChangeRecord) (int64, error) {
	r.ID = s.st.nextID("change")
	// The stamp is always assigned here, never caller-supplied.
	r.CreatedAt = s.now()
	s.st.changes[r.ID] = *r
	return r.ID, nil
}

func (s *session) ListChangeRecords(ctx context.Context, applicationID int64) ([]model.ChangeRecord, error) {
	var out []model.ChangeRecord
	for _, r := range s.st.changes {
		if r.ApplicationID == applicationID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Relationship edges

func (s *session) LinkContact(ctx context.Context, applicationID, contactID int64) (bool, error) {
	if _, ok := s.st.applications[applicationID]; !ok {
		return false, store.NotFound("application", applicationID)
	}
	if _, ok := s.st.contacts[contactID]; !ok {
		return false, store.NotFound("contact", contactID)
	}
	for _, e := range s.st.appContacts {
		if e.applicationID == applicationID && e.otherID == contactID {
			return false, nil
		}
	}
	s.st.appContacts = append(s.st.appContacts, edge{applicationID: applicationID, otherID: contactID})
	return true, nil
}

func (s *session) UnlinkContact(ctx context.Context, applicationID, contactID int64) (bool, error) {
	for idx, e := range s.st.appContacts {
		if e.applicationID == applicationID && e.otherID == contactID {
			s.st.appContacts = append(s.st.appContacts[:idx], s.st.appContacts[idx+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *session) ListApplicationContacts(ctx context.Context, applicationID int64) ([]model.Contact, error) {
	var out []model.Contact
	for _, e := range s.st.appContacts {
		if e.applicationID != applicationID {
			continue
		}
		if c, ok := s.st.contacts[e.otherID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *session) LinkDocument(ctx context.Context, applicationID, documentID int64) (bool, error) {
	if _, ok := s.st.applications[applicationID]; !ok {
		return false, store.NotFound("application", applicationID)
	}
	if _, ok := s.st.documents[documentID]; !ok {
		return false, store.NotFound("document", documentID)
	}
	for _, e := range s.st.appDocuments {
		if e.applicationID == applicationID && e.otherID == documentID {
			return false, nil
		}
	}
	s.st.appDocuments = append(s.st.appDocuments, edge{applicationID: applicationID, otherID: documentID})
	return true, nil
}

func (s *session) ListApplicationDocuments(ctx context.Context, applicationID int64) ([]model.Document, error) {
	var out []model.Document
	for _, e := range s.st.appDocuments {
		if e.applicationID != applicationID {
			continue
		}
		if d, ok := s.st.documents[e.otherID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}
