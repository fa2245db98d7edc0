package memory

import (
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// edge is one row of a many-to-many link table.
type edge struct {
	applicationID int64
	otherID       int64
}

type state struct {
	seq          map[string]int64
	companies    map[int64]model.Company
	contacts     map[int64]model.Contact
	applications map[int64]model.Application
	documents    map[int64]model.Document
	interactions map[int64]model.Interaction
	reminders    map[int64]model.Reminder
	changes      map[int64]model.ChangeRecord
	appContacts  []edge
	appDocuments []edge
}

func newState() *state {
	return &state{
		seq:          make(map[string]int64),
		companies:    make(map[int64]model.Company),
		contacts:     make(map[int64]model.Contact),
		applications: make(map[int64]model.Application),
		documents:    make(map[int64]model.Document),
		interactions: make(map[int64]model.Interaction),
		reminders:    make(map[int64]model.Reminder),
		changes:      make(map[int64]model.ChangeRecord),
	}
}

func (st *state) nextID(kind string) int64 {
	st.seq[kind]++
	return st.seq[kind]
}

func (st *state) clone() *state {
	c := &state{
		seq:          make(map[string]int64, len(st.seq)),
		companies:    make(map[int64]model.Company, len(st.companies)),
		contacts:     make(map[int64]model.Contact, len(st.contacts)),
		applications: make(map[int64]model.Application, len(st.applications)),
		documents:    make(map[int64]model.Document, len(st.documents)),
		interactions: make(map[int64]model.Interaction, len(st.interactions)),
		reminders:    make(map[int64]model.Reminder, len(st.reminders)),
		changes:      make(map[int64]model.ChangeRecord, len(st.changes)),
		appContacts:  append([]edge(nil), st.appContacts...),
		appDocuments: append([]edge(nil), st.appDocuments...),
	}
	for k, v := range st.seq {
		c.seq[k] = v
	}
	for k, v := range st.companies {
		c.companies[k] = v
	}
	for k, v := range st.contacts {
		c.contacts[k] = v
	}
	for k, v := range st.applications {
		v.Tags = append([]string(nil), v.Tags...)
		c.applications[k] = v
	}
	for k, v := range st.documents {
		c.documents[k] = v
	}
	for k, v := range st.interactions {
		c.interactions[k] = v
	}
	for k, v := range st.reminders {
		c.reminders[k] = v
	}
	for k, v := range st.changes {
		c.changes[k] = v
	}
	return c
}
