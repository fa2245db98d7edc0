package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// Dialect selects the SQL flavor. The statements are shared; only the
// primary-key spelling differs between sqlite and postgres.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const pkSQLite = "INTEGER PRIMARY KEY AUTOINCREMENT"
const pkPostgres = "BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY"

// All timestamps are stored as fixed-width UTC text so ordering works the
// same on both backends.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
	id {{PK}},
	name TEXT NOT NULL,
	website TEXT,
	industry TEXT,
	size TEXT,
	notes TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS contacts (
	id {{PK}},
	company_id BIGINT REFERENCES companies(id),
	name TEXT NOT NULL,
	title TEXT,
	email TEXT,
	phone TEXT,
	notes TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS applications (
	id {{PK}},
	company_id BIGINT NOT NULL REFERENCES companies(id),
	job_title TEXT NOT NULL,
	position TEXT NOT NULL,
	location TEXT,
	salary_min BIGINT,
	salary_max BIGINT,
	status TEXT NOT NULL,
	applied_date TEXT NOT NULL,
	link TEXT,
	description TEXT,
	notes TEXT,
	tags TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS documents (
	id {{PK}},
	name TEXT NOT NULL,
	doc_type TEXT NOT NULL,
	url TEXT,
	content TEXT,
	created_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS interactions (
	id {{PK}},
	application_id BIGINT NOT NULL REFERENCES applications(id),
	contact_id BIGINT REFERENCES contacts(id),
	interaction_type TEXT NOT NULL,
	date TEXT NOT NULL,
	subject TEXT,
	notes TEXT,
	created_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS reminders (
	id {{PK}},
	application_id BIGINT REFERENCES applications(id),
	title TEXT NOT NULL,
	description TEXT,
	due_date TEXT NOT NULL,
	completed BIGINT NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
)`,
	// No application FK: change records outlive the application they audit.
	`CREATE TABLE IF NOT EXISTS change_records (
	id {{PK}},
	application_id BIGINT NOT NULL,
	kind TEXT NOT NULL,
	old_value TEXT,
	new_value TEXT,
	note TEXT,
	created_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS contact_applications (
	application_id BIGINT NOT NULL REFERENCES applications(id),
	contact_id BIGINT NOT NULL REFERENCES contacts(id),
	created_at TEXT NOT NULL,
	PRIMARY KEY (application_id, contact_id)
)`,
	`CREATE TABLE IF NOT EXISTS application_documents (
	application_id BIGINT NOT NULL REFERENCES applications(id),
	document_id BIGINT NOT NULL REFERENCES documents(id),
	created_at TEXT NOT NULL,
	PRIMARY KEY (application_id, document_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_company ON applications(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_application ON interactions(application_id)`,
	`CREATE INDEX IF NOT EXISTS idx_change_records_application ON change_records(application_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_application ON reminders(application_id)`,
}

// Migrate applies the schema. Statements are idempotent, so calling it on
// every startup is safe.
func (s *Store) Migrate(ctx context.Context) error {
	pk := pkSQLite
	if s.dialect == DialectPostgres {
		pk = pkPostgres
	}
	for _, stmt := range schemaStatements {
		ddl := strings.ReplaceAll(stmt, "{{PK}}", pk)
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
