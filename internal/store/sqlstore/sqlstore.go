// Package sqlstore implements the record store over database/sql. One
// implementation serves both backends: sqlite (modernc driver) and postgres
// (pgx registered as a database/sql driver).
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
)

// timeLayout is fixed-width UTC so stored text sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var timeNow = func() time.Time { return time.Now().UTC() }

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the database/sql record store.
type Store struct {
	db      *sql.DB
	dialect Dialect
	*queries
}

var _ store.Store = (*Store)(nil)

// New wraps an open database handle. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		queries: &queries{db: db, dialect: dialect},
	}
}

func (s *Store) Close() error { return s.db.Close() }

// RunInTransaction executes fn inside a single database transaction; the
// entity write and its ledger append commit or roll back together.
func (s *Store) RunInTransaction(ctx context.Context, fn func(q store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&queries{db: tx, dialect: s.dialect}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// DeleteApplication cascades interactions, reminders, and link rows inside
// one transaction. Change records stay behind.
func (s *Store) DeleteApplication(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.RunInTransaction(ctx, func(q store.Queries) error {
		var err error
		deleted, err = q.DeleteApplication(ctx, id)
		return err
	})
	return deleted, err
}

// DeleteCompany runs the ownership check and the delete in one transaction.
func (s *Store) DeleteCompany(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.RunInTransaction(ctx, func(q store.Queries) error {
		var err error
		deleted, err = q.DeleteCompany(ctx, id)
		return err
	})
	return deleted, err
}

// queries implements store.Queries against either the pool or a transaction.
type queries struct {
	db      dbtx
	dialect Dialect
}

// rebind rewrites ? placeholders to $N for postgres. Statements are written
// with ? so the sqlite driver binds positionally.
func (q *queries) rebind(query string) string {
	if q.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, q.rebind(query), args...)
}

func (q *queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.rebind(query), args...)
}

func (q *queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.rebind(query), args...)
}

// insert runs an INSERT and returns the generated id, papering over the
// LastInsertId vs RETURNING split between the drivers.
func (q *queries) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if q.dialect == DialectPostgres {
		var id int64
		if err := q.queryRow(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
