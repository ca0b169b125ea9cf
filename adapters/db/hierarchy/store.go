// Package hierarchy resolves evaluated responses to their place in the
// conversation tree stored in the assistant's message database.
package hierarchy

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"evalreport/domain/evaluation"
	"evalreport/internal/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// maxAncestors bounds the recursive walk so a cyclic parent chain cannot
// loop forever
const maxAncestors = 10000

// Store looks up message hierarchies in the message table
type Store struct {
	db    *sqlx.DB
	query string
}

// Open connects to the message database. dsn is a file path for sqlite and a
// connection URL for postgres.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to connect to %s message database", driver), err)
	}
	store, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an open connection
func NewStore(db *sqlx.DB) (*Store, error) {
	var match string
	switch db.DriverName() {
	case DriverSQLite, "sqlite3":
		match = "HEX(id) = ?"
	case DriverPostgres:
		match = "upper(encode(id, 'hex')) = ?"
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unsupported message database driver %q", db.DriverName()))
	}

	query := fmt.Sprintf(`
		WITH RECURSIVE message_hierarchy(id, parent_id, text, depth) AS (
			SELECT id, parent_id, text, 0
			FROM message
			WHERE %s

			UNION ALL

			SELECT m.id, m.parent_id, m.text, mh.depth + 1
			FROM message m
			JOIN message_hierarchy mh ON m.id = mh.parent_id
			WHERE mh.depth < %d
		)
		SELECT depth, text, parent_id IS NULL AS is_root
		FROM message_hierarchy
		ORDER BY depth
	`, match, maxAncestors)

	return &Store{db: db, query: db.Rebind(query)}, nil
}

// DB exposes the underlying connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the connection
func (s *Store) Close() error {
	return s.db.Close()
}

type ancestorRow struct {
	Depth  int            `db:"depth"`
	Text   sql.NullString `db:"text"`
	IsRoot bool           `db:"is_root"`
}

// Lookup walks from the response message up to the root of its
// conversation. Depth counts exchanges: a message with k ancestors sits at
// depth (k+1)/2. An unknown id yields the zero Hierarchy.
func (s *Store) Lookup(ctx context.Context, responseID string) (evaluation.Hierarchy, error) {
	var rows []ancestorRow
	if err := s.db.SelectContext(ctx, &rows, s.query, NormalizeID(responseID)); err != nil {
		return evaluation.Hierarchy{}, errors.DatabaseError(fmt.Sprintf("failed to look up response %s", responseID), err)
	}
	return buildHierarchy(rows), nil
}

// buildHierarchy derives the hierarchy fields from the ancestor chain, which
// is ordered from the message itself (depth 0) towards the root
func buildHierarchy(rows []ancestorRow) evaluation.Hierarchy {
	var h evaluation.Hierarchy
	if len(rows) == 0 {
		return h
	}

	maxDepth := rows[len(rows)-1].Depth
	h.Depth = (maxDepth + 1) / 2
	h.Text = rows[0].Text.String
	if len(rows) > 1 {
		h.ParentText = rows[1].Text.String
	}

	var b strings.Builder
	for i := len(rows) - 1; i >= 1; i-- {
		b.WriteString(rows[i].Text.String)
	}
	h.ConcatenatedText = b.String()

	for _, r := range rows {
		if r.IsRoot {
			h.RootText = r.Text.String
			break
		}
	}
	return h
}

// NormalizeID renders a response id the way the message table's binary ids
// hex-encode: upper case without dashes. Ids that are not UUIDs fall back to
// stripping dashes.
func NormalizeID(responseID string) string {
	if u, err := uuid.Parse(strings.TrimSpace(responseID)); err == nil {
		return strings.ToUpper(hex.EncodeToString(u[:]))
	}
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(responseID), "-", ""))
}

// Message is one row of the message table
type Message struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Text     string
}

// SaveMessage inserts a message. The schema must exist (see
// internal/migration).
func (s *Store) SaveMessage(ctx context.Context, m Message) error {
	var parent any
	if m.ParentID != nil {
		parent = m.ParentID[:]
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO message (id, parent_id, text)
		VALUES (?, ?, ?)
	`), m.ID[:], parent, m.Text)
	if err != nil {
		return errors.DatabaseError(fmt.Sprintf("failed to save message %s", m.ID), err)
	}
	return nil
}

// Messages streams every message to fn in an order where parents precede
// their children
func (s *Store) Messages(ctx context.Context, fn func(Message) error) error {
	rows, err := s.db.QueryxContext(ctx, `
		WITH RECURSIVE ordered(id, parent_id, text, depth) AS (
			SELECT id, parent_id, text, 0 FROM message WHERE parent_id IS NULL
			UNION ALL
			SELECT m.id, m.parent_id, m.text, o.depth + 1
			FROM message m
			JOIN ordered o ON m.parent_id = o.id
		)
		SELECT id, parent_id, text FROM ordered ORDER BY depth
	`)
	if err != nil {
		return errors.DatabaseError("failed to list messages", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, parentID []byte
			text         sql.NullString
		)
		if err := rows.Scan(&id, &parentID, &text); err != nil {
			return errors.DatabaseError("failed to scan message", err)
		}
		m := Message{Text: text.String}
		if m.ID, err = uuid.FromBytes(id); err != nil {
			return errors.DatabaseError("message id is not a 16-byte uuid", err)
		}
		if parentID != nil {
			p, err := uuid.FromBytes(parentID)
			if err != nil {
				return errors.DatabaseError("parent id is not a 16-byte uuid", err)
			}
			m.ParentID = &p
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.DatabaseError("failed to iterate messages", err)
	}
	return nil
}
