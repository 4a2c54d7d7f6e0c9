package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgPool is the subset of pgxpool.Pool the store needs.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

const schema = `
CREATE TABLE IF NOT EXISTS dashboard_audit (
	id      UUID PRIMARY KEY,
	env     TEXT NOT NULL,
	kind    TEXT NOT NULL,
	user_id TEXT NOT NULL,
	vals    JSONB NOT NULL,
	actor   TEXT NOT NULL DEFAULT '',
	at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS dashboard_audit_at_idx ON dashboard_audit (at DESC);`

type PostgresStore struct {
	pg PgPool
}

func NewPostgresStore(pg PgPool) *PostgresStore {
	return &PostgresStore{pg: pg}
}

// EnsureSchema creates the audit table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pg.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	vals, err := json.Marshal(e.Values)
	if err != nil {
		return fmt.Errorf("encode audit values: %w", err)
	}
	_, err = s.pg.Exec(ctx,
		`INSERT INTO dashboard_audit (id, env, kind, user_id, vals, actor, at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`,
		e.ID, e.Env, e.Kind, e.UserID, string(vals), e.Actor, e.At)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.pg.Query(ctx,
		`SELECT id, env, kind, user_id, vals, actor, at
		 FROM dashboard_audit ORDER BY at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var vals []byte
		if err := rows.Scan(&e.ID, &e.Env, &e.Kind, &e.UserID, &vals, &e.Actor, &e.At); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(vals) > 0 {
			if err := json.Unmarshal(vals, &e.Values); err != nil {
				return nil, fmt.Errorf("decode audit values: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pg.Ping(ctx)
}
