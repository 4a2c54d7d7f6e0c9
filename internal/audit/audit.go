// Package audit keeps a trail of the edits made through the dashboard.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Edit kinds
const (
	KindTournamentPoints = "tournament_points"
	KindGems             = "gems"
)

// DefaultLimit is used by Recent callers that pass a non-positive limit.
const DefaultLimit = 50

// Entry records one user's values being overwritten in one environment.
type Entry struct {
	ID     uuid.UUID          `json:"id"`
	Env    string             `json:"env"`
	Kind   string             `json:"kind"`
	UserID string             `json:"user_id"`
	Values map[string]float64 `json:"values"`
	Actor  string             `json:"actor,omitempty"`
	At     time.Time          `json:"at"`
}

// NewEntry stamps an entry with a fresh id and the current time.
func NewEntry(env, kind, userID, actor string, values map[string]float64) Entry {
	return Entry{
		ID:     uuid.New(),
		Env:    env,
		Kind:   kind,
		UserID: userID,
		Values: values,
		Actor:  actor,
		At:     time.Now().UTC(),
	}
}

type Store interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Ping(ctx context.Context) error
}

// NopStore discards entries. It is used when no backend is configured.
type NopStore struct{}

func (NopStore) Record(context.Context, Entry) error { return nil }
func (NopStore) Recent(context.Context, int) ([]Entry, error) { return nil, nil }
func (NopStore) Ping(context.Context) error { return nil }

// BatchRecorder is implemented by stores that can write several entries in
// one round trip. Entries are ordered oldest first.
type BatchRecorder interface {
	RecordBatch(ctx context.Context, entries []Entry) error
}
