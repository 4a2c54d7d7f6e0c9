package audit

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// MockRedisClient keeps lists in memory.
type MockRedisClient struct {
	lists   map[string][]string
	PushErr error
	PingErr error
}

func newMockRedis() *MockRedisClient {
	return &MockRedisClient{lists: map[string][]string{}}
}

func (m *MockRedisClient) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if m.PushErr != nil {
		return redis.NewIntResult(0, m.PushErr)
	}
	for _, v := range values {
		var s string
		switch val := v.(type) {
		case []byte:
			s = string(val)
		case string:
			s = val
		}
		m.lists[key] = append([]string{s}, m.lists[key]...)
	}
	return redis.NewIntResult(int64(len(m.lists[key])), nil)
}

func (m *MockRedisClient) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	list := m.lists[key]
	if stop+1 < int64(len(list)) {
		m.lists[key] = list[start : stop+1]
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *MockRedisClient) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	list := m.lists[key]
	end := stop + 1
	if end > int64(len(list)) {
		end = int64(len(list))
	}
	if start >= end {
		return redis.NewStringSliceResult([]string{}, nil)
	}
	return redis.NewStringSliceResult(list[start:end], nil)
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.PingErr)
}

type MockPgPool struct {
	ExecFunc  func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFunc func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockPgPool) Ping(ctx context.Context) error { return nil }

type MockRows struct {
	pgx.Rows
	NextFunc func() bool
	ScanFunc func(dest ...any) error
}

func (m *MockRows) Next() bool {
	if m.NextFunc != nil {
		return m.NextFunc()
	}
	return false
}

func (m *MockRows) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

func (m *MockRows) Close()     {}
func (m *MockRows) Err() error { return nil }
