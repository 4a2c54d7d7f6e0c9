// Package upstream is the HTTP client for the game backend's admin and
// leaderboard REST API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
)

// TimeLayout is the wire format for query timestamps (JavaScript toISOString).
const TimeLayout = "2006-01-02T15:04:05.000Z"

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 4096

var ErrEmptyBatch = errors.New("empty update batch")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: upstream status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: upstream status %d: %s", e.Endpoint, e.Status, e.Body)
}

// Prometheus metrics
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Total number of requests sent to the backend API",
	}, []string{"env", "endpoint", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_upstream_request_duration_seconds",
		Help:    "Duration of backend API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"env", "endpoint"})
)

// Range bounds a report. A zero From or To is left out of the request.
type Range struct {
	From time.Time
	To   time.Time
}

type Config struct {
	URLs       *environment.Table
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to every environment; the target is chosen per call.
type Client struct {
	urls   *environment.Table
	http   *http.Client
	logger *zap.SugaredLogger
}

func New(cfg Config) (*Client, error) {
	if cfg.URLs == nil {
		urls, err := environment.NewTable(nil)
		if err != nil {
			return nil, err
		}
		cfg.URLs = urls
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		urls:   cfg.URLs,
		http:   cfg.HTTPClient,
		logger: cfg.Logger.Sugar(),
	}, nil
}

// TournamentLeaderboard fetches finished tournament matches.
func (c *Client) TournamentLeaderboard(ctx context.Context, env environment.Environment, rng Range) (*models.TournamentLeaderboard, error) {
	q := url.Values{}
	if !rng.From.IsZero() {
		q.Set("from", FormatTime(rng.From))
	}
	if !rng.To.IsZero() {
		q.Set("to", FormatTime(rng.To))
	}
	var out models.TournamentLeaderboard
	if err := c.get(ctx, env, "/leaderboard/tournaments", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewUserStats fetches users created between from and to.
func (c *Client) NewUserStats(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUserStatsResponse, error) {
	q := url.Values{}
	q.Set("from", FormatTime(from))
	q.Set("to", FormatTime(to))
	var out models.NewUserStatsResponse
	if err := c.get(ctx, env, "/admin/get-new-user-stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GameModeMapStats fetches playtime grouped by game mode and map.
func (c *Client) GameModeMapStats(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.GameModeMapStatsResponse, error) {
	q := url.Values{}
	q.Set("from", FormatTime(from))
	q.Set("to", FormatTime(to))
	q.Set("newUsersOnly", strconv.FormatBool(newUsersOnly))
	var out models.GameModeMapStatsResponse
	if err := c.get(ctx, env, "/admin/get-game-mode-map-stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserTournamentPoints lists users' tournament points, optionally filtered
// by user name.
func (c *Client) UserTournamentPoints(ctx context.Context, env environment.Environment, userName string) ([]models.UserTournamentPoints, error) {
	var out []models.UserTournamentPoints
	if err := c.get(ctx, env, "/admin/user-tournament-points", userNameQuery(userName), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetTournamentPoints overwrites points and played counts for a batch of users.
func (c *Client) SetTournamentPoints(ctx context.Context, env environment.Environment, updates []models.TournamentPointsUpdate) error {
	if len(updates) == 0 {
		return ErrEmptyBatch
	}
	body := models.SetTournamentPointsRequest{TournamentPoints: updates}
	// the backend route is spelled this way
	return c.post(ctx, env, "/admin/set-toournament-points", body)
}

// UserGems lists users' gem balances, optionally filtered by user name.
func (c *Client) UserGems(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error) {
	var out []models.UserGems
	if err := c.get(ctx, env, "/admin/user-gems", userNameQuery(userName), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetGems overwrites gem balances for a batch of users.
func (c *Client) SetGems(ctx context.Context, env environment.Environment, updates []models.GemsUpdate) error {
	if len(updates) == 0 {
		return ErrEmptyBatch
	}
	return c.post(ctx, env, "/admin/set-gems", models.SetGemsRequest{UserGems: updates})
}

// FormatTime renders t the way the backend expects query timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func userNameQuery(userName string) url.Values {
	if userName == "" {
		return nil
	}
	return url.Values{"userName": []string{userName}}
}

func (c *Client) endpointURL(env environment.Environment, path string, q url.Values) (string, error) {
	base, ok := c.urls.BaseURL(env)
	if !ok {
		return "", fmt.Errorf("%w: %q", environment.ErrUnknown, env)
	}
	u := base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u, nil
}

func (c *Client) get(ctx context.Context, env environment.Environment, path string, q url.Values, out interface{}) error {
	u, err := c.endpointURL(env, path, q)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, env, path, out)
}

func (c *Client) post(ctx context.Context, env environment.Environment, path string, body interface{}) error {
	u, err := c.endpointURL(env, path, nil)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, env, path, nil)
}

func (c *Client) do(req *http.Request, env environment.Environment, path string, out interface{}) error {
	start := time.Now()
	outcome := "error"
	defer func() {
		requestDuration.WithLabelValues(env.String(), path).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(env.String(), path, outcome).Inc()
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorw("Upstream request failed", "env", env, "endpoint", path, "error", err)
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "status_" + strconv.Itoa(resp.StatusCode)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Errorw("Upstream returned error status", "env", env, "endpoint", path, "status", resp.StatusCode)
		return &StatusError{Endpoint: path, Status: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			outcome = "decode_error"
			return fmt.Errorf("decode %s: %w", path, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	outcome = "ok"
	return nil
}
