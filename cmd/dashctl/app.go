package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/xhit/go-str2duration/v2"
	"go.uber.org/zap"

	"github.com/battleroyale/stats-dashboard/internal/audit"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/logic"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

const (
	tournamentWindow = 24 * time.Hour
	reportWindow     = 7 * 24 * time.Hour
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "dashctl",
		Usage:     "Query the Battle Royale admin API from a terminal",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "target environment (dev, stage, production)",
				Value:   "dev",
				EnvVars: []string{"DASHCTL_ENV"},
			},
			&cli.StringFlag{
				Name:    "upstream-url",
				Usage:   "override the API base URL of the selected environment",
				EnvVars: []string{"DASHCTL_UPSTREAM_URL"},
			},
			&cli.StringFlag{
				Name:  "timeout",
				Usage: "request timeout",
				Value: "30s",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "window length ending now, e.g. 12h, 7d, 2w (default depends on the report)",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "window start (RFC3339 or YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "window end (RFC3339 or YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "tz",
				Usage: "time zone for input dates and output",
				Value: "UTC",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "tournaments",
				Usage:  "List finished tournament games",
				Action: runTournaments,
			},
			{
				Name:   "new-users",
				Usage:  "List users registered in the window",
				Action: runNewUsers,
			},
			{
				Name:  "activity",
				Usage: "Playtime by game mode and map",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "new-users-only", Usage: "only count users created in the window"},
				},
				Action: runActivity,
			},
			{
				Name:   "overview",
				Usage:  "Summarise the window",
				Action: runOverview,
			},
			{
				Name:  "points",
				Usage: "Tournament points",
				Subcommands: []*cli.Command{
					{
						Name:      "list",
						Usage:     "List users' tournament points",
						ArgsUsage: "[user name]",
						Action:    runPointsList,
					},
					{
						Name:  "set",
						Usage: "Overwrite a user's tournament points",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "user-id", Required: true},
							&cli.Float64Flag{Name: "points", Required: true},
							&cli.Int64Flag{Name: "played", Required: true, Usage: "tournaments played"},
						},
						Action: runPointsSet,
					},
				},
			},
			{
				Name:  "gems",
				Usage: "Gem balances",
				Subcommands: []*cli.Command{
					{
						Name:      "list",
						Usage:     "List users' gems",
						ArgsUsage: "[user name]",
						Action:    runGemsList,
					},
					{
						Name:  "set",
						Usage: "Overwrite a user's gems",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "user-id", Required: true},
							&cli.Int64Flag{Name: "gems", Required: true},
						},
						Action: runGemsSet,
					},
				},
			},
			{
				Name:      "timespan",
				Usage:     "Render a backend TimeSpan (d.hh:mm:ss) as words",
				ArgsUsage: "<value>",
				Action:    runTimespan,
			},
		},
	}
}

// session holds what every API command needs.
type session struct {
	env    environment.Environment
	api    *upstream.Client
	loc    *time.Location
	now    time.Time
	out    io.Writer
	logger *zap.Logger
}

func newSession(c *cli.Context) (*session, error) {
	env, err := environment.Parse(c.String("env"))
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(c.String("tz"))
	if err != nil {
		return nil, fmt.Errorf("invalid --tz: %w", err)
	}
	timeout, err := str2duration.ParseDuration(c.String("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid --timeout: %w", err)
	}

	var overrides map[environment.Environment]string
	if u := c.String("upstream-url"); u != "" {
		overrides = map[environment.Environment]string{env: u}
	}
	urls, err := environment.NewTable(overrides)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	api, err := upstream.New(upstream.Config{URLs: urls, Timeout: timeout, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &session{
		env:    env,
		api:    api,
		loc:    loc,
		now:    time.Now(),
		out:    c.App.Writer,
		logger: logger,
	}, nil
}

// window resolves --from/--to/--since. Without --from the window starts
// --since (or def) before now, truncated to the hour.
func (s *session) window(c *cli.Context, def time.Duration) (time.Time, time.Time, error) {
	to := s.now.In(s.loc)
	if v := c.String("to"); v != "" {
		t, err := parseDate(v, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
		}
		to = t
	}

	if v := c.String("from"); v != "" {
		from, err := parseDate(v, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
		}
		return from, to, nil
	}

	span := def
	if v := c.String("since"); v != "" {
		d, err := str2duration.ParseDuration(v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since: %w", err)
		}
		span = d
	}
	from := to.Add(-span)
	return time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), 0, 0, 0, s.loc), to, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// economy builds the service used for edits. The CLI keeps no audit trail of
// its own; the operator is recorded as the actor in the service log.
func (s *session) economy() logic.EconomyService {
	return logic.NewEconomyService(s.api, audit.NopStore{}, s.logger)
}

func operator() string {
	for _, key := range []string{"DASHCTL_ACTOR", "USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return "dashctl"
}

func rangeOf(from, to time.Time) upstream.Range {
	return upstream.Range{From: from, To: to}
}
