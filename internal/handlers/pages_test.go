package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
)

func TestAllPagesRender(t *testing.T) {
	paths := []string{
		"/new-users-stats",
		"/tournaments",
		"/activity-stats",
		"/overview",
		"/tournament-points",
		"/user-gems",
	}
	h, _ := newTestHandler(0)
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := serve(h, httptest.NewRequest("GET", path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Expected HTML, got %q", ct)
			}
		})
	}
}

func TestRootRedirects(t *testing.T) {
	h, _ := newTestHandler(0)
	w := serve(h, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/new-users-stats" {
		t.Errorf("Expected redirect to /new-users-stats, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestNewUserStatsPage(t *testing.T) {
	h, deps := newTestHandler(0)
	deps.userStats.NewUsersFunc = func(ctx context.Context, env environment.Environment, from, to time.Time) (*models.NewUsersReport, error) {
		return &models.NewUsersReport{
			Count: 1,
			Items: []models.NewUserRow{{
				UserID:             "7",
				UserName:           "<script>neo</script>",
				CreatedAt:          testNow.Add(-time.Hour),
				TotalMatchesPlayed: 3,
				Activities: []models.SessionRow{
					{GameMode: "King Of The Hill", Map: "Colossus", SessionStartAt: testNow},
				},
			}},
		}, nil
	}

	w := serve(h, httptest.NewRequest("GET", "/new-users-stats", nil))
	body := w.Body.String()
	if !strings.Contains(body, "King Of The Hill on Colossus") {
		t.Errorf("Expected session row in page")
	}
	if strings.Contains(body, "<script>neo") {
		t.Errorf("Expected user name to be escaped")
	}
	// Default window: 168h back, truncated to the hour.
	if !strings.Contains(body, `value="2024-03-03T15:00"`) {
		t.Errorf("Expected default from in filter form")
	}
}

func TestTournamentsPage_HighlightsWinner(t *testing.T) {
	h, deps := newTestHandler(0)
	deps.tournaments.BoardFunc = func(ctx context.Context, env environment.Environment, rng upstream.Range) (*models.TournamentBoard, error) {
		return &models.TournamentBoard{Rows: []models.TournamentRow{{
			Rank:     1,
			PlayedAt: testNow,
			Teams: [2]models.TeamStanding{
				{Present: true, Points: 10, Players: []string{"alice", "bob"}, Winner: true},
				{Present: true, Points: 4, Players: []string{"carol"}},
			},
		}}}, nil
	}

	w := serve(h, httptest.NewRequest("GET", "/tournaments", nil))
	body := w.Body.String()
	if !strings.Contains(body, `<td class="winner">alice, bob</td>`) {
		t.Errorf("Expected winning team highlighted, got:\n%s", body)
	}
	if strings.Contains(body, `<td class="winner">carol</td>`) {
		t.Errorf("Losing team must not be highlighted")
	}
}

func TestPage_EnvironmentResolution(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		cookie   string
		expected environment.Environment
	}{
		{"Default", "", "", environment.Dev},
		{"Cookie", "", "production", environment.Production},
		{"QueryBeatsCookie", "?env=stage", "production", environment.Stage},
		{"LegacySelector", "?env=3", "", environment.Production},
		{"BadCookieFallsBack", "", "qa", environment.Dev},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(0)
			var got environment.Environment
			deps.overview.OverviewFunc = func(ctx context.Context, env environment.Environment, from, to time.Time) (*models.Overview, error) {
				got = env
				return &models.Overview{}, nil
			}
			req := httptest.NewRequest("GET", "/overview"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: envCookie, Value: tt.cookie})
			}
			serve(h, req)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestPage_UpstreamFailure(t *testing.T) {
	h, deps := newTestHandler(0)
	deps.activity.BreakdownFunc = func(ctx context.Context, env environment.Environment, from, to time.Time, newUsersOnly bool) (*models.ActivityReport, error) {
		return nil, errors.New("connection reset")
	}

	w := serve(h, httptest.NewRequest("GET", "/activity-stats", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "connection reset") {
		t.Errorf("Expected error message in page")
	}
}

func TestSelectEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		referer  string
		expected string
	}{
		{"ReturnField", url.Values{"env": {"stage"}, "return": {"/tournaments?env=dev&from=2024-01-01"}}, "", "/tournaments?from=2024-01-01"},
		{"Referer", url.Values{"env": {"2"}}, "http://example.com/user-gems?userName=neo", "/user-gems?userName=neo"},
		{"OffSite", url.Values{"env": {"stage"}, "return": {"https://evil.test/x"}}, "", "/"},
		{"ProtocolRelative", url.Values{"env": {"stage"}, "return": {"//evil.test/x"}}, "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(0)
			req := httptest.NewRequest("POST", "/env", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			w := serve(h, req)

			if w.Code != http.StatusSeeOther {
				t.Fatalf("Expected 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.expected {
				t.Errorf("Expected redirect to %q, got %q", tt.expected, loc)
			}
			cookies := w.Result().Cookies()
			if len(cookies) != 1 || cookies[0].Name != envCookie || cookies[0].Value != "stage" {
				t.Errorf("Expected stage cookie, got %v", cookies)
			}
		})
	}
}

func TestSelectEnvironment_Unknown(t *testing.T) {
	h, _ := newTestHandler(0)
	req := httptest.NewRequest("POST", "/env", strings.NewReader("env=qa"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if w := serve(h, req); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestSaveTournamentPoints(t *testing.T) {
	h, deps := newTestHandler(0)
	var gotEnv environment.Environment
	var gotUpdates []models.TournamentPointsUpdate
	deps.economy.SetTournamentPointsFunc = func(ctx context.Context, env environment.Environment, actor string, updates []models.TournamentPointsUpdate) error {
		gotEnv, gotUpdates = env, updates
		return nil
	}

	form := url.Values{
		"env":                   {"production"},
		"userName":              {"neo"},
		"userId":                {"42"},
		"tournamentPoints":      {"12.5"},
		"tournamentPlayedCount": {"4"},
	}
	req := httptest.NewRequest("POST", "/tournament-points", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(h, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if gotEnv != environment.Production {
		t.Errorf("Expected production, got %s", gotEnv)
	}
	want := models.TournamentPointsUpdate{UserID: "42", TournamentPoints: 12.5, TournamentPlayedCount: 4}
	if len(gotUpdates) != 1 || gotUpdates[0] != want {
		t.Errorf("Expected %+v, got %+v", want, gotUpdates)
	}

	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("Bad Location: %v", err)
	}
	q := loc.Query()
	if loc.Path != "/tournament-points" || q.Get("userName") != "neo" || q.Get("env") != "production" {
		t.Errorf("Unexpected redirect %s", loc)
	}
	if !strings.Contains(q.Get("notice"), "42") {
		t.Errorf("Expected notice naming the user, got %q", q.Get("notice"))
	}
}

func TestSaveUserGems_InvalidNumber(t *testing.T) {
	h, deps := newTestHandler(0)
	called := false
	deps.economy.SetGemsFunc = func(ctx context.Context, env environment.Environment, actor string, updates []models.GemsUpdate) error {
		called = true
		return nil
	}

	form := url.Values{"userId": {"42"}, "gemsCount": {"lots"}}
	req := httptest.NewRequest("POST", "/user-gems", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(h, req)

	if called {
		t.Error("Economy service must not be called for an invalid form")
	}
	loc, _ := url.Parse(w.Header().Get("Location"))
	if msg := loc.Query().Get("error"); !strings.Contains(msg, "gemsCount") {
		t.Errorf("Expected error about gemsCount, got %q", msg)
	}
}

func TestUserGemsPage_ShowsNotice(t *testing.T) {
	h, deps := newTestHandler(0)
	deps.economy.GemsFunc = func(ctx context.Context, env environment.Environment, userName string) ([]models.UserGems, error) {
		return []models.UserGems{{UserID: "42", UserName: "neo", GemsCount: 1500}}, nil
	}

	w := serve(h, httptest.NewRequest("GET", "/user-gems?notice=Saved+gems", nil))
	body := w.Body.String()
	if !strings.Contains(body, `<div class="notice">Saved gems</div>`) {
		t.Errorf("Expected notice banner")
	}
	if !strings.Contains(body, `id="gems-42"`) {
		t.Errorf("Expected edit form for user 42")
	}
}
