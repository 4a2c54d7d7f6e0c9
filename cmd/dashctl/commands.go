package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/battleroyale/stats-dashboard/internal/logic"
	"github.com/battleroyale/stats-dashboard/internal/models"
	"github.com/battleroyale/stats-dashboard/internal/timespan"
)

const timeLayout = "2006-01-02 15:04:05"

func runTournaments(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	from, to, err := s.window(c, tournamentWindow)
	if err != nil {
		return err
	}

	board, err := logic.NewTournamentService(s.api).Board(c.Context, s.env, rangeOf(from, to))
	if err != nil {
		return fmt.Errorf("failed to load tournaments: %w", err)
	}

	s.header("Tournaments", from, to)
	if len(board.Rows) == 0 {
		fmt.Fprintln(s.out, "No tournaments played in this window.")
		return nil
	}

	table := newTable(s.out, []string{"#", "Played", "Team 1", "Points", "Team 2", "Points"})
	for _, row := range board.Rows {
		cells := []string{strconv.Itoa(row.Rank), s.format(row.PlayedAt)}
		for _, team := range row.Teams {
			cells = append(cells, teamCells(team)...)
		}
		table.Append(cells)
	}
	table.Render()
	return nil
}

// teamCells marks the winner with a trailing asterisk.
func teamCells(t models.TeamStanding) []string {
	if !t.Present {
		return []string{"-", "-"}
	}
	points := humanize.Comma(t.Points)
	if t.Winner {
		points += " *"
	}
	return []string{strings.Join(t.Players, ", "), points}
}

func runNewUsers(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	from, to, err := s.window(c, reportWindow)
	if err != nil {
		return err
	}

	report, err := logic.NewUserStatsService(s.api).NewUsers(c.Context, s.env, from, to)
	if err != nil {
		return fmt.Errorf("failed to load new users: %w", err)
	}

	s.header("New users", from, to)
	fmt.Fprintf(s.out, "%s new users\n", humanize.Comma(int64(report.Count)))
	if len(report.Items) == 0 {
		return nil
	}

	table := newTable(s.out, []string{"User ID", "User", "Created", "Matches", "DM", "TDM", "KOTH", "TKOTH", "Sessions"})
	for _, u := range report.Items {
		table.Append([]string{
			u.UserID.String(),
			u.UserName,
			s.format(u.CreatedAt),
			strconv.Itoa(u.TotalMatchesPlayed),
			strconv.Itoa(u.DeathMatchPlayedCount),
			strconv.Itoa(u.TeamDeathMatchPlayedCount),
			strconv.Itoa(u.KingOfTheHillPlayedCount),
			strconv.Itoa(u.TeamKingOfTheHillPlayedCount),
			strconv.Itoa(len(u.Activities)),
		})
	}
	table.Render()
	return nil
}

func runActivity(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	from, to, err := s.window(c, reportWindow)
	if err != nil {
		return err
	}

	report, err := logic.NewActivityService(s.api).Breakdown(c.Context, s.env, from, to, c.Bool("new-users-only"))
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}

	s.header("Activity", from, to)
	fmt.Fprintf(s.out, "Total time played: %s\n", report.TotalTimePlayed)
	if len(report.Rows) == 0 {
		return nil
	}

	table := newTable(s.out, []string{"Game mode", "Map", "Players", "Unique", "Hours"})
	for _, row := range report.Rows {
		table.Append([]string{
			row.GameMode,
			row.Map,
			humanize.Comma(row.TotalPlayersCount),
			humanize.Comma(row.UniquePlayersCount),
			humanize.Ftoa(row.TotalTimePlayed),
		})
	}
	table.Render()
	return nil
}

func runOverview(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	from, to, err := s.window(c, reportWindow)
	if err != nil {
		return err
	}

	ov, err := logic.NewOverviewService(s.api).Overview(c.Context, s.env, from, to)
	if err != nil {
		return fmt.Errorf("failed to build overview: %w", err)
	}

	s.header("Overview", from, to)
	table := newTable(s.out, []string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"New users", humanize.Comma(int64(ov.NewUsers))},
		{"Tournament games", humanize.Comma(int64(ov.Tournaments))},
		{"Mode/map combinations", strconv.Itoa(ov.ModeMapCombos)},
		{"Players", humanize.Comma(ov.TotalPlayersCount)},
		{"Time played", ov.TotalTimePlayed},
	})
	table.Render()
	return nil
}

func runPointsList(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	rows, err := s.economy().TournamentPoints(c.Context, s.env, c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to load tournament points: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "No users found.")
		return nil
	}

	table := newTable(s.out, []string{"User ID", "User", "Created", "Points", "Played"})
	for _, r := range rows {
		table.Append([]string{
			r.UserID.String(),
			r.UserName,
			s.format(r.CreatedAt.Time),
			humanize.Ftoa(r.TournamentPoints),
			humanize.Comma(r.TournamentPlayedCount),
		})
	}
	table.Render()
	return nil
}

func runPointsSet(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	id, err := models.ParseUserID(c.String("user-id"))
	if err != nil {
		return err
	}
	update := models.TournamentPointsUpdate{
		UserID:                id,
		TournamentPoints:      c.Float64("points"),
		TournamentPlayedCount: c.Int64("played"),
	}
	if err := s.economy().SetTournamentPoints(c.Context, s.env, operator(), []models.TournamentPointsUpdate{update}); err != nil {
		return fmt.Errorf("failed to set tournament points: %w", err)
	}
	fmt.Fprintf(s.out, "Set tournament points of user %s on %s to %s (%d played)\n",
		id, s.env, humanize.Ftoa(update.TournamentPoints), update.TournamentPlayedCount)
	return nil
}

func runGemsList(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	rows, err := s.economy().Gems(c.Context, s.env, c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to load gems: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "No users found.")
		return nil
	}

	table := newTable(s.out, []string{"User ID", "User", "Created", "Gems"})
	for _, r := range rows {
		table.Append([]string{
			r.UserID.String(),
			r.UserName,
			s.format(r.CreatedAt.Time),
			humanize.Comma(r.GemsCount),
		})
	}
	table.Render()
	return nil
}

func runGemsSet(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	id, err := models.ParseUserID(c.String("user-id"))
	if err != nil {
		return err
	}
	update := models.GemsUpdate{UserID: id, GemsCount: c.Int64("gems")}
	if err := s.economy().SetGems(c.Context, s.env, operator(), []models.GemsUpdate{update}); err != nil {
		return fmt.Errorf("failed to set gems: %w", err)
	}
	fmt.Fprintf(s.out, "Set gems of user %s on %s to %s\n", id, s.env, humanize.Comma(update.GemsCount))
	return nil
}

func runTimespan(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: dashctl timespan <value>", 2)
	}
	fmt.Fprintln(c.App.Writer, timespan.Format(c.Args().First()))
	return nil
}

func (s *session) header(title string, from, to time.Time) {
	span := durafmt.Parse(to.Sub(from).Round(time.Minute)).LimitFirstN(2).String()
	fmt.Fprintf(s.out, "%s on %s, %s to %s (%s)\n", title, s.env, s.format(from), s.format(to), span)
}

func (s *session) format(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(s.loc).Format(timeLayout)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)
	return table
}
