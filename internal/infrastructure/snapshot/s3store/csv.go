package s3store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
)

var playerColumns = []string{
	"id", "web_name", "element_type", "team", "team_name",
	"now_cost", "form", "total_points", "diff",
}

var oddsColumns = []string{
	"id", "event", "kickoff_time", "team_h", "team_a", "team_h_name", "team_a_name",
	"team_h_strength", "team_a_strength", "team_h_difficulty", "team_a_difficulty",
}

func writePlayers(w io.Writer, items []asset.Asset) error {
	out := csv.NewWriter(w)
	if err := out.Write(playerColumns); err != nil {
		return err
	}
	for _, item := range items {
		row := []string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			strconv.Itoa(item.Position.ElementType()),
			strconv.FormatInt(item.TeamID, 10),
			item.TeamName,
			strconv.FormatInt(item.Cost, 10),
			strconv.FormatFloat(item.Form, 'f', -1, 64),
			strconv.Itoa(item.TotalPoints),
			strconv.FormatFloat(item.FixtureDiff, 'f', -1, 64),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

func writeOdds(w io.Writer, items []fixture.Fixture) error {
	out := csv.NewWriter(w)
	if err := out.Write(oddsColumns); err != nil {
		return err
	}
	for _, item := range items {
		kickoff := ""
		if !item.KickoffAt.IsZero() {
			kickoff = item.KickoffAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(item.ID, 10),
			strconv.Itoa(item.Gameweek),
			kickoff,
			strconv.FormatInt(item.HomeTeamID, 10),
			strconv.FormatInt(item.AwayTeamID, 10),
			item.HomeTeam,
			item.AwayTeam,
			strconv.Itoa(item.HomeStrength),
			strconv.Itoa(item.AwayStrength),
			strconv.Itoa(item.HomeDifficulty),
			strconv.Itoa(item.AwayDifficulty),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// table reads a CSV with a header row and addresses cells by column name.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, required []string) (table, error) {
	in := csv.NewReader(r)
	in.FieldsPerRecord = -1
	records, err := in.ReadAll()
	if err != nil {
		return table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return table{}, fmt.Errorf("read csv: missing header")
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return table{}, fmt.Errorf("read csv: missing column %q", name)
		}
	}
	return table{index: index, rows: records[1:]}, nil
}

func (t table) cell(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t table) int64(row []string, name string) (int64, error) {
	raw := t.cell(row, name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return value, nil
	}
	// pandas writes integer columns with NaNs as floats
	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return int64(f), nil
}

func (t table) float(row []string, name string) float64 {
	return asset.ParseForm(t.cell(row, name))
}

func parsePlayers(r io.Reader) ([]asset.Asset, error) {
	tbl, err := readTable(r, []string{"id", "web_name", "element_type", "team", "now_cost"})
	if err != nil {
		return nil, err
	}

	out := make([]asset.Asset, 0, len(tbl.rows))
	for n, row := range tbl.rows {
		id, err := tbl.int64(row, "id")
		if err != nil {
			return nil, fmt.Errorf("players row %d: %w", n+1, err)
		}
		elementType, err := tbl.int64(row, "element_type")
		if err != nil {
			return nil, fmt.Errorf("players row %d: %w", n+1, err)
		}
		position, err := asset.PositionFromElementType(int(elementType))
		if err != nil {
			continue
		}
		teamID, err := tbl.int64(row, "team")
		if err != nil {
			return nil, fmt.Errorf("players row %d: %w", n+1, err)
		}
		cost, err := tbl.int64(row, "now_cost")
		if err != nil {
			return nil, fmt.Errorf("players row %d: %w", n+1, err)
		}
		points, err := tbl.int64(row, "total_points")
		if err != nil {
			return nil, fmt.Errorf("players row %d: %w", n+1, err)
		}

		item := asset.Asset{
			ID:          id,
			Name:        tbl.cell(row, "web_name"),
			Position:    position,
			TeamID:      teamID,
			TeamName:    tbl.cell(row, "team_name"),
			Cost:        cost,
			Form:        tbl.float(row, "form"),
			FixtureDiff: tbl.float(row, "diff"),
			TotalPoints: int(points),
		}
		if item.Validate() != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func parseOdds(r io.Reader, gameweek int) ([]fixture.Fixture, error) {
	tbl, err := readTable(r, []string{"team_h", "team_a", "team_h_strength", "team_a_strength"})
	if err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(tbl.rows))
	for n, row := range tbl.rows {
		var ints [7]int64
		for i, name := range []string{"id", "event", "team_h", "team_a", "team_h_strength", "team_a_strength", "team_h_difficulty"} {
			value, err := tbl.int64(row, name)
			if err != nil {
				return nil, fmt.Errorf("odds row %d: %w", n+1, err)
			}
			ints[i] = value
		}
		awayDifficulty, err := tbl.int64(row, "team_a_difficulty")
		if err != nil {
			return nil, fmt.Errorf("odds row %d: %w", n+1, err)
		}

		event := int(ints[1])
		if event == 0 {
			event = gameweek
		}
		item := fixture.Fixture{
			ID:             ints[0],
			Gameweek:       event,
			HomeTeamID:     ints[2],
			AwayTeamID:     ints[3],
			HomeTeam:       tbl.cell(row, "team_h_name"),
			AwayTeam:       tbl.cell(row, "team_a_name"),
			HomeStrength:   int(ints[4]),
			AwayStrength:   int(ints[5]),
			HomeDifficulty: int(ints[6]),
			AwayDifficulty: int(awayDifficulty),
		}
		if raw := tbl.cell(row, "kickoff_time"); raw != "" {
			if kickoff, err := time.Parse(time.RFC3339, raw); err == nil {
				item.KickoffAt = kickoff
			}
		}
		out = append(out, item)
	}
	fixture.SortByKickoff(out)
	return out, nil
}
