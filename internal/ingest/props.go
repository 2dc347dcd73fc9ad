// Package ingest reads evaluation inputs and raw slates from disk and writes
// run results.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/prop-edge/internal/features"
	"github.com/yourusername/prop-edge/internal/models"
)

// ReadProps reads prop inputs from a .csv or .json file
func ReadProps(path string) ([]models.PropInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open props file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParsePropsCSV(f)
	case ".json":
		return ParsePropsJSON(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, models.ErrUnsupportedInput)
	}
}

// ParsePropsJSON decodes a JSON array of prop inputs
func ParsePropsJSON(r io.Reader) ([]models.PropInput, error) {
	var inputs []models.PropInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("decoding props JSON: %w", err)
	}
	return inputs, nil
}

// ReadSlate reads a raw slate JSON file for the feature stage
func ReadSlate(path string) (features.RawSlate, error) {
	var slate features.RawSlate
	f, err := os.Open(path)
	if err != nil {
		return slate, fmt.Errorf("failed to open slate file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&slate); err != nil {
		return slate, fmt.Errorf("decoding slate JSON: %w", err)
	}
	return slate, nil
}

// ParsePropsCSV reads prop inputs from a CSV with a header row. Columns are
// matched by name; unknown columns are ignored and absent optional columns
// read as unknown.
func ParsePropsCSV(r io.Reader) ([]models.PropInput, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file: %w", models.ErrInvalidInput)
	}

	cols := newColumns(records[0])
	for _, name := range []string{"market", "side", "line", "odds"} {
		if cols.index(name) == -1 {
			return nil, fmt.Errorf("required column %q not found: %w", name, models.ErrInvalidInput)
		}
	}
	if cols.index("player_id") == -1 && cols.index("player_name") == -1 {
		return nil, fmt.Errorf("one of player_id or player_name is required: %w", models.ErrInvalidInput)
	}

	inputs := make([]models.PropInput, 0, len(records)-1)
	for i, record := range records[1:] {
		in, err := cols.parse(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

type columns map[string]int

func newColumns(header []string) columns {
	c := make(columns, len(header))
	for i, h := range header {
		c[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return c
}

func (c columns) index(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return -1
}

func (c columns) text(record []string, name string) string {
	i := c.index(name)
	if i == -1 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c columns) value(record []string, name string) (models.Value, error) {
	v, err := models.ParseValue(c.text(record, name))
	if err != nil {
		return v, fmt.Errorf("column %s: %w", name, models.ErrInvalidInput)
	}
	return v, nil
}

// factor reads a context multiplier; absent values are 0 and later read as
// neutral.
func (c columns) factor(record []string, name string) (float64, error) {
	v, err := c.value(record, name)
	return v.Or(0), err
}

func (c columns) parse(record []string) (models.PropInput, error) {
	var in models.PropInput
	in.PlayerID = c.text(record, "player_id")
	in.PlayerName = c.text(record, "player_name")
	in.Market = models.Market(c.text(record, "market"))
	in.Side = models.Side(c.text(record, "side"))
	in.PlayerTeam = c.text(record, "player_team_name")
	in.OpponentTeam = c.text(record, "opp_team_name")

	var err error
	if raw := c.text(record, "odds"); raw != "" {
		if in.Odds, err = ParseOdds(raw); err != nil {
			return in, err
		}
	}

	stats := []struct {
		name string
		dst  *models.Value
	}{
		{"line", &in.Line},
		{"pts_last10_mean", &in.PtsLast10Mean},
		{"pts_last10_std", &in.PtsLast10Std},
		{"reb_last10_mean", &in.RebLast10Mean},
		{"reb_last10_std", &in.RebLast10Std},
		{"ast_last10_mean", &in.AstLast10Mean},
		{"ast_last10_std", &in.AstLast10Std},
		{"fg3_last10_mean", &in.Fg3Last10Mean},
		{"fg3_last10_std", &in.Fg3Last10Std},
		{"min_last10_mean", &in.MinLast10Mean},
	}
	for _, s := range stats {
		if *s.dst, err = c.value(record, s.name); err != nil {
			return in, err
		}
	}

	if in.PaceFactor, err = c.factor(record, "pace_factor"); err != nil {
		return in, err
	}
	if in.DefenseFactor, err = c.factor(record, "defense_factor"); err != nil {
		return in, err
	}
	return in, nil
}

// ParseOdds parses an American price such as "-110", "+120" or "150.0".
// Blank, NaN and infinite prices read as 0, the unknown price. Prices outside
// the int32 range are rejected.
func ParseOdds(s string) (int, error) {
	v, err := models.ParseValue(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("odds %q: %w", s, models.ErrInvalidInput)
	}
	f, ok := v.Get()
	if !ok {
		return 0, nil
	}
	f = math.Round(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("odds %q out of range: %w", s, models.ErrInvalidInput)
	}
	return int(f), nil
}
