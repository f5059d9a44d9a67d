package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
)

// fixtureTeam is one row of the Results and Rankings table. A nil rank or
// max leaves that cell blank.
type fixtureTeam struct {
	number  int
	name    string
	rank    any
	max     any
	award   string
	advance string
}

type fixture struct {
	name  string
	teams []fixtureTeam
	meta  map[string]any
	// skipRankings omits the TournamentData table entirely.
	skipRankings bool
	// awardHeader overrides the "Award" column header, for schema tests.
	awardHeader string
	// mutate runs after the base workbook is built.
	mutate func(t *testing.T, f *excelize.File)
}

// defaultTeams is a six-team division that validates clean against
// defaultMeta: two advancing, one alternate, one judges award, and every
// expected judged award assigned exactly once.
func defaultTeams() []fixtureTeam {
	return []fixtureTeam{
		{101, "Gear Grinders", 1, 300, "Champions 1st Place", "Yes"},
		{102, "Brick Storm", 2, 250, "Robot Design 1st Place", "Yes"},
		{103, "Cog Squad", 3, 200, "Innovation Project 1st Place", "Alt"},
		{104, "Axle Foundation", 4, 150, "Core Values 1st Place", ""},
		{105, "Torque Masters", 5, 100, "Judges Award 1", ""},
		{106, "Beam Team", 6, 50, "", ""},
	}
}

func defaultMeta() map[string]any {
	return map[string]any{
		"Tournament Long Name":  "Riverbend Qualifier",
		"Completed Script File": "closing_ceremony.html",
		"Advancing":             2,
		"Judges":                1,
		"Robot Game":            2,
		"Robot Design":          1,
		"Innovation Project":    1,
		"Core Values":           1,
		"Champions":             1,
	}
}

func defaultFixture() fixture {
	return fixture{
		name:  "2026-vadc-fll-challenge-riverbend-ojs-r1-div1.xlsm",
		teams: defaultTeams(),
		meta:  defaultMeta(),
	}
}

const (
	rankingsSheet = "Results and Rankings"
	robotSheet    = "Robot Game Scores"
)

// writeOJS builds a complete OJS workbook for the fixture and returns its
// path.
func writeOJS(t *testing.T, dir string, fx fixture) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	// Meta table
	_, err := f.NewSheet("Meta")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Meta", "A1", "Key"))
	require.NoError(t, f.SetCellValue("Meta", "B1", "Value"))
	row := 2
	// Fixed key order keeps fixtures reproducible.
	for _, key := range []string{
		"Tournament Long Name", "Completed Script File", "Advancing", "Judges",
		"Robot Game", "Robot Design", "Innovation Project", "Core Values", "Champions",
	} {
		value, ok := fx.meta[key]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Meta", cell, key))
		cell, err = excelize.CoordinatesToCellName(2, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Meta", cell, value))
		row++
	}
	metaRef, err := excelize.CoordinatesToCellName(2, row-1)
	require.NoError(t, err)
	require.NoError(t, f.AddTable("Meta", &excelize.Table{Range: "A1:" + metaRef, Name: "Meta"}))

	// Results and Rankings
	if !fx.skipRankings {
		_, err = f.NewSheet(rankingsSheet)
		require.NoError(t, err)
		awardHeader := fx.awardHeader
		if awardHeader == "" {
			awardHeader = ColAward
		}
		headers := []any{ColTeamNumber, ColTeamName, ColRank, ColMaxScore, awardHeader, ColAdvance}
		for col, h := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(rankingsSheet, cell, h))
		}
		for i, team := range fx.teams {
			values := []any{team.number, team.name, team.rank, team.max, team.award, team.advance}
			for col, v := range values {
				if v == nil || v == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(col+1, i+2)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(rankingsSheet, cell, v))
			}
		}
		endRef, err := excelize.CoordinatesToCellName(6, len(fx.teams)+1)
		require.NoError(t, err)
		require.NoError(t, f.AddTable(rankingsSheet, &excelize.Table{Range: "A1:" + endRef, Name: "TournamentData"}))
	}

	// Robot Game Scores: rounds in C:E, third round holds the max score.
	_, err = f.NewSheet(robotSheet)
	require.NoError(t, err)
	for i, team := range fx.teams {
		max, ok := team.max.(int)
		if !ok {
			max = 100
		}
		for col, score := range []int{50, 100, max} {
			cell, err := excelize.CoordinatesToCellName(col+3, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(robotSheet, cell, score))
		}
	}

	// Judged input sheets, every cell a legal score.
	for _, cat := range config.DefaultRules().Categories {
		_, err = f.NewSheet(cat.Sheet)
		require.NoError(t, err)
		first, _, err := excelize.CellNameToCoordinates(cat.FirstCol + "1")
		require.NoError(t, err)
		last, _, err := excelize.CellNameToCoordinates(cat.LastCol + "1")
		require.NoError(t, err)
		for i := range fx.teams {
			for col := first; col <= last; col++ {
				cell, err := excelize.CoordinatesToCellName(col, i+2)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(cat.Sheet, cell, 3))
			}
		}
	}

	if fx.mutate != nil {
		fx.mutate(t, f)
	}

	path := filepath.Join(dir, fx.name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// extractDivision writes the fixture workbook and extracts it as division 1.
func extractDivision(t *testing.T, fx fixture) *Division {
	t.Helper()
	path := writeOJS(t, t.TempDir(), fx)
	w, err := ojs.Open(path)
	require.NoError(t, err)
	defer w.Close()
	d, err := Extract(w, 1, config.DefaultRules())
	require.NoError(t, err)
	return d
}
