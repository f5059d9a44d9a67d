package rules

import (
	"fmt"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
)

// Rankings table columns. Lookup is by header text; a renamed header fails
// extraction with SchemaMismatch rather than silently skipping a check.
const (
	ColTeamNumber = "Team Number"
	ColTeamName   = "Team Name"
	ColRank       = "Robot Game Rank"
	ColMaxScore   = "Max Robot Game Score"
	ColAward      = "Award"
	ColAdvance    = "Advance?"
)

const (
	AdvanceYes = "Yes"
	AdvanceAlt = "Alt"
)

// TeamRow is one ranked team from the Results and Rankings table.
type TeamRow struct {
	Row      int
	Number   ojs.Cell
	Name     ojs.Cell
	Rank     ojs.Cell
	MaxScore ojs.Cell
	Award    ojs.Cell
	Advance  ojs.Cell
}

// TeamNumber returns the team number, or 0 when the cell is not a whole
// number.
func (t TeamRow) TeamNumber() int {
	n, ok := t.Number.Int()
	if !ok {
		return 0
	}
	return n
}

type CategoryRange struct {
	Rule  config.CategoryRule
	Range ojs.Range
}

// Division holds everything the evaluators need from one OJS workbook,
// extracted up front. Evaluators are pure functions over this snapshot.
type Division struct {
	Number int
	Path   string
	Meta   ojs.Meta

	Teams      []TeamRow
	RobotGame  ojs.Range
	Categories []CategoryRange

	// Quotas parsed from Meta; extraction fails when these are not
	// non-negative whole numbers.
	Advancing   int
	Judges      int
	AwardCounts map[string]int
}

// Extract reads the tables and score ranges for one division workbook.
// Only structural and schema problems fail here; everything about cell
// content is left to the evaluators.
func Extract(w *ojs.Workbook, division int, r config.Rules) (*Division, error) {
	meta, err := ojs.ReadMeta(w)
	if err != nil {
		return nil, err
	}
	if err := meta.Require("Tournament Long Name", "Completed Script File"); err != nil {
		return nil, err
	}

	d := &Division{
		Number:      division,
		Path:        w.Path,
		Meta:        meta,
		AwardCounts: map[string]int{},
	}
	if d.Advancing, err = meta.Count(r.AdvancingKey); err != nil {
		return nil, err
	}
	if d.Judges, err = meta.Count(r.JudgesKey); err != nil {
		return nil, err
	}
	for _, award := range r.Awards {
		count, err := meta.Count(award.MetaKey)
		if err != nil {
			return nil, err
		}
		d.AwardCounts[award.Name] = count
	}
	robotGameCount, err := meta.Count("Robot Game")
	if err != nil {
		return nil, err
	}
	d.AwardCounts["Robot Game"] = robotGameCount

	rankings, err := w.Table(r.RankingsSheet, r.RankingsTable)
	if err != nil {
		return nil, err
	}
	if err := rankings.Require(ColTeamNumber, ColTeamName, ColRank, ColMaxScore, ColAward, ColAdvance); err != nil {
		return nil, err
	}
	for row := range rankings.Rows {
		team := TeamRow{Row: row}
		for _, field := range []struct {
			col  string
			dest *ojs.Cell
		}{
			{ColTeamNumber, &team.Number},
			{ColTeamName, &team.Name},
			{ColRank, &team.Rank},
			{ColMaxScore, &team.MaxScore},
			{ColAward, &team.Award},
			{ColAdvance, &team.Advance},
		} {
			cell, err := rankings.Cell(row, field.col)
			if err != nil {
				return nil, err
			}
			*field.dest = cell
		}
		if team.Number.IsEmpty() && team.Name.IsEmpty() {
			continue
		}
		d.Teams = append(d.Teams, team)
	}
	if len(d.Teams) == 0 {
		return nil, fmt.Errorf("no teams found in table %q", r.RankingsTable)
	}

	teams := len(d.Teams)
	if d.RobotGame, err = w.RangeSnapshot(r.RobotGameSheet, r.RobotGameRef(teams)); err != nil {
		return nil, err
	}
	for _, cat := range r.Categories {
		rng, err := w.RangeSnapshot(cat.Sheet, cat.Ref(teams))
		if err != nil {
			return nil, err
		}
		d.Categories = append(d.Categories, CategoryRange{Rule: cat, Range: rng})
	}
	return d, nil
}
