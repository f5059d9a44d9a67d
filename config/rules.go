// Package config holds the fixed tournament business rules and the season
// configuration file. The rules are passed into the validator explicitly so
// tests can run against tweaked copies instead of ambient globals.
package config

import (
	"fmt"
	"regexp"
)

// CategoryRule describes one judged-category input sheet: where the score
// cells live and the closed set of legal scores.
type CategoryRule struct {
	Name     string
	Sheet    string
	FirstCol string
	LastCol  string
	Allowed  []float64
}

// Ref builds the A1-style score range for a sheet with the given number of
// team rows. Data starts on row 2, under the header row.
func (c CategoryRule) Ref(teams int) string {
	return fmt.Sprintf("%s2:%s%d", c.FirstCol, c.LastCol, teams+1)
}

// AwardRule names one judged award and the Meta key carrying its expected
// selection count for the tournament.
type AwardRule struct {
	Name    string
	MetaKey string
}

// Rules is the immutable rule set for one season's OJS format.
type Rules struct {
	// Robot Game scores: three rounds per team, bounded inclusive.
	RobotGameSheet    string
	RobotGameFirstCol string
	RobotGameLastCol  string
	RobotGameMin      float64
	RobotGameMax      float64

	Categories []CategoryRule

	// Results and Rankings table layout.
	RankingsSheet string
	RankingsTable string

	// Meta keys for the allocation quotas.
	AdvancingKey string
	JudgesKey    string

	// Judged awards announced at the ceremony, in announcement order.
	Awards []AwardRule

	// Award strings for the Judges award start with this prefix.
	JudgesAwardPrefix string

	// OJS filenames must match this pattern; the division capture group
	// is "div1" or "div2".
	FilenamePattern *regexp.Regexp

	Ordinals []string
}

// RobotGameRef builds the robot-game score range for the given team count.
func (r Rules) RobotGameRef(teams int) string {
	return fmt.Sprintf("%s2:%s%d", r.RobotGameFirstCol, r.RobotGameLastCol, teams+1)
}

// Ordinal returns "1st", "2nd", ... for a 1-based place.
func (r Rules) Ordinal(place int) string {
	if place >= 1 && place <= len(r.Ordinals) {
		return r.Ordinals[place-1]
	}
	return fmt.Sprintf("%dth", place)
}

var ojsFilenameRegexp = regexp.MustCompile(`^([0-9]{4}-vadc-fll-challenge-.*)(-ojs-)(.*)-(div[12])(\.xlsm)$`)

// DefaultRules returns the VA-DC FLL Challenge rule set.
func DefaultRules() Rules {
	return Rules{
		RobotGameSheet:    "Robot Game Scores",
		RobotGameFirstCol: "C",
		RobotGameLastCol:  "E",
		RobotGameMin:      0,
		RobotGameMax:      545,
		Categories: []CategoryRule{
			{
				Name:     "Robot Design",
				Sheet:    "Robot Design Input",
				FirstCol: "D",
				LastCol:  "M",
				Allowed:  []float64{0, 1, 2, 3, 4},
			},
			{
				Name:     "Innovation Project",
				Sheet:    "Innovation Project Input",
				FirstCol: "D",
				LastCol:  "M",
				Allowed:  []float64{0, 1, 2, 3, 4},
			},
			{
				// Gracious Professionalism scores skip 1 on the rubric.
				Name:     "Core Values",
				Sheet:    "Core Values Input",
				FirstCol: "N",
				LastCol:  "P",
				Allowed:  []float64{0, 2, 3, 4},
			},
		},
		RankingsSheet: "Results and Rankings",
		RankingsTable: "TournamentData",
		AdvancingKey:  "Advancing",
		JudgesKey:     "Judges",
		Awards: []AwardRule{
			{Name: "Robot Design", MetaKey: "Robot Design"},
			{Name: "Innovation Project", MetaKey: "Innovation Project"},
			{Name: "Core Values", MetaKey: "Core Values"},
			{Name: "Champions", MetaKey: "Champions"},
		},
		JudgesAwardPrefix: "Judges",
		FilenamePattern:   ojsFilenameRegexp,
		Ordinals:          []string{"1st", "2nd", "3rd", "4th", "5th"},
	}
}
