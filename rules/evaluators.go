package rules

import (
	"fmt"
	"strings"

	"github.com/MrGibbage/OJS-Script-maker-NG/checks"
	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
)

// Rule names as they appear in outcomes.
const (
	RuleStructure     = "structure"
	RuleRobotGame     = "robot-game-scores"
	RuleRobotGameRank = "robot-game-ranking"
	RuleJudgedScores  = "judged-scores"
	RuleTeamIdentity  = "team-identity"
	RuleAwardDupes    = "award-duplicates"
	RuleMissingAward  = "award-missing"
	RuleAdvancing     = "advancing-quota"
	RuleAlternate     = "alternate-advancing"
	RuleJudgesQuota   = "judges-award-quota"
)

// EvaluateRobotGame checks the robot game score range for blanks,
// non-numbers and out-of-bounds values, then verifies the ranking columns
// are complete. All of these are fatal: the ceremony script needs a total
// order over teams.
func EvaluateRobotGame(d *Division, r config.Rules) []Outcome {
	var out []Outcome
	if v := checks.Empty(d.RobotGame); len(v) > 0 {
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleRobotGame,
			Division: d.Number,
			Message:  fmt.Sprintf("there are missing scores on the %s worksheet", d.RobotGame.Sheet),
			Cells:    checks.Refs(v),
		})
	}
	if v := checks.Numeric(d.RobotGame); len(v) > 0 {
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleRobotGame,
			Division: d.Number,
			Message:  fmt.Sprintf("there are non-numeric scores on the %s worksheet", d.RobotGame.Sheet),
			Cells:    checks.Refs(v),
		})
	}
	if v := checks.Bounded(d.RobotGame, r.RobotGameMin, r.RobotGameMax); len(v) > 0 {
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleRobotGame,
			Division: d.Number,
			Message: fmt.Sprintf("there are scores outside [%.0f, %.0f] on the %s worksheet",
				r.RobotGameMin, r.RobotGameMax, d.RobotGame.Sheet),
			Cells: checks.Refs(v),
		})
	}

	var incomplete []int
	byRank := map[int][]int{}
	for _, team := range d.Teams {
		if team.Number.IsEmpty() {
			continue
		}
		rank, ok := team.Rank.Int()
		if !ok {
			incomplete = append(incomplete, team.TeamNumber())
			continue
		}
		if team.MaxScore.Kind != ojs.Number {
			incomplete = append(incomplete, team.TeamNumber())
			continue
		}
		byRank[rank] = append(byRank[rank], team.TeamNumber())
	}
	if len(incomplete) > 0 {
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleRobotGameRank,
			Division: d.Number,
			Message:  "Some robot game scores are missing. All robot game ranks must be visible on the Results and Rankings worksheet.",
			Teams:    incomplete,
		})
	}

	// A duplicated rank leaves a gap somewhere below it, so the ceremony
	// would skip an announced place. Ranks 1..N must each appear once.
	ranked := 0
	for _, teams := range byRank {
		ranked += len(teams)
	}
	broken := false
	var duplicated []int
	for place := 1; place <= ranked; place++ {
		if len(byRank[place]) != 1 {
			broken = true
		}
		if len(byRank[place]) > 1 {
			duplicated = append(duplicated, byRank[place]...)
		}
	}
	if broken {
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleRobotGameRank,
			Division: d.Number,
			Message: fmt.Sprintf("the robot game ranking has gaps or duplicate ranks, every rank from 1 to %d must appear exactly once on the Results and Rankings worksheet",
				ranked),
			Teams: duplicated,
		})
	}
	return out
}

// EvaluateTeamIdentity warns about ranked rows carrying a team name without
// a team number, or a number without a name. Such rows slip past the rank
// checks and would be announced as team 0 or with a blank name.
func EvaluateTeamIdentity(d *Division) []Outcome {
	var out []Outcome
	for _, team := range d.Teams {
		switch {
		case team.Number.IsEmpty() && !team.Name.IsEmpty():
			out = append(out, Outcome{
				Severity: Warning,
				Rule:     RuleTeamIdentity,
				Division: d.Number,
				Message:  fmt.Sprintf("team %q has no team number on the Results and Rankings worksheet", team.Name.String()),
			})
		case !team.Number.IsEmpty() && team.Name.IsEmpty():
			out = append(out, Outcome{
				Severity: Warning,
				Rule:     RuleTeamIdentity,
				Division: d.Number,
				Message:  fmt.Sprintf("team %d has no team name on the Results and Rankings worksheet", team.TeamNumber()),
				Teams:    []int{team.TeamNumber()},
			})
		}
	}
	return out
}

// EvaluateJudgedCategories checks every judged input sheet for blanks,
// non-numbers and scores outside the category's closed set. Each violation
// type is reported independently.
func EvaluateJudgedCategories(d *Division) []Outcome {
	var out []Outcome
	for _, cat := range d.Categories {
		if v := checks.Empty(cat.Range); len(v) > 0 {
			out = append(out, Outcome{
				Severity: Fatal,
				Rule:     RuleJudgedScores,
				Division: d.Number,
				Message:  fmt.Sprintf("there are missing scores on the %s worksheet", cat.Rule.Sheet),
				Cells:    checks.Refs(v),
			})
		}
		if v := checks.Numeric(cat.Range); len(v) > 0 {
			out = append(out, Outcome{
				Severity: Fatal,
				Rule:     RuleJudgedScores,
				Division: d.Number,
				Message:  fmt.Sprintf("there are non-numeric scores on the %s worksheet", cat.Rule.Sheet),
				Cells:    checks.Refs(v),
			})
		}
		if v := checks.Allowed(cat.Range, cat.Rule.Allowed); len(v) > 0 {
			out = append(out, Outcome{
				Severity: Fatal,
				Rule:     RuleJudgedScores,
				Division: d.Number,
				Message: fmt.Sprintf("there are invalid values on the %s worksheet, scores must be one of %v",
					cat.Rule.Sheet, cat.Rule.Allowed),
				Cells: checks.Refs(v),
			})
		}
	}
	return out
}

// EvaluateAwardDuplicates reports every award string assigned to more than
// one team, with all offending team numbers, so the operator can fix every
// occurrence in one pass.
func EvaluateAwardDuplicates(d *Division) []Outcome {
	byAward := map[string][]int{}
	var order []string
	for _, team := range d.Teams {
		award := strings.TrimSpace(team.Award.String())
		if award == "" {
			continue
		}
		if _, seen := byAward[award]; !seen {
			order = append(order, award)
		}
		byAward[award] = append(byAward[award], team.TeamNumber())
	}

	var out []Outcome
	for _, award := range order {
		teams := byAward[award]
		if len(teams) < 2 {
			continue
		}
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleAwardDupes,
			Division: d.Number,
			Message:  fmt.Sprintf("award %q is assigned to %d teams", award, len(teams)),
			Teams:    teams,
		})
	}
	return out
}

// EvaluateMissingAwards warns for every expected judged award label with no
// selection. Under-selection is advisory: a tournament may decline an
// optional award.
func EvaluateMissingAwards(d *Division, r config.Rules) []Outcome {
	assigned := map[string]bool{}
	for _, team := range d.Teams {
		award := strings.TrimSpace(team.Award.String())
		if award != "" {
			assigned[award] = true
		}
	}

	var out []Outcome
	for _, award := range r.Awards {
		count := d.AwardCounts[award.Name]
		for place := 1; place <= count; place++ {
			label := fmt.Sprintf("%s %s Place", award.Name, r.Ordinal(place))
			if !assigned[label] {
				out = append(out, Outcome{
					Severity: Warning,
					Rule:     RuleMissingAward,
					Division: d.Number,
					Message:  fmt.Sprintf("%s award appears missing, has it been selected in the OJS?", label),
				})
			}
		}
	}
	return out
}

// EvaluateAdvancing checks the advancing-team count against the Meta quota.
// Selecting too many is fatal (the ceremony would announce more advancers
// than the tournament is permitted); selecting fewer is a warning the
// operator may accept. The alternate flag is expected on exactly one team,
// but any other count is only a warning.
func EvaluateAdvancing(d *Division, r config.Rules) []Outcome {
	advancing := 0
	alternates := 0
	for _, team := range d.Teams {
		switch strings.TrimSpace(team.Advance.String()) {
		case AdvanceYes:
			advancing++
		case AdvanceAlt:
			alternates++
		}
	}

	var out []Outcome
	if advancing > d.Advancing {
		out = append(out, Outcome{
			Severity: Fatal,
			Rule:     RuleAdvancing,
			Division: d.Number,
			Message: fmt.Sprintf("selected more advancing teams than allowed: permitted %d, selected %d",
				d.Advancing, advancing),
		})
	} else if advancing < d.Advancing {
		out = append(out, Outcome{
			Severity: Warning,
			Rule:     RuleAdvancing,
			Division: d.Number,
			Message: fmt.Sprintf("selected fewer advancing teams than allowed: permitted %d, selected %d",
				d.Advancing, advancing),
		})
	}

	if alternates == 0 {
		out = append(out, Outcome{
			Severity: Warning,
			Rule:     RuleAlternate,
			Division: d.Number,
			Message:  "no alternate advancing team has been selected",
		})
	} else if alternates > 1 {
		out = append(out, Outcome{
			Severity: Warning,
			Rule:     RuleAlternate,
			Division: d.Number,
			Message:  fmt.Sprintf("%d alternate advancing teams are selected, expected one", alternates),
		})
	}
	return out
}

// EvaluateJudgesQuota checks the Judges award count against the Meta quota.
// The quota is tournament-wide: with two divisions the selections are
// summed across both workbooks. Exceeding is fatal, a shortfall is a
// warning, and meeting the quota exactly is silent.
func EvaluateJudgesQuota(divisions []*Division, r config.Rules) []Outcome {
	if len(divisions) == 0 {
		return nil
	}
	quota := divisions[0].Judges
	selected := 0
	for _, d := range divisions {
		for _, team := range d.Teams {
			if strings.HasPrefix(strings.TrimSpace(team.Award.String()), r.JudgesAwardPrefix) {
				selected++
			}
		}
	}

	if selected > quota {
		return []Outcome{{
			Severity: Fatal,
			Rule:     RuleJudgesQuota,
			Message: fmt.Sprintf("selected too many judges awards: permitted %d across all divisions, selected %d",
				quota, selected),
		}}
	}
	if selected < quota {
		return []Outcome{{
			Severity: Warning,
			Rule:     RuleJudgesQuota,
			Message: fmt.Sprintf("selected fewer judges awards than allowed: permitted %d across all divisions, selected %d",
				quota, selected),
		}}
	}
	return nil
}
