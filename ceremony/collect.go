// Package ceremony turns validated OJS records into the closing-ceremony
// script. The collector reshapes the extracted tables; it performs no
// business-rule checking because validation has already run.
package ceremony

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/rules"
)

type Team struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
}

type Winner struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
	Award  string `yaml:"award"`
	Place  int    `yaml:"place"`
	// Score is only set for Robot Game winners.
	Score int `yaml:"score,omitempty"`
}

// AwardGroup keeps judged winners in announcement order: lowest place
// announced last means the slice is stored highest place first.
type AwardGroup struct {
	Award   string   `yaml:"award"`
	Winners []Winner `yaml:"winners"`
}

type DivisionData struct {
	Division    int          `yaml:"division"`
	Teams       []Team       `yaml:"teams"`
	RobotGame   []Winner     `yaml:"robot_game"`
	Judged      []AwardGroup `yaml:"judged"`
	JudgesAward []Team       `yaml:"judges_award"`
	Advancing   []Team       `yaml:"advancing"`
	Alternates  []Team       `yaml:"alternates"`
}

// Data is the record set handed to the rendering step, and what the YAML
// dump serializes.
type Data struct {
	TournamentName   string         `yaml:"tournament_name"`
	ScriptFile       string         `yaml:"script_file"`
	JudgesAwardCount int            `yaml:"judges_award_count"`
	Divisions        []DivisionData `yaml:"divisions"`
}

// Division returns the data for a division number, or nil.
func (d *Data) Division(n int) *DivisionData {
	for i := range d.Divisions {
		if d.Divisions[i].Division == n {
			return &d.Divisions[i]
		}
	}
	return nil
}

// Collect reshapes validated division records for rendering. It must only
// be called when the validation report is not blocked.
func Collect(divisions []*rules.Division, r config.Rules) (*Data, error) {
	if len(divisions) == 0 {
		return nil, fmt.Errorf("no division data to collect")
	}

	data := &Data{
		TournamentName: divisions[0].Meta.Text("Tournament Long Name"),
		ScriptFile:     divisions[0].Meta.Text("Completed Script File"),
	}
	for _, d := range divisions {
		dd := DivisionData{Division: d.Number}
		dd.Teams = teamList(d, func(rules.TeamRow) bool { return true })
		dd.RobotGame = robotGameWinners(d)
		for _, award := range r.Awards {
			dd.Judged = append(dd.Judged, judgedWinners(d, award.Name, d.AwardCounts[award.Name], r))
		}
		dd.JudgesAward = teamList(d, func(t rules.TeamRow) bool {
			return strings.HasPrefix(strings.TrimSpace(t.Award.String()), r.JudgesAwardPrefix)
		})
		dd.Advancing = teamList(d, func(t rules.TeamRow) bool {
			return strings.TrimSpace(t.Advance.String()) == rules.AdvanceYes
		})
		dd.Alternates = teamList(d, func(t rules.TeamRow) bool {
			return strings.TrimSpace(t.Advance.String()) == rules.AdvanceAlt
		})
		data.JudgesAwardCount += len(dd.JudgesAward)
		data.Divisions = append(data.Divisions, dd)
	}
	return data, nil
}

func teamList(d *rules.Division, keep func(rules.TeamRow) bool) []Team {
	var teams []Team
	for _, t := range d.Teams {
		if !keep(t) {
			continue
		}
		teams = append(teams, Team{Number: t.TeamNumber(), Name: t.Name.String()})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Number < teams[j].Number })
	return teams
}

// robotGameWinners picks the top ranked teams, highest announced place
// first so the first place winner is read out last.
func robotGameWinners(d *rules.Division) []Winner {
	count := d.AwardCounts["Robot Game"]
	byRank := map[int]rules.TeamRow{}
	for _, t := range d.Teams {
		if rank, ok := t.Rank.Int(); ok {
			byRank[rank] = t
		}
	}
	var winners []Winner
	for place := count; place >= 1; place-- {
		t, ok := byRank[place]
		if !ok {
			continue
		}
		score, _ := t.MaxScore.Int()
		winners = append(winners, Winner{
			Number: t.TeamNumber(),
			Name:   t.Name.String(),
			Award:  "Robot Game",
			Place:  place,
			Score:  score,
		})
	}
	return winners
}

func judgedWinners(d *rules.Division, award string, count int, r config.Rules) AwardGroup {
	group := AwardGroup{Award: award}
	for place := count; place >= 1; place-- {
		label := fmt.Sprintf("%s %s Place", award, r.Ordinal(place))
		for _, t := range d.Teams {
			if strings.TrimSpace(t.Award.String()) != label {
				continue
			}
			group.Winners = append(group.Winners, Winner{
				Number: t.TeamNumber(),
				Name:   t.Name.String(),
				Award:  award,
				Place:  place,
			})
		}
	}
	return group
}

// WriteYAML dumps the collected data for downstream tooling.
func WriteYAML(w io.Writer, data *Data) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
