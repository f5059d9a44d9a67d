package ceremony

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
)

// scriptParams are the slots the closing-ceremony template fills in. The
// list blocks are prebuilt HTML fragments, one <p> per announcement line.
type scriptParams struct {
	TournamentName string

	Div1List template.HTML
	Div2List template.HTML

	RGDiv1List template.HTML
	RGDiv2List template.HTML

	RDDiv1List template.HTML
	RDDiv2List template.HTML
	RDThisThem string

	IPDiv1List template.HTML
	IPDiv2List template.HTML
	IPThisThem string

	CVDiv1List template.HTML
	CVDiv2List template.HTML
	CVThisThem string

	ChampDiv1List template.HTML
	ChampDiv2List template.HTML

	JACount  int
	JAList   template.HTML
	JAGoGoes string

	AdvDiv1List template.HTML
	AdvDiv2List template.HTML
}

// Render executes the ceremony script template over the collected data and
// writes the HTML to w.
func Render(w io.Writer, data *Data, r config.Rules, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("could not read the template file %s: %w", templatePath, err)
	}

	params := scriptParams{TournamentName: data.TournamentName}
	for _, dd := range data.Divisions {
		teamBlock := teamListHTML(dd.Teams, dd.Division)
		rgBlock := winnersHTML(dd.RobotGame, dd.Division, true, r)
		advBlock := teamListHTML(dd.Advancing, dd.Division)
		var rd, ip, cv, champ template.HTML
		for _, group := range dd.Judged {
			block := winnersHTML(group.Winners, dd.Division, false, r)
			switch group.Award {
			case "Robot Design":
				rd = block
			case "Innovation Project":
				ip = block
			case "Core Values":
				cv = block
			case "Champions":
				champ = block
			}
		}
		switch dd.Division {
		case 1:
			params.Div1List, params.RGDiv1List, params.AdvDiv1List = teamBlock, rgBlock, advBlock
			params.RDDiv1List, params.IPDiv1List, params.CVDiv1List, params.ChampDiv1List = rd, ip, cv, champ
		case 2:
			params.Div2List, params.RGDiv2List, params.AdvDiv2List = teamBlock, rgBlock, advBlock
			params.RDDiv2List, params.IPDiv2List, params.CVDiv2List, params.ChampDiv2List = rd, ip, cv, champ
		}
		params.JAList += teamListHTML(dd.JudgesAward, dd.Division)
	}

	params.JACount = data.JudgesAwardCount
	params.RDThisThem = thisThem(awardCount(data, "Robot Design"))
	params.IPThisThem = thisThem(awardCount(data, "Innovation Project"))
	params.CVThisThem = thisThem(awardCount(data, "Core Values"))
	if data.JudgesAwardCount > 1 {
		params.JAGoGoes = "The Judges Awards go to teams"
	} else {
		params.JAGoGoes = "The Judges Award goes to team"
	}

	return tmpl.Execute(w, params)
}

func awardCount(data *Data, award string) int {
	count := 0
	for _, dd := range data.Divisions {
		for _, group := range dd.Judged {
			if group.Award == award {
				count += len(group.Winners)
			}
		}
	}
	return count
}

func thisThem(count int) string {
	if count == 1 {
		return "This team"
	}
	return "These teams"
}

func teamListHTML(teams []Team, division int) template.HTML {
	var b strings.Builder
	for _, t := range teams {
		fmt.Fprintf(&b, "<p>(Div %d) Team number %d, %s</p>\n", division, t.Number, template.HTMLEscapeString(t.Name))
	}
	return template.HTML(b.String())
}

// winnersHTML renders award announcement lines. Winners arrive in
// announcement order already (highest place first).
func winnersHTML(winners []Winner, division int, withScore bool, r config.Rules) template.HTML {
	var b strings.Builder
	for _, w := range winners {
		name := template.HTMLEscapeString(w.Name)
		if withScore {
			fmt.Fprintf(&b, "<p>With a score of %d points, the Division %d %s place award goes to team number %d, %s</p>\n",
				w.Score, division, r.Ordinal(w.Place), w.Number, name)
			continue
		}
		fmt.Fprintf(&b, "<p>The Division %d %s place %s award goes to team number %d, %s</p>\n",
			division, r.Ordinal(w.Place), template.HTMLEscapeString(w.Award), w.Number, name)
	}
	return template.HTML(b.String())
}
