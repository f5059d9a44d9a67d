package tournament

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
)

// Season tournament list columns.
const (
	ColShortName   = "Short Name"
	ColLongName    = "Long Name"
	ColDivision    = "Div"
	ColOJSFilename = "OJS_FileName"
	ColAdvancing   = "ADV"

	ColTeamNumber = "Team #"
	ColTeamName   = "Team Name"

	TournamentsSheet = "Tournaments"
	TournamentsTable = "Tournaments"

	TeamListSheet = "Team and Program Information"
	TeamListTable = "OfficialTeamList"

	TeamInfoSheet = "Team and Program Information"
)

// Entry is one tournament division row from the season list workbook.
type Entry struct {
	ShortName   string
	LongName    string
	Division    string
	OJSFilename string
	Advancing   int
	Teams       []Roster
}

// Roster is one team assigned to a tournament division.
type Roster struct {
	Number int
	Name   string
}

// Builder creates per-tournament folders from the season list workbook:
// one folder per tournament short name, holding a copy of the OJS template
// per division plus the auxiliary files.
type Builder struct {
	Season *config.Season
	Log    zerolog.Logger
}

// Build processes every tournament in the season list. A failure in one
// tournament is logged and does not abort its siblings.
func (b *Builder) Build() error {
	entries, err := b.readSeasonList()
	if err != nil {
		return err
	}
	failed := 0
	for _, entry := range entries {
		if err := b.buildOne(entry); err != nil {
			b.Log.Error().Err(err).Str("tournament", entry.ShortName).Msg("tournament folder build failed")
			failed++
			continue
		}
		b.Log.Info().Str("tournament", entry.ShortName).Str("ojs", entry.OJSFilename).Msg("tournament folder ready")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tournament folders failed to build", failed, len(entries))
	}
	return nil
}

func (b *Builder) readSeasonList() ([]Entry, error) {
	w, err := ojs.Open(b.Season.TournamentList)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	tournaments, err := w.Table(TournamentsSheet, TournamentsTable)
	if err != nil {
		return nil, err
	}
	if err := tournaments.Require(ColShortName, ColLongName, ColDivision, ColOJSFilename, ColAdvancing); err != nil {
		return nil, err
	}
	teamList, err := w.Table(TeamListSheet, TeamListTable)
	if err != nil {
		return nil, err
	}
	if err := teamList.Require(ColTeamNumber, ColTeamName, ColShortName, ColDivision); err != nil {
		return nil, err
	}

	var entries []Entry
	for row := range tournaments.Rows {
		shortName, err := tournaments.Cell(row, ColShortName)
		if err != nil {
			return nil, err
		}
		if shortName.IsEmpty() {
			continue
		}
		longName, _ := tournaments.Cell(row, ColLongName)
		division, _ := tournaments.Cell(row, ColDivision)
		filename, err := tournaments.Cell(row, ColOJSFilename)
		if err != nil {
			return nil, err
		}
		if filename.IsEmpty() {
			return nil, fmt.Errorf("tournament %q has no OJS filename in the season list", shortName.String())
		}
		advancing, _ := tournaments.Cell(row, ColAdvancing)
		adv, _ := advancing.Int()

		entry := Entry{
			ShortName:   shortName.String(),
			LongName:    longName.String(),
			Division:    division.String(),
			OJSFilename: filename.String(),
			Advancing:   adv,
		}
		entry.Teams, err = rosterFor(teamList, entry.ShortName, entry.Division)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func rosterFor(teamList *ojs.TableData, shortName, division string) ([]Roster, error) {
	var roster []Roster
	for row := range teamList.Rows {
		tourn, err := teamList.Cell(row, ColShortName)
		if err != nil {
			return nil, err
		}
		div, _ := teamList.Cell(row, ColDivision)
		if tourn.String() != shortName || div.String() != division {
			continue
		}
		number, _ := teamList.Cell(row, ColTeamNumber)
		name, _ := teamList.Cell(row, ColTeamName)
		n, ok := number.Int()
		if !ok {
			return nil, fmt.Errorf("team number %q for tournament %q is not a whole number", number.String(), shortName)
		}
		roster = append(roster, Roster{Number: n, Name: name.String()})
	}
	return roster, nil
}

func (b *Builder) buildOne(entry Entry) error {
	folder := filepath.Join(b.Season.TournamentFolder, entry.ShortName)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("could not create tournament folder %s: %w", folder, err)
	}

	for _, extra := range b.Season.ExtraFiles {
		if err := copyFile(extra, filepath.Join(folder, filepath.Base(extra))); err != nil {
			return err
		}
	}

	ojsPath := filepath.Join(folder, entry.OJSFilename)
	if err := copyFile(b.Season.TemplateOJS, ojsPath); err != nil {
		return err
	}
	return b.populate(ojsPath, entry)
}

// populate writes the roster and tournament facts into a freshly copied
// OJS template.
func (b *Builder) populate(path string, entry Entry) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("could not open copied OJS %s: %w", path, err)
	}
	defer f.Close()

	for i, team := range entry.Teams {
		row := i + 2
		if err := f.SetCellValue(TeamInfoSheet, fmt.Sprintf("A%d", row), team.Number); err != nil {
			return err
		}
		if err := f.SetCellValue(TeamInfoSheet, fmt.Sprintf("B%d", row), team.Name); err != nil {
			return err
		}
	}

	metaValues := map[string]any{
		"Tournament Long Name":  entry.LongName,
		"Tournament Short Name": entry.ShortName,
		"Advancing":             entry.Advancing,
		"Completed Script File": "closing_ceremony.html",
	}
	rows, err := f.GetRows(ojs.MetaSheet)
	if err != nil {
		return fmt.Errorf("copied OJS %s has no Meta sheet: %w", path, err)
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if value, ok := metaValues[row[0]]; ok {
			if err := f.SetCellValue(ojs.MetaSheet, fmt.Sprintf("B%d", i+1), value); err != nil {
				return err
			}
		}
	}
	return f.Save()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("source file not found: %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("could not copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
