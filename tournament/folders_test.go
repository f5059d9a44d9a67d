package tournament

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
)

func writeSeasonList(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(TournamentsSheet)
	require.NoError(t, err)
	for col, v := range []string{ColShortName, ColLongName, ColDivision, ColOJSFilename, ColAdvancing} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(TournamentsSheet, cell, v))
	}
	rows := [][]any{
		{"riverbend", "Riverbend Qualifier", "div1", "2026-vadc-fll-challenge-riverbend-ojs-r1-div1.xlsm", 2},
		{"harbor-view", "Harbor View Qualifier", "div1", "2026-vadc-fll-challenge-harbor-view-ojs-r1-div1.xlsm", 3},
	}
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(TournamentsSheet, cell, v))
		}
	}
	require.NoError(t, f.AddTable(TournamentsSheet, &excelize.Table{Range: "A1:E3", Name: TournamentsTable}))

	_, err = f.NewSheet(TeamListSheet)
	require.NoError(t, err)
	for col, v := range []string{ColTeamNumber, ColTeamName, ColShortName, ColDivision} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(TeamListSheet, cell, v))
	}
	teams := [][]any{
		{101, "Gear Grinders", "riverbend", "div1"},
		{102, "Brick Storm", "riverbend", "div1"},
		{201, "Torque Masters", "harbor-view", "div1"},
	}
	for i, row := range teams {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(TeamListSheet, cell, v))
		}
	}
	require.NoError(t, f.AddTable(TeamListSheet, &excelize.Table{Range: "A1:D4", Name: TeamListTable}))

	path := filepath.Join(dir, "tournaments.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeTemplateOJS(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(TeamInfoSheet)
	require.NoError(t, err)
	_, err = f.NewSheet("Meta")
	require.NoError(t, err)
	for i, key := range []string{"Key", "Tournament Long Name", "Tournament Short Name", "Advancing", "Completed Script File"} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Meta", cell, key))
	}
	require.NoError(t, f.SetCellValue("Meta", "B1", "Value"))

	path := filepath.Join(dir, "ojs-template.xlsm")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestBuilderBuildsTournamentFolders(t *testing.T) {
	dir := t.TempDir()
	listPath := writeSeasonList(t, dir)
	templatePath := writeTemplateOJS(t, dir)
	extraPath := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(extraPath, []byte("logo.png\n"), 0o644))

	season := &config.Season{
		TournamentFolder: filepath.Join(dir, "tournaments"),
		TournamentList:   listPath,
		TemplateOJS:      templatePath,
		ExtraFiles:       []string{extraPath},
	}
	b := &Builder{Season: season, Log: zerolog.Nop()}
	require.NoError(t, b.Build())

	folder := filepath.Join(season.TournamentFolder, "riverbend")
	assert.FileExists(t, filepath.Join(folder, ManifestName))
	ojsPath := filepath.Join(folder, "2026-vadc-fll-challenge-riverbend-ojs-r1-div1.xlsm")
	require.FileExists(t, ojsPath)

	f, err := excelize.OpenFile(ojsPath)
	require.NoError(t, err)
	defer f.Close()

	number, err := f.GetCellValue(TeamInfoSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "101", number)
	name, err := f.GetCellValue(TeamInfoSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Brick Storm", name)

	longName, err := f.GetCellValue("Meta", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Riverbend Qualifier", longName)
	script, err := f.GetCellValue("Meta", "B5")
	require.NoError(t, err)
	assert.Equal(t, "closing_ceremony.html", script)

	// Second tournament built from the same pass.
	assert.FileExists(t, filepath.Join(season.TournamentFolder, "harbor-view",
		"2026-vadc-fll-challenge-harbor-view-ojs-r1-div1.xlsm"))
}

func TestBuilderMissingSeasonList(t *testing.T) {
	season := &config.Season{
		TournamentFolder: t.TempDir(),
		TournamentList:   filepath.Join(t.TempDir(), "absent.xlsx"),
		TemplateOJS:      "unused.xlsm",
	}
	b := &Builder{Season: season, Log: zerolog.Nop()}
	assert.Error(t, b.Build())
}

func TestBuilderReportsFailedTournament(t *testing.T) {
	dir := t.TempDir()
	listPath := writeSeasonList(t, dir)

	season := &config.Season{
		TournamentFolder: filepath.Join(dir, "tournaments"),
		TournamentList:   listPath,
		TemplateOJS:      filepath.Join(dir, "absent-template.xlsm"),
	}
	b := &Builder{Season: season, Log: zerolog.Nop()}
	err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 tournament folders failed")
}
