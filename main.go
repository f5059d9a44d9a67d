package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/MrGibbage/OJS-Script-maker-NG/ceremony"
	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/prompts"
	"github.com/MrGibbage/OJS-Script-maker-NG/rules"
	"github.com/MrGibbage/OJS-Script-maker-NG/tournament"
	"github.com/MrGibbage/OJS-Script-maker-NG/writers"
)

const (
	dirFlag      = "dir"
	yesFlag      = "yes"
	seasonFlag   = "season"
	templateFlag = "template"
	dumpFlag     = "data-dump"
	verboseFlag  = "verbose"
)

var build string
var semanticVersion = "v1.0.0" + build

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func main() {
	app := &cli.App{
		Name:    "ojs-script-maker",
		Usage:   "Build, validate, and turn FLL OJS judging workbooks into closing-ceremony scripts",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Check a tournament folder's setup: manifest files and OJS filenames",
				Flags: []cli.Flag{tournamentDirFlag()},
				Action: func(cCtx *cli.Context) error {
					log := newLogger(cCtx.Bool(verboseFlag))
					return runCheck(cCtx.String(dirFlag), log)
				},
			},
			{
				Name:  "validate",
				Usage: "Validate a tournament's OJS workbook(s) against the scoring and allocation rules",
				Flags: []cli.Flag{tournamentDirFlag()},
				Action: func(cCtx *cli.Context) error {
					log := newLogger(cCtx.Bool(verboseFlag))
					report, _, err := runValidate(cCtx.String(dirFlag), log)
					if err != nil {
						return err
					}
					printReport(report)
					if report.Status() == rules.Blocked {
						return cli.Exit("validation failed, fix the fatal problems above before building the script", 1)
					}
					return nil
				},
			},
			{
				Name:  "generate",
				Usage: "Validate, then render the closing-ceremony script for a tournament",
				Flags: []cli.Flag{
					tournamentDirFlag(),
					&cli.BoolFlag{
						Name:    yesFlag,
						Aliases: []string{"y"},
						Usage:   "Continue past warnings without prompting",
					},
					&cli.StringFlag{
						Name:  templateFlag,
						Value: "script_template.html.tmpl",
						Usage: "Ceremony script template filename inside the tournament folder",
					},
					&cli.BoolFlag{
						Name:  dumpFlag,
						Usage: "Also write the collected ceremony data as YAML next to the script",
					},
				},
				Action: func(cCtx *cli.Context) error {
					log := newLogger(cCtx.Bool(verboseFlag))
					return runGenerate(cCtx.String(dirFlag), cCtx.String(templateFlag),
						cCtx.Bool(yesFlag), cCtx.Bool(dumpFlag), log)
				},
			},
			{
				Name:  "build-folders",
				Usage: "Create per-tournament folders from the season tournament list",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    seasonFlag,
						Aliases: []string{"s"},
						Value:   "season.toml",
						Usage:   "Path to the season configuration file",
					},
				},
				Action: func(cCtx *cli.Context) error {
					log := newLogger(cCtx.Bool(verboseFlag))
					season, err := config.LoadSeason(cCtx.String(seasonFlag))
					if err != nil {
						return err
					}
					builder := &tournament.Builder{Season: season, Log: log}
					return builder.Build()
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tournamentDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    dirFlag,
		Aliases: []string{"d"},
		Value:   ".",
		Usage:   "Tournament folder holding the OJS workbook(s)",
	}
}

func runCheck(dir string, log zerolog.Logger) error {
	if err := tournament.CheckManifest(dir); err != nil {
		return err
	}
	sources, err := tournament.DiscoverOJS(dir, config.DefaultRules())
	if err != nil {
		return err
	}
	for _, src := range sources {
		log.Info().Str("path", src.Path).Int("division", src.Division).Msg("OJS workbook found")
	}
	log.Info().Msg("tournament folder looks good")
	return nil
}

func runValidate(dir string, log zerolog.Logger) (*rules.Report, []*rules.Division, error) {
	if err := tournament.CheckManifest(dir); err != nil {
		return nil, nil, err
	}
	r := config.DefaultRules()
	sources, err := tournament.DiscoverOJS(dir, r)
	if err != nil {
		return nil, nil, err
	}
	report, divisions := rules.NewAggregator(r, log).Validate(sources)
	return report, divisions, nil
}

func runGenerate(dir, templateName string, skipPrompts, dumpData bool, log zerolog.Logger) error {
	report, divisions, err := runValidate(dir, log)
	if err != nil {
		return err
	}
	printReport(report)
	switch report.Status() {
	case rules.Blocked:
		return cli.Exit("validation failed, fix the fatal problems above before building the script", 1)
	case rules.ProceedWithWarnings:
		if !skipPrompts {
			var warnings []string
			for _, o := range report.Outcomes {
				warnings = append(warnings, o.String())
			}
			if !prompts.ContinueOnWarnings(warnings) {
				return cli.Exit("stopped building the script, check that the OJS files are filled out correctly and try again", 0)
			}
		}
	}

	r := config.DefaultRules()
	data, err := ceremony.Collect(divisions, r)
	if err != nil {
		return err
	}

	scriptPath := filepath.Join(dir, data.ScriptFile)
	out := writers.NewLazyFileWriter(scriptPath, 0o644)
	if err := ceremony.Render(out, data, r, filepath.Join(dir, templateName)); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.Info().Str("script", scriptPath).Msg("ceremony script saved, it is in the same folder as the OJS files")

	if dumpData {
		dumpPath := filepath.Join(dir, "ceremony_data.yaml")
		dump := writers.NewLazyFileWriter(dumpPath, 0o644)
		if err := ceremony.WriteYAML(dump, data); err != nil {
			dump.Close()
			return err
		}
		if err := dump.Close(); err != nil {
			return err
		}
		log.Info().Str("data", dumpPath).Msg("ceremony data dump saved")
	}
	return nil
}

func printReport(report *rules.Report) {
	for _, o := range report.Outcomes {
		fmt.Println(o.String())
	}
	fmt.Printf("Validation status: %s\n", report.Status())
}
