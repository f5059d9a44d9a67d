package rules

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
)

// Source is one OJS workbook to validate, with the division parsed from
// its filename.
type Source struct {
	Path     string
	Division int
}

// Aggregator runs the full evaluator set over a tournament's workbooks.
// It never short-circuits: every evaluator runs every time so one pass
// surfaces every problem at once.
type Aggregator struct {
	rules config.Rules
	log   zerolog.Logger
}

func NewAggregator(r config.Rules, log zerolog.Logger) *Aggregator {
	return &Aggregator{rules: r, log: log}
}

// Validate extracts and evaluates every source workbook, unioning the
// outcomes into one report. A structural or schema failure in one workbook
// becomes a fatal outcome for that workbook and skips its evaluators, but
// sibling workbooks are still processed. The returned divisions hold the
// successfully extracted records for the data collector.
func (a *Aggregator) Validate(sources []Source) (*Report, []*Division) {
	report := &Report{RunID: uuid.NewString()}
	log := a.log.With().Str("run_id", report.RunID).Logger()

	var divisions []*Division
	for _, src := range sources {
		log.Info().Str("path", src.Path).Int("division", src.Division).Msg("validating OJS workbook")
		d, err := a.extract(src)
		if err != nil {
			report.Add(Outcome{
				Severity: Fatal,
				Rule:     RuleStructure,
				Division: src.Division,
				Message:  err.Error(),
			})
			continue
		}
		divisions = append(divisions, d)

		report.Add(EvaluateRobotGame(d, a.rules)...)
		report.Add(EvaluateTeamIdentity(d)...)
		report.Add(EvaluateJudgedCategories(d)...)
		report.Add(EvaluateAwardDuplicates(d)...)
		report.Add(EvaluateMissingAwards(d, a.rules)...)
		report.Add(EvaluateAdvancing(d, a.rules)...)
	}
	report.Add(EvaluateJudgesQuota(divisions, a.rules)...)

	for _, o := range report.Outcomes {
		event := log.Warn()
		if o.Severity == Fatal {
			event = log.Error()
		}
		event.Str("rule", o.Rule).Int("division", o.Division).Msg(o.Message)
	}
	log.Info().Stringer("status", report.Status()).Int("outcomes", len(report.Outcomes)).Msg("validation finished")
	return report, divisions
}

func (a *Aggregator) extract(src Source) (*Division, error) {
	w, err := ojs.Open(src.Path)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return Extract(w, src.Division, a.rules)
}
