package rules

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrGibbage/OJS-Script-maker-NG/config"
)

func validateFixtures(t *testing.T, fixtures ...fixture) (*Report, []*Division) {
	t.Helper()
	dir := t.TempDir()
	var sources []Source
	for i, fx := range fixtures {
		sources = append(sources, Source{Path: writeOJS(t, dir, fx), Division: i + 1})
	}
	return NewAggregator(config.DefaultRules(), zerolog.Nop()).Validate(sources)
}

func TestValidateCleanRun(t *testing.T) {
	report, divisions := validateFixtures(t, defaultFixture())
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, Clean, report.Status())
	require.Len(t, divisions, 1)
	assert.Len(t, divisions[0].Teams, 6)
	assert.NotEmpty(t, report.RunID)
}

func TestValidateBlockedOnAdvancingQuota(t *testing.T) {
	// Quota of two, three teams marked to advance.
	fx := defaultFixture()
	fx.teams[3].advance = "Yes"
	report, _ := validateFixtures(t, fx)

	assert.Equal(t, Blocked, report.Status())
	var found bool
	for _, o := range report.Outcomes {
		if o.Rule == RuleAdvancing && o.Severity == Fatal {
			assert.Contains(t, o.Message, "selected more advancing teams than allowed")
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateWarningsStillProceed(t *testing.T) {
	fx := defaultFixture()
	fx.teams[1].advance = "" // one advancer short of the quota
	report, divisions := validateFixtures(t, fx)

	assert.Equal(t, ProceedWithWarnings, report.Status())
	require.Len(t, divisions, 1)
	for _, o := range report.Outcomes {
		assert.Equal(t, Warning, o.Severity)
	}
}

func TestValidateMissingTableBlocksOnlyThatWorkbook(t *testing.T) {
	broken := defaultFixture()
	broken.name = "2026-vadc-fll-challenge-riverbend-ojs-r1-div1.xlsm"
	broken.skipRankings = true
	sibling := defaultFixture()
	sibling.name = "2026-vadc-fll-challenge-riverbend-ojs-r1-div2.xlsm"

	report, divisions := validateFixtures(t, broken, sibling)

	assert.Equal(t, Blocked, report.Status())
	// The broken workbook contributes exactly one structural outcome and
	// no rule evaluator ran against it; the clean sibling was still fully
	// extracted and evaluated.
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, RuleStructure, report.Outcomes[0].Rule)
	assert.Equal(t, Fatal, report.Outcomes[0].Severity)
	assert.Equal(t, 1, report.Outcomes[0].Division)
	require.Len(t, divisions, 1)
	assert.Equal(t, 2, divisions[0].Number)
}

func TestValidateSchemaMismatchIsFatalOutcome(t *testing.T) {
	fx := defaultFixture()
	fx.awardHeader = "Prize"
	report, divisions := validateFixtures(t, fx)

	assert.Equal(t, Blocked, report.Status())
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, RuleStructure, report.Outcomes[0].Rule)
	assert.Contains(t, report.Outcomes[0].Message, "Award")
	assert.Empty(t, divisions)
}

func TestValidateTwoCleanDivisions(t *testing.T) {
	div1 := defaultFixture()
	div1.name = "2026-vadc-fll-challenge-riverbend-ojs-r1-div1.xlsm"
	div2 := defaultFixture()
	div2.name = "2026-vadc-fll-challenge-riverbend-ojs-r1-div2.xlsm"
	// One judges award per division against a tournament-wide quota of
	// two keeps the union clean.
	div1.meta["Judges"] = 2
	div2.meta["Judges"] = 2
	div2.teams[4].award = "Judges Award 2"

	report, divisions := validateFixtures(t, div1, div2)
	assert.Equal(t, Clean, report.Status())
	assert.Len(t, divisions, 2)
}
