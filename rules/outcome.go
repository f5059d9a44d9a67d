// Package rules is the validation core: stateless evaluators over extracted
// workbook records, and the aggregator that runs them all and decides
// whether ceremony generation may proceed.
package rules

import (
	"fmt"
	"strings"
)

type Severity int

const (
	Warning Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "FATAL"
	}
	return "WARNING"
}

// Outcome is one validation finding. Evaluators return these instead of
// errors; a clean evaluator returns none at all.
type Outcome struct {
	Severity Severity
	Rule     string
	Division int
	Message  string
	// Cells are offending A1-style refs, Teams offending team numbers.
	// Either may be empty depending on the rule.
	Cells []string
	Teams []int
}

func (o Outcome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", o.Severity, o.Rule)
	if o.Division > 0 {
		fmt.Fprintf(&b, " (div %d)", o.Division)
	}
	fmt.Fprintf(&b, ": %s", o.Message)
	if len(o.Cells) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(o.Cells, ", "))
	}
	if len(o.Teams) > 0 {
		teams := make([]string, len(o.Teams))
		for i, t := range o.Teams {
			teams[i] = fmt.Sprintf("%d", t)
		}
		fmt.Fprintf(&b, " [teams %s]", strings.Join(teams, ", "))
	}
	return b.String()
}

type Status int

const (
	Clean Status = iota
	ProceedWithWarnings
	Blocked
)

func (s Status) String() string {
	switch s {
	case Clean:
		return "CLEAN"
	case ProceedWithWarnings:
		return "PROCEED_WITH_WARNINGS"
	case Blocked:
		return "BLOCKED"
	}
	return "unknown"
}

// Report is the ordered outcome sequence for one validation run.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

func (r *Report) Add(outcomes ...Outcome) {
	r.Outcomes = append(r.Outcomes, outcomes...)
}

// Status classifies the run: any Fatal blocks generation, warnings alone
// allow it, and an empty report is clean.
func (r *Report) Status() Status {
	status := Clean
	for _, o := range r.Outcomes {
		if o.Severity == Fatal {
			return Blocked
		}
		status = ProceedWithWarnings
	}
	return status
}
