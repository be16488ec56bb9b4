package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// StepLogger prints one comma-separated row per committed step: time to
// two decimals, pool amounts, concentrations, and fluxes to four. A header
// line naming the fields precedes the first row.
type StepLogger struct {
	w           io.Writer
	poolNames   []string
	fluxNames   []string
	wroteHeader bool
}

func NewStepLogger(w io.Writer, poolNames, fluxNames []string) *StepLogger {
	return &StepLogger{w: w, poolNames: poolNames, fluxNames: fluxNames}
}

func (l *StepLogger) header(rec kinetics.Record) string {
	pools := poolLabels(l.poolNames, len(rec.State))
	fluxes := fluxLabels(l.fluxNames, len(rec.Aux.Fluxes))

	cols := make([]string, 0, 1+2*len(pools)+len(fluxes))
	cols = append(cols, "Time")
	for _, name := range pools {
		cols = append(cols, "Pool"+name)
	}
	for _, name := range pools {
		cols = append(cols, "Con"+name)
	}
	cols = append(cols, fluxes...)
	return strings.Join(cols, ", ")
}

func (l *StepLogger) OnStep(rec kinetics.Record, _ *kinetics.Trace) {
	if !l.wroteHeader {
		fmt.Fprintln(l.w, l.header(rec))
		l.wroteHeader = true
	}

	fields := make([]string, 0, 1+len(rec.State)+len(rec.Aux.Concentrations)+len(rec.Aux.Fluxes))
	fields = append(fields, fmt.Sprintf("%.2f", rec.Time))
	for _, v := range rec.State {
		fields = append(fields, fmt.Sprintf("%.4f", v))
	}
	for _, v := range rec.Aux.Concentrations {
		fields = append(fields, fmt.Sprintf("%.4f", v))
	}
	for _, v := range rec.Aux.Fluxes {
		fields = append(fields, fmt.Sprintf("%.4f", v))
	}
	fmt.Fprintln(l.w, strings.Join(fields, ", "))
}
