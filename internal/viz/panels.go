package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/poolsim/internal/kinetics"
)

const (
	defaultPanelWidth  = 72
	defaultPanelHeight = 8
)

// RenderPanels draws the three time-synchronized charts of a run: pool
// amounts with their total, concentrations, and fluxes.
func RenderPanels(tr *kinetics.Trace, poolNames, fluxNames []string, width, height int) string {
	if tr == nil || tr.Len() == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultPanelWidth
	}
	if height <= 0 {
		height = defaultPanelHeight
	}

	recs := tr.Records()
	nPools := len(recs[0].State)
	nFluxes := len(recs[0].Aux.Fluxes)
	pools := poolLabels(poolNames, nPools)
	fluxes := fluxLabels(fluxNames, nFluxes)

	amounts := make([][]float64, nPools+1)
	for i := range amounts {
		amounts[i] = make([]float64, len(recs))
	}
	cons := make([][]float64, nPools)
	for i := range cons {
		cons[i] = make([]float64, len(recs))
	}
	rates := make([][]float64, nFluxes)
	for i := range rates {
		rates[i] = make([]float64, len(recs))
	}

	for k, rec := range recs {
		total := 0.0
		for i, v := range rec.State {
			amounts[i][k] = v
			total += v
		}
		amounts[nPools][k] = total
		for i, v := range rec.Aux.Concentrations {
			cons[i][k] = v
		}
		for i, v := range rec.Aux.Fluxes {
			rates[i][k] = v
		}
	}

	panels := []string{
		asciigraph.PlotMany(amounts,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption("pools: "+strings.Join(pools, ", ")+", total"),
		),
		asciigraph.PlotMany(cons,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption("concentrations: "+strings.Join(pools, ", ")),
		),
		asciigraph.PlotMany(rates,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption("fluxes: "+strings.Join(fluxes, ", ")),
		),
	}

	return strings.Join(panels, "\n\n")
}
