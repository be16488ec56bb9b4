package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/poolsim/internal/kinetics"
)

func panelTrace() *kinetics.Trace {
	tr := kinetics.NewTrace(4)
	for i := 0; i < 4; i++ {
		t := float64(i) * 0.1
		tr.Append(kinetics.Record{
			Time:  t,
			State: kinetics.State{9.0 - t, 6.0 + t},
			Aux: kinetics.Snapshot{
				Concentrations: []float64{(9.0 - t) / 20, (6.0 + t) / 25},
				Fluxes:         []float64{10.0 + t, 5.0, 3.0 - t},
			},
		})
	}
	return tr
}

func TestRenderPanels(t *testing.T) {
	out := RenderPanels(panelTrace(), []string{"A", "B"}, []string{"Fab", "Fba", "Fbo"}, 40, 5)

	for _, caption := range []string{
		"pools: A, B, total",
		"concentrations: A, B",
		"fluxes: Fab, Fba, Fbo",
	} {
		if !strings.Contains(out, caption) {
			t.Errorf("missing caption %q", caption)
		}
	}

	panels := strings.Split(out, "\n\n")
	if len(panels) != 3 {
		t.Errorf("expected 3 panels, got %d", len(panels))
	}
}

func TestRenderPanelsFallbackLabels(t *testing.T) {
	out := RenderPanels(panelTrace(), nil, nil, 40, 5)

	if !strings.Contains(out, "pools: P0, P1, total") {
		t.Error("missing positional pool caption")
	}
	if !strings.Contains(out, "fluxes: F0, F1, F2") {
		t.Error("missing positional flux caption")
	}
}

func TestRenderPanelsEmptyTrace(t *testing.T) {
	if out := RenderPanels(kinetics.NewTrace(0), nil, nil, 40, 5); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if out := RenderPanels(nil, nil, nil, 40, 5); out != "" {
		t.Errorf("expected empty output for nil trace, got %q", out)
	}
}
