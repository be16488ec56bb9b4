package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/poolsim/internal/kinetics"
)

const clearScreen = "\033[2J\033[H"

// LiveRenderer redraws the full panel stack after each committed step.
// An optional per-step delay paces the simulation to a watchable speed;
// frames are dropped when steps arrive faster than the frame rate.
type LiveRenderer struct {
	w         io.Writer
	poolNames []string
	fluxNames []string
	frameRate int
	delay     time.Duration
	lastFrame time.Time
}

func NewLiveRenderer(w io.Writer, poolNames, fluxNames []string, frameRate int, delay time.Duration) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		w:         w,
		poolNames: poolNames,
		fluxNames: fluxNames,
		frameRate: frameRate,
		delay:     delay,
	}
}

func (r *LiveRenderer) OnStep(rec kinetics.Record, tr *kinetics.Trace) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	fmt.Fprint(r.w, clearScreen)
	fmt.Fprintln(r.w, RenderPanels(tr, r.poolNames, r.fluxNames, defaultPanelWidth, defaultPanelHeight))
	fmt.Fprintln(r.w, r.statusLine(rec))
}

func (r *LiveRenderer) statusLine(rec kinetics.Record) string {
	pools := poolLabels(r.poolNames, len(rec.State))
	parts := make([]string, 0, 1+len(rec.State))
	parts = append(parts, fmt.Sprintf("t=%.2f", rec.Time))
	for i, v := range rec.State {
		parts = append(parts, fmt.Sprintf("%s=%.4f", pools[i], v))
	}
	return strings.Join(parts, "  ")
}
