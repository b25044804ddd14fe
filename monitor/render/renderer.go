package render

import (
	"fmt"

	"linkscope/monitor/mode"
)

// Renderer paints the view selected by the current mode.
type Renderer struct {
	canvas Canvas
	views  [mode.Count]View
}

func NewRenderer(c Canvas) *Renderer {
	return &Renderer{
		canvas: c,
		views: [mode.Count]View{
			mode.Graph:   Graph,
			mode.Clients: Clients,
			mode.Info:    Info,
		},
	}
}

func (r *Renderer) Canvas() Canvas { return r.canvas }

// Draw redraws the whole screen for m and presents it.
func (r *Renderer) Draw(m mode.Mode, f *Frame) error {
	if m >= mode.Count {
		return fmt.Errorf("render: unknown mode %d", m)
	}
	r.views[m](r.canvas, f)
	if err := r.canvas.Present(); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	return nil
}

// DrawWaiting paints the pre-telemetry screen.
func (r *Renderer) DrawWaiting() error {
	Waiting(r.canvas)
	return r.canvas.Present()
}
