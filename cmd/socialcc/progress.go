package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spboyer/socialcc/internal/pipeline"
	"github.com/spboyer/socialcc/internal/spinner"
	"golang.org/x/term"
)

// progressDisplay shows a spinner for the stage currently waiting on
// remote calls. It only draws on a terminal.
type progressDisplay struct {
	w       io.Writer
	spinner *spinner.Spinner
}

func newProgressDisplay(w io.Writer) *progressDisplay {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return &progressDisplay{w: w}
}

// Listener returns the pipeline hook, or nil when there is nothing to draw.
func (d *progressDisplay) Listener() pipeline.ProgressListener {
	if d == nil {
		return nil
	}
	return d.onEvent
}

func (d *progressDisplay) onEvent(e pipeline.ProgressEvent) {
	label := e.Stage
	if e.Detail != "" {
		label += " " + e.Detail
	}

	switch e.EventType {
	case pipeline.EventStageStart:
		if e.Stage != pipeline.StageDialogue && e.Stage != pipeline.StageJudge {
			return
		}
		d.Stop()
		d.spinner = spinner.Start(d.w, fmt.Sprintf("%s: starting", label))
	case pipeline.EventRowComplete:
		if d.spinner != nil {
			d.spinner.Update(fmt.Sprintf("%s: %d/%d (Data_ID %s)", label, e.Row, e.Total, e.DataID))
		}
	case pipeline.EventStageComplete:
		d.Stop()
	}
}

// Stop clears any running spinner.
func (d *progressDisplay) Stop() {
	if d == nil || d.spinner == nil {
		return
	}
	d.spinner.Stop()
	d.spinner = nil
}
