package progress

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/minio/pkg/console"
	"golang.org/x/term"
)

// Tracker advances once per written file
type Tracker interface {
	Increment()
	Finish()
}

// Factory starts a tracker for a pass over total files
type Factory func(total int, caption string) Tracker

// ProgressBar wrapper structure
type ProgressBar struct {
	*pb.ProgressBar
}

// NewProgressBar - instantiate a progress bar writing to out.
func NewProgressBar(total int64, out io.Writer) *ProgressBar {
	// Progress bar specific theme customization.
	console.SetColor("Bar", color.New(color.FgGreen, color.Bold))

	bar := pb.New64(total)
	bar.SetWriter(out)
	bar.SetRefreshRate(time.Millisecond * 125)
	bar.SetTemplateString(`{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{speed . }}`)
	bar.Start()

	return &ProgressBar{ProgressBar: bar}
}

// SetCaption sets the caption of the progress bar.
func (p *ProgressBar) SetCaption(caption string) *ProgressBar {
	p.ProgressBar.Set("prefix", caption)
	return p
}

// Increment advances the bar by one file
func (p *ProgressBar) Increment() {
	p.ProgressBar.Increment()
}

// Finish stops refreshing and draws the final state
func (p *ProgressBar) Finish() {
	p.ProgressBar.Finish()
}

// Terminal returns a factory drawing bars on stderr, or nil when stderr is
// not a terminal.
func Terminal() Factory {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return func(total int, caption string) Tracker {
		return NewProgressBar(int64(total), os.Stderr).SetCaption(caption)
	}
}

// Nop is a tracker that draws nothing
type Nop struct{}

func (Nop) Increment() {}
func (Nop) Finish()    {}
