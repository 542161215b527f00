// Package progress draws a job counter on stderr while a run is in flight.
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar counts finished jobs. A nil *Bar is valid and does nothing, so callers
// need not check whether progress was requested.
type Bar struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	total int
}

// New starts a bar of total jobs writing to w.
func New(w io.Writer, label string, total int) *Bar {
	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.AverageETA(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return &Bar{p: p, bar: bar, total: total}
}

// Increment records one finished job. Safe for concurrent use.
func (b *Bar) Increment() {
	if b == nil {
		return
	}
	b.bar.Increment()
}

// Finish stops the bar and waits for the final frame to be written. A bar
// that did not reach its total (cancellation, ok=false) is aborted in place.
func (b *Bar) Finish(ok bool) {
	if b == nil {
		return
	}
	if ok && b.total <= 0 {
		b.bar.SetTotal(-1, true)
	} else {
		// no-op once the bar has completed
		b.bar.Abort(false)
	}
	b.p.Wait()
}
