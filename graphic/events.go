package graphic

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/noriah/levelscope/viewport"
)

const (
	// WheelStepY is the amplitude zoom change per wheel notch.
	WheelStepY = 0.25

	// PanStep is how many columns an arrow key pans.
	PanStep = 8
)

// Controls is what terminal input can do to the scope. The methods are only
// ever called from closures delivered by Poll, on the receiving goroutine.
type Controls interface {
	OnScroll(delta float64, mod viewport.Modifier)
	Pan(pixels float64)
	Follow()
	ToggleStyle()
	Snapshot()
	Resize(width, height int)
}

// Poll reads terminal events until ctx is done or the user quits, and sends
// one closure per meaningful event on out. The closures touch the display
// and ctl, so they must run on the goroutine that draws.
//
// Poll returns when the user asked to quit or ctx ended.
func (d *Display) Poll(ctx context.Context, ctl Controls, out chan<- func()) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}

		fn, quit := d.translate(ev, ctl)
		if quit {
			return
		}

		if fn == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case out <- fn:
		}
	}
}

// Interrupt wakes a blocked Poll so it can notice a cancelled context.
func (d *Display) Interrupt() {
	d.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (d *Display) translate(ev tcell.Event, ctl Controls) (func(), bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev, ctl)

	case *tcell.EventMouse:
		return translateMouse(ev, ctl), false

	case *tcell.EventResize:
		cols, rows := ev.Size()
		return func() {
			ctl.Resize(d.resize(cols, rows))
		}, false
	}

	return nil, false
}

func translateKey(ev *tcell.EventKey, ctl Controls) (func(), bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return nil, true

	case tcell.KeyUp:
		return func() { ctl.OnScroll(WheelStepY, viewport.ModZoomY) }, false

	case tcell.KeyDown:
		return func() { ctl.OnScroll(-WheelStepY, viewport.ModZoomY) }, false

	case tcell.KeyLeft:
		return func() { ctl.Pan(PanStep) }, false

	case tcell.KeyRight:
		return func() { ctl.Pan(-PanStep) }, false

	case tcell.KeyEnd:
		return ctl.Follow, false

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return nil, true
		case '+', '=':
			return func() { ctl.OnScroll(1, viewport.ModNone) }, false
		case '-', '_':
			return func() { ctl.OnScroll(-1, viewport.ModNone) }, false
		case 'f', 'F':
			return ctl.Follow, false
		case 'e', 'E':
			return ctl.ToggleStyle, false
		case 's', 'S':
			return ctl.Snapshot, false
		}
	}

	return nil, false
}

func translateMouse(ev *tcell.EventMouse, ctl Controls) func() {
	// Terminals that keep ctrl+wheel for font zoom usually pass alt through.
	mod := viewport.ModNone
	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		mod = viewport.ModZoomY
	}

	step := 1.0
	if mod == viewport.ModZoomY {
		step = WheelStepY
	}

	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		return func() { ctl.OnScroll(step, mod) }
	case btn&tcell.WheelDown != 0:
		return func() { ctl.OnScroll(-step, mod) }
	case btn&tcell.WheelLeft != 0:
		return func() { ctl.Pan(PanStep) }
	case btn&tcell.WheelRight != 0:
		return func() { ctl.Pan(-PanStep) }
	}

	return nil
}
