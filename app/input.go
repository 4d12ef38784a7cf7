package app

import (
	"github.com/gdamore/tcell/v2"
)

// Action is what the run loop should do after an event
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// HandleEvent translates one terminal event into page operations
// Mouse motion is pointer movement, a button-1 press is a click, focus loss and
// gain are the pointer leaving and entering the page
func (p *Page) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.handleKey(ev)

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := p.toPixels(col, row)
		p.HandlePointerMove(x, y)

		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !p.button1 {
			p.HandleClick(x, y)
		}
		p.button1 = pressed

	case *tcell.EventFocus:
		if ev.Focused {
			p.HandlePointerEnter()
		} else {
			p.HandlePointerLeave()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		p.HandleResize(cols, rows)
	}
	return ActionNone
}

func (p *Page) handleKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case 'c', 'C':
			p.ToggleCursor()
		case '?':
			p.ToggleHUD()
		}
	}
	return ActionNone
}
