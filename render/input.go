package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pursuit/engine"
)

// Action is what the host loop should do with a terminal event
type Action uint8

const (
	ActionNone Action = iota
	ActionInput
	ActionQuit
	ActionResize
	ActionReload
)

// Input translates terminal events; it tracks the primary button so a drag
// places a single obstacle
type Input struct {
	held bool
}

// Translate maps a terminal event onto a simulation request
// Key bindings: c car, p police, x clear, r reset, l reload tuning,
// q/Esc/Ctrl-C quit; a
// primary mouse press inside the world places an obstacle
func (in *Input) Translate(ev tcell.Event, vp Viewport) (Action, engine.InputEvent) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return ActionQuit, engine.InputEvent{}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return ActionQuit, engine.InputEvent{}
			case 'c', 'C':
				return ActionInput, engine.InputEvent{Kind: engine.InputAddCar}
			case 'p', 'P':
				return ActionInput, engine.InputEvent{Kind: engine.InputAddPolice}
			case 'x', 'X':
				return ActionInput, engine.InputEvent{Kind: engine.InputClearAll}
			case 'r', 'R':
				return ActionInput, engine.InputEvent{Kind: engine.InputReset}
			case 'l', 'L':
				return ActionReload, engine.InputEvent{}
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		pressed := down && !in.held
		in.held = down
		if !pressed {
			return ActionNone, engine.InputEvent{}
		}
		x, y := ev.Position()
		if x < 0 || y < 0 || x >= vp.Cols || y >= vp.Rows {
			return ActionNone, engine.InputEvent{}
		}
		return ActionInput, engine.InputEvent{Kind: engine.InputAddObstacle, Point: vp.ToWorld(x, y)}

	case *tcell.EventResize:
		return ActionResize, engine.InputEvent{}
	}
	return ActionNone, engine.InputEvent{}
}
