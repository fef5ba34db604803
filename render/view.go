// Package render draws the simulation onto a tcell screen and translates
// terminal input into simulation requests
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/engine"
	"github.com/lixenwraith/pursuit/event"
	"github.com/lixenwraith/pursuit/parameter"
	"github.com/lixenwraith/pursuit/track"
	"github.com/lixenwraith/pursuit/vmath"
)

// Source is the read side of a simulation needed for one frame
type Source interface {
	Track() *track.Track
	Poses() []agent.Pose
	Effects() []engine.Effect
	Now() float64
	Captures() int
	Config() config.Config
}

// View owns the screen layout and the recent notification log
type View struct {
	screen tcell.Screen
	vp     Viewport
	notes  []string
}

// NewView sizes a viewport over frame for the current screen size
func NewView(screen tcell.Screen, frame config.Frame) *View {
	v := &View{screen: screen}
	w, h := screen.Size()
	v.vp = NewViewport(r2.Vec{X: frame.MinX, Y: frame.MinY}, r2.Vec{X: frame.MaxX, Y: frame.MaxY}, w, h-parameter.HUDRows)
	return v
}

// Viewport returns the current world to cell mapping
func (v *View) Viewport() Viewport { return v.vp }

// Resize refits the viewport after a terminal resize
func (v *View) Resize() {
	w, h := v.screen.Size()
	v.vp.Resize(w, h-parameter.HUDRows)
}

// Note appends a notification to the status log; it is an event.Handler
func (v *View) Note(n event.Notification) {
	line := fmt.Sprintf("%.1fs %s %s#%d", n.Time, n.Kind, n.Role, n.Handle)
	if n.Kind == event.KindCaptured {
		line = fmt.Sprintf("%.1fs car#%d captured by police#%d", n.Time, n.Handle, n.Partner)
	}
	v.notes = append(v.notes, line)
	if len(v.notes) > parameter.MaxRecentNotes {
		v.notes = v.notes[len(v.notes)-parameter.MaxRecentNotes:]
	}
}

// Notes returns the status log, oldest first
func (v *View) Notes() []string {
	out := make([]string, len(v.notes))
	copy(out, v.notes)
	return out
}

// Draw renders one full frame and shows it
func (v *View) Draw(src Source) {
	v.screen.Clear()

	cfg := src.Config()
	v.drawMedian(cfg.World.Median)
	v.drawTrack(src.Track())

	now := src.Now()
	var cars, police, obstacles int
	for _, p := range src.Poses() {
		switch p.Role {
		case agent.RoleObstacle:
			obstacles++
			v.put(p.Position, glyphObstacle, styleObstacle)
		case agent.RoleNormalCar:
			cars++
			v.put(p.Position, headingGlyph(p.Orientation), styleCar)
		case agent.RolePoliceCar:
			police++
			style := stylePoliceA
			if int(now*parameter.SirenFlashHz*2)%2 == 1 {
				style = stylePoliceB
			}
			v.put(p.Position, headingGlyph(p.Orientation), style)
		}
	}

	for _, e := range src.Effects() {
		if e.Fading {
			v.put(e.Position, glyphFading, styleFading)
		} else {
			v.put(e.Position, glyphEffect, styleEffect)
		}
	}

	status := fmt.Sprintf(" t=%.1fs cars=%d police=%d cones=%d captures=%d | c car  p police  x clear  r reset  l reload  click cone  q quit",
		now, cars, police, obstacles, src.Captures())
	v.text(0, v.vp.Rows, status, styleHUD)
	if n := len(v.notes); n > 0 {
		v.text(0, v.vp.Rows+1, " "+v.notes[n-1], styleNote)
	}

	v.screen.Show()
}

func (v *View) drawTrack(t *track.Track) {
	if t == nil {
		return
	}
	cw, ch := v.vp.CellSize()
	step := math.Min(cw, ch) * parameter.TrackSampleCells
	if step <= 0 {
		return
	}
	r := t.Radius()
	for d := 0.0; d < t.Length(); d += step {
		p := t.PointAt(d)
		n := vmath.Perpendicular(t.TangentAt(d))
		v.putIfEmpty(r2.Add(p, r2.Scale(r, n)), glyphEdge, styleEdge)
		v.putIfEmpty(r2.Sub(p, r2.Scale(r, n)), glyphEdge, styleEdge)
		v.putIfEmpty(p, glyphTrack, styleTrack)
	}
}

func (v *View) drawMedian(m config.Median) {
	if m.Radius <= 0 {
		return
	}
	center := r2.Vec{X: m.X, Y: m.Y}
	x0, y0, _ := v.vp.ToCell(r2.Vec{X: m.X - m.Radius, Y: m.Y + m.Radius})
	x1, y1, _ := v.vp.ToCell(r2.Vec{X: m.X + m.Radius, Y: m.Y - m.Radius})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r2.Norm(r2.Sub(v.vp.ToWorld(x, y), center)) <= m.Radius {
				v.set(x, y, glyphMedian, styleMedian)
			}
		}
	}
}

func (v *View) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.vp.Cols || y >= v.vp.Rows {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *View) put(p r2.Vec, r rune, style tcell.Style) {
	if x, y, ok := v.vp.ToCell(p); ok {
		v.screen.SetContent(x, y, r, nil, style)
	}
}

// putIfEmpty keeps the median and earlier marks from being overdrawn by the corridor
func (v *View) putIfEmpty(p r2.Vec, r rune, style tcell.Style) {
	x, y, ok := v.vp.ToCell(p)
	if !ok {
		return
	}
	if cur, _, _, _ := v.screen.GetContent(x, y); cur != ' ' && cur != 0 {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	w, h := v.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
