// Package render draws the arena, HUD and menu screens onto a tcell screen
// The simulation runs in logical units; the renderer scales them to cells each frame
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clash-fighter/engine"
	"github.com/lixenwraith/clash-fighter/fighter"
	"github.com/lixenwraith/clash-fighter/match"
	"github.com/lixenwraith/clash-fighter/vmath"
)

const (
	hudRows    = 2 // name and meters
	footerRows = 1
	meterWidth = 20
)

// TerminalRenderer draws frames onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	arena  engine.Bounds
	base   tcell.Style
}

// NewTerminalRenderer creates a renderer mapping arena onto screen
func NewTerminalRenderer(screen tcell.Screen, arena engine.Bounds) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		arena:  arena,
		base:   tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText),
	}
}

// field returns the cell rectangle the arena is drawn into
func (r *TerminalRenderer) field() (x0, y0, w, h int) {
	sw, sh := r.screen.Size()
	return 0, hudRows, sw, max(sh-hudRows-footerRows, 1)
}

// toCells scales a logical rectangle to a cell rectangle, at least one cell in each axis
func (r *TerminalRenderer) toCells(rect vmath.Rect) (x, y, w, h int) {
	fx, fy, fw, fh := r.field()
	sx := float64(fw) / r.arena.Width()
	sy := float64(fh) / r.arena.Height()

	x = fx + int(rect.X*sx)
	y = fy + int(rect.Y*sy)
	w = max(int(rect.Right()*sx)-int(rect.X*sx), 1)
	h = max(int(rect.Bottom()*sy)-int(rect.Y*sy), 1)
	return x, y, w, h
}

func (r *TerminalRenderer) fill(x, y, w, h int, ch rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *TerminalRenderer) centered(y int, s string, style tcell.Style) {
	sw, _ := r.screen.Size()
	r.text(max((sw-len([]rune(s)))/2, 0), y, s, style)
}

// meter draws a bar of width cells filled to ratio
func (r *TerminalRenderer) meter(x, y, width int, ratio float64, fg tcell.Color) {
	filled := int(vmath.Clamp(ratio, 0, 1)*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		style := r.base.Foreground(RgbMeterEmpty)
		ch := '░'
		if i < filled {
			style = r.base.Foreground(fg)
			ch = '█'
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// RenderTitle draws the pre-fight screen
func (r *TerminalRenderer) RenderTitle(p1, p2 string, p2AI bool) {
	r.screen.Fill(' ', r.base)
	_, sh := r.screen.Size()
	mid := sh / 2

	opponent := p2
	if p2AI {
		opponent += " (AI)"
	}
	r.centered(mid-4, "C L A S H   F I G H T E R", r.base.Foreground(RgbClash).Bold(true))
	r.centered(mid-2, fmt.Sprintf("%s  vs  %s", p1, opponent), r.base)
	r.centered(mid, "P1: A/D move  W jump  F/G/H light/medium/heavy", r.base.Foreground(RgbTextDim))
	r.centered(mid+1, "P2: ←/→ move  ↑ jump  J/K/L light/medium/heavy", r.base.Foreground(RgbTextDim))
	r.centered(mid+2, "double-tap a direction to dash, face your opponent to block", r.base.Foreground(RgbTextDim))
	r.centered(mid+4, "Enter: fight   M: mute   Esc: quit", r.base)
	r.screen.Show()
}

// RenderFight draws one frame of the match, with a pause banner when paused
func (r *TerminalRenderer) RenderFight(m *match.Match, paused bool) {
	r.screen.Fill(' ', r.base)

	p1, p2 := m.P1(), m.P2()
	r.drawHUD(p1, p2)

	// Ground line
	fx, fy, fw, fh := r.field()
	r.fill(fx, fy+fh, fw, 1, '▀', r.base.Foreground(RgbGround))

	r.drawFighter(p1, RgbP1, RgbP1Bright)
	r.drawFighter(p2, RgbP2, RgbP2Bright)

	if p1.IsClashing() || p2.IsClashing() {
		r.centered(fy+1, "CLASH!", r.base.Foreground(RgbClash).Bold(true))
	}
	if paused {
		r.centered(fy+fh/2, "PAUSED  (P to resume)", r.base.Foreground(RgbText).Bold(true))
	}

	sw, _ := r.screen.Size()
	timer := fmt.Sprintf("%5.1fs", m.Elapsed().Seconds())
	r.text(sw-len(timer)-1, fy+fh, timer, r.base.Foreground(RgbTextDim))
	r.screen.Show()
}

func (r *TerminalRenderer) drawHUD(p1, p2 *fighter.Combatant) {
	sw, _ := r.screen.Size()

	r.text(1, 0, p1.Name(), r.base.Foreground(RgbP1).Bold(true))
	r.meter(1, 1, meterWidth, p1.Health()/p1.MaxHealth(), healthColor(p1.Health()/p1.MaxHealth()))
	r.meter(2+meterWidth, 1, meterWidth/2, p1.Stamina()/p1.MaxStamina(), RgbStamina)

	right := sw - 1
	r.text(right-len([]rune(p2.Name())), 0, p2.Name(), r.base.Foreground(RgbP2).Bold(true))
	r.meter(right-meterWidth, 1, meterWidth, p2.Health()/p2.MaxHealth(), healthColor(p2.Health()/p2.MaxHealth()))
	r.meter(right-meterWidth-1-meterWidth/2, 1, meterWidth/2, p2.Stamina()/p2.MaxStamina(), RgbStamina)
}

// stateGlyph picks the body fill for a state
func stateGlyph(s fighter.State) rune {
	switch s {
	case fighter.StateRun:
		return '▓'
	case fighter.StateJump:
		return '▒'
	case fighter.StateHit:
		return '░'
	case fighter.StateDeath:
		return '_'
	}
	return '█'
}

func (r *TerminalRenderer) drawFighter(c *fighter.Combatant, color, bright tcell.Color) {
	x, y, w, h := r.toCells(c.Box())
	style := r.base.Foreground(color)

	switch {
	case c.State() == fighter.StateHit:
		style = r.base.Foreground(RgbHitFlash)
	case c.State() == fighter.StateAttacking || c.IsDashing():
		style = r.base.Foreground(bright)
	}

	if c.State() == fighter.StateDeath {
		// Fallen: a single row on the ground
		r.fill(x, y+h-1, max(w, h), 1, stateGlyph(c.State()), style)
		return
	}
	r.fill(x, y, w, h, stateGlyph(c.State()), style)

	// Facing marker on the head row
	eye := x + w - 1
	if c.Direction() < 0 {
		eye = x
	}
	r.screen.SetContent(eye, y, '•', nil, r.base.Foreground(RgbText).Background(color))

	if hb, ok := c.AttackHitbox(); ok {
		hx, hy, hw, hh := r.toCells(hb)
		r.fill(hx, hy, hw, hh, '=', r.base.Foreground(RgbHitbox))
	}

	switch {
	case c.IsBlockingDamage():
		r.text(x, y-1, "BLOCK", r.base.Foreground(RgbBlock).Bold(true))
	case c.KnockbackPending() || c.KnockbackActive():
		r.text(x, y-1, strings.Repeat("~", max(w, 1)), r.base.Foreground(RgbClash))
	}
}

// RenderResult draws the post-fight screen with match stats
func (r *TerminalRenderer) RenderResult(m *match.Match) {
	r.screen.Fill(' ', r.base)
	_, sh := r.screen.Size()
	mid := sh / 2

	headline := "DRAW"
	style := r.base.Foreground(RgbClash).Bold(true)
	switch w := m.Winner(); {
	case w == m.P1():
		headline = w.Name() + " WINS"
		style = r.base.Foreground(RgbP1Bright).Bold(true)
	case w == m.P2():
		headline = w.Name() + " WINS"
		style = r.base.Foreground(RgbP2Bright).Bold(true)
	}
	r.centered(mid-3, headline, style)

	s := m.Stats()
	r.centered(mid-1, fmt.Sprintf("time %.1fs   hits %d   blocks %d   clashes %d",
		m.Elapsed().Seconds(), s.Counter(match.StatHits), s.Counter(match.StatBlocks), s.Counter(match.StatClashes)), r.base)
	r.centered(mid, fmt.Sprintf("match %s", m.ID()), r.base.Foreground(RgbTextDim))
	r.centered(mid+2, "Enter: rematch   Esc: quit", r.base)
	r.screen.Show()
}
