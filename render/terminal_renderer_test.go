package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/engine"
	"github.com/lixenwraith/clash-fighter/fighter"
	"github.com/lixenwraith/clash-fighter/match"
	"github.com/lixenwraith/clash-fighter/vmath"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(row(s, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func newMatch(t *testing.T, clock engine.TimeProvider, arena engine.Bounds) *match.Match {
	t.Helper()
	roster, err := config.Parse(config.EmbeddedRoster())
	if err != nil {
		t.Fatalf("Failed to load roster: %v", err)
	}
	ids := roster.IDs()
	t1, _ := roster.Get(ids[0])
	t2, _ := roster.Get(ids[len(ids)-1])

	p1, err := fighter.New(t1, fighter.Options{ID: 1, X: 100, Direction: 1, Clock: clock, Bounds: arena})
	if err != nil {
		t.Fatalf("Failed to create p1: %v", err)
	}
	p2, err := fighter.New(t2, fighter.Options{ID: 2, X: 600, Direction: -1, Clock: clock, Bounds: arena})
	if err != nil {
		t.Fatalf("Failed to create p2: %v", err)
	}
	m, err := match.New(p1, p2)
	if err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	return m
}

func TestRenderTitle(t *testing.T) {
	s := newScreen(t)
	r := NewTerminalRenderer(s, engine.NewArena(800, 400))

	r.RenderTitle("Ronin", "Brute", true)
	text := screenText(s)

	if !strings.Contains(text, "Ronin  vs  Brute (AI)") {
		t.Errorf("Expected matchup line, got:\n%s", text)
	}
	if !strings.Contains(text, "Enter: fight") {
		t.Error("Expected start prompt")
	}
}

func TestRenderFightPlacesFighters(t *testing.T) {
	s := newScreen(t)
	arena := engine.NewArena(800, 400)
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := newMatch(t, clock, arena)
	r := NewTerminalRenderer(s, arena)

	r.RenderFight(m, false)

	if !strings.Contains(row(s, 0), m.P1().Name()) || !strings.Contains(row(s, 0), m.P2().Name()) {
		t.Errorf("Expected both names in the HUD, got %q", row(s, 0))
	}

	// Full health meter starts at column 1
	if ch, _, _, _ := s.GetContent(1, 1); ch != '█' {
		t.Errorf("Expected a filled health meter, got %q", ch)
	}

	// Body center cell of p1
	x, y, w, h := r.toCells(m.P1().Box())
	if ch, _, _, _ := s.GetContent(x+w/2, y+h/2); ch != '█' {
		t.Errorf("Expected p1 body at (%d,%d), got %q", x+w/2, y+h/2, ch)
	}
	if strings.Contains(screenText(s), "CLASH!") {
		t.Error("Expected no clash banner at rest")
	}
	if strings.Contains(screenText(s), "PAUSED") {
		t.Error("Expected no pause banner while running")
	}

	r.RenderFight(m, true)
	if !strings.Contains(screenText(s), "PAUSED") {
		t.Error("Expected pause banner")
	}
}

func TestToCellsScales(t *testing.T) {
	s := newScreen(t)
	r := NewTerminalRenderer(s, engine.NewArena(800, 400))

	// 80 cols over 800 units; 21 field rows over 400 units
	x, y, w, h := r.toCells(rectOf(100, 300, 50, 100))
	if x != 10 || w != 5 {
		t.Errorf("Expected x=10 w=5, got x=%d w=%d", x, w)
	}
	if y != hudRows+15 || h != 6 {
		t.Errorf("Expected y=%d h=6, got y=%d h=%d", hudRows+15, y, h)
	}

	// Tiny rectangles still get a cell
	_, _, w, h = r.toCells(rectOf(0, 0, 1, 1))
	if w != 1 || h != 1 {
		t.Errorf("Expected 1x1 minimum, got %dx%d", w, h)
	}
}

func TestRenderResultDraw(t *testing.T) {
	s := newScreen(t)
	arena := engine.NewArena(800, 400)
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := newMatch(t, clock, arena)

	m.P1().TakeDamage(m.P1().MaxHealth())
	m.P2().TakeDamage(m.P2().MaxHealth())
	for i := 0; i < 300 && !m.Over(); i++ {
		clock.Advance(16 * time.Millisecond)
		m.Tick(16 * time.Millisecond)
	}
	if !m.Over() {
		t.Fatal("Expected the match to end")
	}

	NewTerminalRenderer(s, arena).RenderResult(m)
	text := screenText(s)
	if !strings.Contains(text, "DRAW") {
		t.Errorf("Expected draw headline, got:\n%s", text)
	}
	if !strings.Contains(text, m.ID().String()) {
		t.Error("Expected the match id on the result screen")
	}
}

func rectOf(x, y, w, h float64) vmath.Rect {
	return vmath.Rect{X: x, Y: y, Width: w, Height: h}
}
