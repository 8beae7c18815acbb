package fighter

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/clash-fighter/config"
	"github.com/lixenwraith/clash-fighter/engine"
	"github.com/lixenwraith/clash-fighter/input"
)

const tick = 16 * time.Millisecond

// testTraits builds a fighter with round numbers: ground at y=300 in an 800x400 arena
func testTraits() *config.Fighter {
	return &config.Fighter{
		ID:            "tester",
		Name:          "Tester",
		Width:         50,
		Height:        100,
		MaxHealth:     100,
		MaxStamina:    100,
		Speed:         200,
		JumpStrength:  600,
		Gravity:       1500,
		HitDuration:   300 * time.Millisecond,
		DeathDuration: time.Second,
		Dash:          config.Dash{Speed: 600, Duration: 200 * time.Millisecond, StaminaCost: 20},
		Knockback:     config.Knockback{Speed: 500, BaseDelay: 300 * time.Millisecond},
		Hitboxes: map[string]config.Hitbox{
			config.AttackLight:  {OffsetX: 40, OffsetY: 20, Width: 40, Height: 20, Duration: 200 * time.Millisecond, Recovery: 100 * time.Millisecond, Damage: 10},
			config.AttackMedium: {OffsetX: 40, OffsetY: 15, Width: 50, Height: 30, Duration: 300 * time.Millisecond, Recovery: 200 * time.Millisecond, Damage: 15},
			config.AttackHeavy:  {OffsetX: 40, OffsetY: 10, Width: 60, Height: 40, Duration: 400 * time.Millisecond, Recovery: 300 * time.Millisecond, Damage: 30},
		},
		Animations: map[string]config.Animation{
			"idle": {Frames: 4, FrameDuration: 100 * time.Millisecond, Loop: true},
			"run":  {Frames: 6, FrameDuration: 50 * time.Millisecond, Loop: true},
		},
	}
}

type soundLog struct {
	played []Sound
}

func (s *soundLog) Play(snd Sound) {
	s.played = append(s.played, snd)
}

func (s *soundLog) count(snd Sound) int {
	n := 0
	for _, p := range s.played {
		if p == snd {
			n++
		}
	}
	return n
}

// rig is two combatants in one arena driven tick by tick, p1 then p2
type rig struct {
	clock    *engine.MockTimeProvider
	p1, p2   *Combatant
	in1, in2 *input.Snapshot
	sounds   *soundLog
}

func newRig(t *testing.T, x1 float64, d1 int, x2 float64, d2 int) *rig {
	t.Helper()
	r := &rig{
		clock:  engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		in1:    input.NewSnapshot(),
		in2:    input.NewSnapshot(),
		sounds: &soundLog{},
	}
	arena := engine.NewArena(800, 400)

	var err error
	r.p1, err = New(testTraits(), Options{ID: 1, X: x1, Direction: d1, Clock: r.clock, Bounds: arena, Input: r.in1, Sounds: r.sounds})
	if err != nil {
		t.Fatalf("Failed to create p1: %v", err)
	}
	r.p2, err = New(testTraits(), Options{ID: 2, X: x2, Direction: d2, Clock: r.clock, Bounds: arena, Input: r.in2, Sounds: r.sounds})
	if err != nil {
		t.Fatalf("Failed to create p2: %v", err)
	}
	return r
}

func (r *rig) step(dt time.Duration) {
	r.clock.Advance(dt)
	r.p1.Update(dt, r.p2)
	r.p2.Update(dt, r.p1)
	r.in1.EndTick()
	r.in2.EndTick()
}

func (r *rig) run(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		r.step(dt)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Now())
	arena := engine.NewArena(800, 400)

	noHeavy := testTraits()
	delete(noHeavy.Hitboxes, config.AttackHeavy)

	noSpeed := testTraits()
	noSpeed.Speed = 0

	noDamage := testTraits()
	hb := noDamage.Hitboxes[config.AttackLight]
	hb.Damage = 0
	noDamage.Hitboxes[config.AttackLight] = hb

	noFrames := testTraits()
	noFrames.Animations["idle"] = config.Animation{Frames: 0, FrameDuration: 100 * time.Millisecond}

	noFrameTime := testTraits()
	noFrameTime.Animations["run"] = config.Animation{Frames: 6}

	tests := []struct {
		name    string
		traits  *config.Fighter
		opts    Options
		missing bool
		invalid bool
	}{
		{"nil traits", nil, Options{Clock: clock, Bounds: arena}, true, false},
		{"missing heavy hitbox", noHeavy, Options{Clock: clock, Bounds: arena}, true, false},
		{"zero speed", noSpeed, Options{Clock: clock, Bounds: arena}, true, false},
		{"zero hitbox damage", noDamage, Options{Clock: clock, Bounds: arena}, true, false},
		{"zero animation frames", noFrames, Options{Clock: clock, Bounds: arena}, false, true},
		{"zero frame duration", noFrameTime, Options{Clock: clock, Bounds: arena}, false, true},
		{"no clock", testTraits(), Options{Bounds: arena}, false, false},
		{"no bounds", testTraits(), Options{Clock: clock}, false, false},
		{"bad direction", testTraits(), Options{Clock: clock, Bounds: arena, Direction: 2}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.traits, tt.opts)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if c != nil {
				t.Error("Expected no combatant on error")
			}
			if tt.missing && !errors.Is(err, config.ErrMissingField) {
				t.Errorf("Expected ErrMissingField, got %v", err)
			}
			if tt.invalid && !errors.Is(err, config.ErrInvalidValue) {
				t.Errorf("Expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestNewInitialState(t *testing.T) {
	r := newRig(t, 900, 0, 100, -1)

	if r.p1.X() != 750 {
		t.Errorf("Expected x clamped to 750, got %f", r.p1.X())
	}
	if r.p1.Y() != 300 {
		t.Errorf("Expected y on ground 300, got %f", r.p1.Y())
	}
	if r.p1.Direction() != 1 {
		t.Errorf("Expected default direction +1, got %d", r.p1.Direction())
	}
	if r.p1.State() != StateIdle {
		t.Errorf("Expected idle, got %s", r.p1.State())
	}
	if r.p1.Health() != 100 || r.p1.Stamina() != 100 {
		t.Errorf("Expected full vitals, got health %f stamina %f", r.p1.Health(), r.p1.Stamina())
	}
	if r.p1.AnimationName() != "idle" {
		t.Errorf("Expected idle animation, got %q", r.p1.AnimationName())
	}
}

func TestAttackHitboxMirrors(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.in1.Press(input.ActionLight)
	r.in2.Press(input.ActionLight)
	r.p1.Update(tick, r.p2)

	hb, ok := r.p1.AttackHitbox()
	if !ok {
		t.Fatal("Expected p1 attacking")
	}
	if hb.X != 340 || hb.Width != 40 || hb.Y != 320 {
		t.Errorf("Expected right-facing hitbox at x=340 y=320 w=40, got %+v", hb)
	}

	// Facing left mirrors around the body: 370 + 50 - 40 - 40
	r.p2.state = StateAttacking
	r.p2.attackType = AttackLight
	hb, _ = r.p2.AttackHitbox()
	if hb.X != 340 {
		t.Errorf("Expected left-facing hitbox at x=340, got %f", hb.X)
	}

	if _, ok := r.p2.AttackHitbox(); !ok {
		t.Error("Expected hitbox while attacking")
	}
	r.p2.state = StateIdle
	if _, ok := r.p2.AttackHitbox(); ok {
		t.Error("Expected no hitbox while idle")
	}
}

func TestClashHeavyBeatsLight(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.in1.Press(input.ActionHeavy)
	r.in2.Press(input.ActionLight)
	r.step(tick)

	if !r.p1.IsClashing() || !r.p2.IsClashing() {
		t.Fatal("Expected both fighters clashing")
	}
	if r.p1.Stamina() != 90 || r.p2.Stamina() != 90 {
		t.Errorf("Expected stamina 90/90, got %f/%f", r.p1.Stamina(), r.p2.Stamina())
	}
	if !r.p1.DamageApplied() || !r.p2.DamageApplied() {
		t.Error("Expected both swings spent on the clash")
	}
	if r.p1.LostClash() || !r.p2.LostClash() {
		t.Errorf("Expected p2 to lose, got lost p1=%v p2=%v", r.p1.LostClash(), r.p2.LostClash())
	}
	if r.p2.PendingDamage() != 15 {
		t.Errorf("Expected pending damage 15, got %f", r.p2.PendingDamage())
	}
	if !r.p2.KnockbackApplied() || !r.p2.KnockbackPending() {
		t.Error("Expected p2 knockback armed")
	}
	if r.p1.KnockbackPending() || r.p1.KnockbackActive() {
		t.Error("Expected winner not knocked back")
	}
	if r.sounds.count(SoundClash) != 1 {
		t.Errorf("Expected 1 clash sound, got %d", r.sounds.count(SoundClash))
	}

	// Heavy source: 300ms base + 400ms extra. Still inert at ~0.5s
	r.run(30, tick)
	if r.p2.X() != 370 || !r.p2.KnockbackPending() {
		t.Errorf("Expected p2 still waiting at 370, got x=%f pending=%v", r.p2.X(), r.p2.KnockbackPending())
	}
	if r.p2.Health() != 100 {
		t.Errorf("Expected damage deferred, got health %f", r.p2.Health())
	}

	// Attempting to act during the delay does nothing
	r.in2.Press(input.ActionMedium)
	r.step(tick)
	if r.p2.State() == StateAttacking {
		t.Error("Expected no attack during knockback delay")
	}

	r.run(90, tick)
	if r.p2.X() != 470 {
		t.Errorf("Expected p2 slid to 470, got %f", r.p2.X())
	}
	if r.p2.Health() != 85 {
		t.Errorf("Expected health 85 after knockback, got %f", r.p2.Health())
	}
	if r.p2.PendingDamage() != 0 || r.p2.KnockbackApplied() || r.p2.KnockbackActive() {
		t.Error("Expected knockback fully resolved")
	}
	if r.p1.Health() != 100 || r.p1.X() != 300 {
		t.Errorf("Expected winner untouched, got health %f x %f", r.p1.Health(), r.p1.X())
	}
	if r.p1.IsClashing() || r.p2.IsClashing() {
		t.Error("Expected clash indicator cleared")
	}
}

func TestClashSameTypeKnocksBothBack(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.in1.Press(input.ActionLight)
	r.in2.Press(input.ActionLight)
	r.step(tick)

	if r.p1.LostClash() || r.p2.LostClash() {
		t.Error("Expected no loser on an even clash")
	}
	if r.p1.PendingDamage() != 0 || r.p2.PendingDamage() != 0 {
		t.Error("Expected no pending damage on an even clash")
	}
	if !r.p1.KnockbackPending() || !r.p2.KnockbackPending() {
		t.Fatal("Expected both knocked back")
	}

	r.run(70, tick)
	if r.p1.X() != 200 || r.p2.X() != 470 {
		t.Errorf("Expected x 200/470, got %f/%f", r.p1.X(), r.p2.X())
	}
	if r.p1.Health() != 100 || r.p2.Health() != 100 {
		t.Error("Expected no damage from an even clash")
	}
}

func TestClashExhaustedFighterLoses(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.p1.stamina = 5
	r.in1.Press(input.ActionHeavy)
	r.in2.Press(input.ActionLight)
	r.step(tick)

	if r.p1.Stamina() != 0 {
		t.Errorf("Expected stamina clamped at 0, got %f", r.p1.Stamina())
	}
	if !r.p1.LostClash() || r.p2.LostClash() {
		t.Error("Expected the exhausted heavy attacker to lose")
	}
	if r.p1.PendingDamage() != 5 {
		t.Errorf("Expected half the light damage pending, got %f", r.p1.PendingDamage())
	}
	if r.p1.knockbackTargetX != 200 {
		t.Errorf("Expected knockback target 200, got %f", r.p1.knockbackTargetX)
	}
}

func TestClashVoidWhenBothExhausted(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.p1.stamina = 5
	r.p2.stamina = 5
	r.in1.Press(input.ActionMedium)
	r.in2.Press(input.ActionHeavy)
	r.step(tick)

	if r.p1.Stamina() != 0 || r.p2.Stamina() != 0 {
		t.Errorf("Expected both stamina 0, got %f/%f", r.p1.Stamina(), r.p2.Stamina())
	}
	if r.p1.IsClashing() || r.p2.IsClashing() {
		t.Error("Expected void clash to leave no clash flags")
	}
	if r.p1.KnockbackPending() || r.p2.KnockbackPending() {
		t.Error("Expected no knockback from a void clash")
	}
	if !r.p1.DamageApplied() || !r.p2.DamageApplied() {
		t.Error("Expected both swings spent")
	}
	if r.sounds.count(SoundClash) != 0 {
		t.Error("Expected no clash sound for a void clash")
	}
}

func TestBlockWhenFacingAttacker(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.in1.Press(input.ActionLight)
	r.step(tick)

	if !r.p2.IsBlocking() {
		t.Fatal("Expected p2 blocking while facing p1")
	}
	if r.p2.IsHit(r.p1) {
		t.Error("Expected blocked attack not to hit")
	}
	if !r.p2.IsBlockingDamage() {
		t.Error("Expected blocking-damage indicator")
	}
	if r.p1.DamageApplied() {
		t.Error("Expected a blocked swing to leave damageApplied clear")
	}
	if r.sounds.count(SoundBlock) != 1 {
		t.Errorf("Expected 1 block sound, got %d", r.sounds.count(SoundBlock))
	}

	// Indicator is per tick
	r.step(tick)
	if r.p2.IsBlockingDamage() {
		t.Error("Expected blocking-damage reset on the next tick")
	}
}

func TestHitLandsOncePerSwing(t *testing.T) {
	// p2 faces away from p1 and cannot block
	r := newRig(t, 300, 1, 370, 1)
	r.in1.Press(input.ActionLight)
	r.step(tick)

	if r.p2.IsBlocking() {
		t.Fatal("Expected p2 not blocking with its back turned")
	}
	if !r.p2.IsHit(r.p1) {
		t.Fatal("Expected the first check to hit")
	}
	r.p2.TakeDamage(r.p1.AttackDamage())

	if r.p2.Health() != 90 {
		t.Errorf("Expected health 90, got %f", r.p2.Health())
	}
	if r.p2.State() != StateHit {
		t.Errorf("Expected hit state, got %s", r.p2.State())
	}

	for i := 0; i < 5; i++ {
		r.step(tick)
		if r.p2.IsHit(r.p1) {
			t.Fatalf("Expected no second hit from the same swing (tick %d)", i)
		}
	}

	// Hit stun ends after HitDuration
	r.run(20, tick)
	if r.p2.State() != StateIdle {
		t.Errorf("Expected idle after hit stun, got %s", r.p2.State())
	}
	if r.sounds.count(SoundHit) != 1 {
		t.Errorf("Expected 1 hit sound, got %d", r.sounds.count(SoundHit))
	}
}

func TestRecoveryBlocksNewAttack(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)
	r.in1.Press(input.ActionLight)
	r.run(14, tick) // light attack started at 16ms ends at 216ms

	if r.p1.State() == StateAttacking {
		t.Fatal("Expected attack window over")
	}
	if !r.p1.IsRecovering() {
		t.Fatal("Expected recovery after attack")
	}

	r.in1.Press(input.ActionHeavy)
	r.step(tick)
	if r.p1.State() == StateAttacking {
		t.Error("Expected no attack while recovering")
	}

	r.run(10, tick)
	if r.p1.IsRecovering() {
		t.Fatal("Expected recovery over")
	}
	r.in1.Press(input.ActionHeavy)
	r.step(tick)
	if r.p1.State() != StateAttacking || r.p1.AttackType() != AttackHeavy {
		t.Errorf("Expected heavy attack after recovery, got %s/%s", r.p1.State(), r.p1.AttackType())
	}
}

func TestDeathIsTerminal(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)

	r.p1.TakeDamage(1000)
	if r.p1.Health() != 0 || r.p1.State() != StateDeath {
		t.Fatalf("Expected dead at 0 health, got %f %s", r.p1.Health(), r.p1.State())
	}
	if r.p1.IsAlive() {
		t.Error("Expected not alive")
	}

	r.p1.TakeDamage(10)
	r.p1.SetState(StateIdle)
	if r.p1.State() != StateDeath {
		t.Error("Expected death to be terminal")
	}
	if r.sounds.count(SoundKnockout) != 1 {
		t.Errorf("Expected 1 knockout sound, got %d", r.sounds.count(SoundKnockout))
	}

	// Dead fighters take no further hits
	r.p2.state = StateAttacking
	r.p2.attackType = AttackLight
	r.p2.direction = 1
	r.p2.x = 60
	if r.p1.IsHit(r.p2) {
		t.Error("Expected a dead fighter never to be hit")
	}
	r.p2.state = StateIdle
	r.p2.attackType = AttackNone
	r.p2.direction = -1
	r.p2.x = 600

	r.run(30, tick)
	if r.p1.DeathFinished() {
		t.Error("Expected death animation still running")
	}
	r.run(40, tick)
	if !r.p1.DeathFinished() {
		t.Error("Expected death animation finished after DeathDuration")
	}
}

func TestDashOnDoubleTap(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)

	r.in1.Press(input.ActionMoveRight)
	r.step(tick)
	if r.p1.IsDashing() {
		t.Fatal("Expected a single tap not to dash")
	}

	r.in1.Press(input.ActionMoveRight)
	r.step(tick)
	if !r.p1.IsDashing() {
		t.Fatal("Expected dash on double tap")
	}
	if r.p1.Stamina() != 80 {
		t.Errorf("Expected stamina 80 after dash, got %f", r.p1.Stamina())
	}
	if r.sounds.count(SoundDash) != 1 {
		t.Errorf("Expected 1 dash sound, got %d", r.sounds.count(SoundDash))
	}

	start := r.p1.X()
	r.step(tick)
	if moved := r.p1.X() - start; math.Abs(moved-600*tick.Seconds()) > 1e-9 {
		t.Errorf("Expected dash speed step %f, got %f", 600*tick.Seconds(), moved)
	}

	r.run(15, tick)
	if r.p1.IsDashing() {
		t.Error("Expected dash over after its duration")
	}
}

func TestDashInsufficientStamina(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)
	r.p1.stamina = 10

	r.in1.Press(input.ActionMoveRight)
	r.step(tick)
	r.in1.Press(input.ActionMoveRight)
	r.step(tick)

	if r.p1.IsDashing() {
		t.Error("Expected no dash without stamina")
	}
	if r.p1.Stamina() != 10 {
		t.Errorf("Expected stamina unchanged at 10, got %f", r.p1.Stamina())
	}
	if r.p1.X() <= 100 {
		t.Error("Expected ordinary movement to continue")
	}
	if r.sounds.count(SoundDash) != 0 {
		t.Error("Expected no dash sound")
	}
}

func TestStaminaRegenWhileIdle(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)
	r.p1.stamina = 50

	r.run(100, 10*time.Millisecond)
	if math.Abs(r.p1.Stamina()-70) > 1e-6 {
		t.Errorf("Expected stamina 70 after 1s idle, got %f", r.p1.Stamina())
	}

	r.run(300, 10*time.Millisecond)
	if r.p1.Stamina() != 100 {
		t.Errorf("Expected stamina capped at 100, got %f", r.p1.Stamina())
	}
}

func TestMovementStopsAtOpponent(t *testing.T) {
	r := newRig(t, 300, 1, 360, -1)
	r.in1.Hold(input.ActionMoveRight)
	r.run(10, tick)

	if r.p1.X() <= 300 {
		t.Error("Expected p1 to close the gap")
	}
	if r.p1.Box().Overlaps(r.p2.Box()) {
		t.Errorf("Expected no overlap, p1 at %f p2 at %f", r.p1.X(), r.p2.X())
	}
	if r.p1.State() != StateRun {
		t.Errorf("Expected run state while held, got %s", r.p1.State())
	}
}

func TestJumpAndLand(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)
	r.in1.Press(input.ActionJump)
	r.step(tick)

	if r.p1.State() != StateJump || !r.p1.IsAirborne() {
		t.Fatalf("Expected airborne jump, got %s", r.p1.State())
	}

	r.run(24, tick)
	if r.p1.Y() > 200 {
		t.Errorf("Expected near apex around y=180, got %f", r.p1.Y())
	}

	// Jump press while airborne is ignored
	r.in1.Press(input.ActionJump)
	r.step(tick)
	if r.sounds.count(SoundJump) != 1 {
		t.Errorf("Expected 1 jump sound, got %d", r.sounds.count(SoundJump))
	}

	r.run(40, tick)
	if r.p1.IsAirborne() || r.p1.Y() != 300 {
		t.Errorf("Expected landed at 300, got y=%f", r.p1.Y())
	}
	if r.p1.State() != StateIdle {
		t.Errorf("Expected idle after landing, got %s", r.p1.State())
	}
}

func TestKnockbackStopsAtBound(t *testing.T) {
	r := newRig(t, 30, 1, 100, -1)
	r.in1.Press(input.ActionLight)
	r.in2.Press(input.ActionLight)
	r.step(tick)

	if !r.p1.KnockbackPending() {
		t.Fatal("Expected p1 knocked back")
	}
	r.run(60, tick)
	if r.p1.X() != 0 {
		t.Errorf("Expected p1 stopped at left bound, got %f", r.p1.X())
	}
	if r.p1.KnockbackActive() || r.p1.IsClashing() {
		t.Error("Expected knockback ended at the bound")
	}
}

func TestSetStateAnimation(t *testing.T) {
	r := newRig(t, 100, 1, 600, -1)
	c := r.p1

	c.advanceAnimation(250 * time.Millisecond)
	if c.Frame() != 2 {
		t.Fatalf("Expected idle frame 2, got %d", c.Frame())
	}

	c.SetState(StateIdle)
	if c.Frame() != 2 || c.TimeInState() != 250*time.Millisecond {
		t.Error("Expected same-state transition to keep the animation")
	}

	c.SetState(StateRun)
	if c.AnimationName() != "run" || c.Frame() != 0 || c.TimeInState() != 0 {
		t.Errorf("Expected run restarted at frame 0, got %q frame %d", c.AnimationName(), c.Frame())
	}

	// Loops wrap
	c.advanceAnimation(350 * time.Millisecond)
	if c.Frame() != 1 {
		t.Errorf("Expected looped frame 1, got %d", c.Frame())
	}

	// Missing animation holds frame 0
	c.SetState(StateJump)
	c.advanceAnimation(time.Second)
	if c.AnimationName() != "jump" || c.Frame() != 0 {
		t.Errorf("Expected static jump frame, got %q frame %d", c.AnimationName(), c.Frame())
	}
}

// Knockback delays count from the tick after the clash for both fighters, whichever update saw it
func TestClashKnockbackStartsTogether(t *testing.T) {
	tests := []struct {
		name      string
		p2First   bool
		heavy     bool
		wantTicks int // ticks after the clash until the slide starts
	}{
		{"even light, p1 updates first", false, false, 19}, // 300ms / 16ms
		{"even light, p2 updates first", true, false, 19},
		{"heavy over light", false, true, 44}, // 700ms / 16ms
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, 300, 1, 370, -1)
			step := func() {
				r.clock.Advance(tick)
				if tt.p2First {
					r.p2.Update(tick, r.p1)
					r.p1.Update(tick, r.p2)
				} else {
					r.p1.Update(tick, r.p2)
					r.p2.Update(tick, r.p1)
				}
				r.in1.EndTick()
				r.in2.EndTick()
			}

			if tt.heavy {
				r.in1.Press(input.ActionHeavy)
			} else {
				r.in1.Press(input.ActionLight)
			}
			r.in2.Press(input.ActionLight)
			step()
			if !r.p2.KnockbackPending() {
				t.Fatal("Expected p2 knocked back")
			}

			started := [2]int{-1, -1}
			for i := 1; i <= 60; i++ {
				step()
				for j, c := range []*Combatant{r.p1, r.p2} {
					if started[j] < 0 && c.KnockbackActive() {
						started[j] = i
					}
				}
			}

			if started[1] != tt.wantTicks {
				t.Errorf("Expected p2 slide after %d ticks, got %d", tt.wantTicks, started[1])
			}
			if !tt.heavy && started[0] != started[1] {
				t.Errorf("Expected both slides on the same tick, got p1=%d p2=%d", started[0], started[1])
			}
			if tt.heavy && started[0] != -1 {
				t.Errorf("Expected the winner never knocked back, got tick %d", started[0])
			}
		})
	}
}

func TestVerticalCollisions(t *testing.T) {
	tests := []struct {
		name         string
		y, dy        float64
		oppY         float64
		wantY        float64
		wantDY       float64
		wantAirborne bool
		wantState    State
	}{
		// Bottom edge would pass the opponent's top at 300
		{"falling onto opponent", 195, 600, 300, 200, 0, false, StateIdle},
		// Top edge would pass the opponent's bottom at 250
		{"rising into opponent", 255, -600, 150, 255, 0, true, StateJump},
		{"ceiling", 5, -600, 300, 0, 0, true, StateJump},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, 300, 1, 320, -1)
			r.p2.y = tt.oppY
			r.p1.y = tt.y
			r.p1.dy = tt.dy
			r.p1.airborne = true
			r.p1.SetState(StateJump)

			r.clock.Advance(tick)
			r.p1.Update(tick, r.p2)

			if r.p1.Y() != tt.wantY {
				t.Errorf("Expected y=%f, got %f", tt.wantY, r.p1.Y())
			}
			if r.p1.DY() != tt.wantDY {
				t.Errorf("Expected dy=%f, got %f", tt.wantDY, r.p1.DY())
			}
			if r.p1.IsAirborne() != tt.wantAirborne {
				t.Errorf("Expected airborne=%v, got %v", tt.wantAirborne, r.p1.IsAirborne())
			}
			if r.p1.State() != tt.wantState {
				t.Errorf("Expected %s, got %s", tt.wantState, r.p1.State())
			}
		})
	}
}

func TestClashIndicatorExpires(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.in1.Press(input.ActionHeavy)
	r.in2.Press(input.ActionLight)
	r.step(tick)

	if !r.p1.IsClashing() || r.p1.KnockbackPending() {
		t.Fatal("Expected the winner clashing without knockback")
	}

	// Clash stamped at 16ms; the window closes at 1016ms
	r.run(62, tick)
	if !r.p1.IsClashing() {
		t.Error("Expected the indicator inside the 1s window")
	}
	if r.p2.IsClashing() {
		t.Error("Expected the loser's indicator cleared by its finished knockback")
	}

	r.step(tick)
	if r.p1.IsClashing() {
		t.Error("Expected the indicator cleared after 1s")
	}
}

func TestBlockRepeatsWithinSwing(t *testing.T) {
	r := newRig(t, 300, 1, 370, -1)
	r.in1.Press(input.ActionLight)
	r.step(tick)

	for i := 0; i < 3; i++ {
		if r.p2.IsHit(r.p1) {
			t.Fatalf("Expected check %d blocked", i)
		}
		if !r.p2.IsBlockingDamage() {
			t.Errorf("Expected blocking-damage indicator on check %d", i)
		}
		if r.p1.DamageApplied() {
			t.Fatalf("Expected damageApplied clear after block %d", i)
		}
		r.step(tick)
	}
	if r.sounds.count(SoundBlock) != 3 {
		t.Errorf("Expected 3 block sounds, got %d", r.sounds.count(SoundBlock))
	}

	// Same swing still lands once the guard drops
	r.p2.direction = 1
	r.step(tick)
	if r.p1.State() != StateAttacking {
		t.Fatal("Expected p1 still in its swing")
	}
	if !r.p2.IsHit(r.p1) {
		t.Error("Expected the unguarded check to hit")
	}
	if !r.p1.DamageApplied() {
		t.Error("Expected the hit to spend the swing")
	}
}
