// Package match composes two combatants into a match: fixed update order,
// hit adjudication, outcome detection and per-match stats.
package match

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/clash-fighter/fighter"
	"github.com/lixenwraith/clash-fighter/status"
)

// Stat keys written to the registry
const (
	StatTicks     = "ticks"
	StatHits      = "hits"
	StatBlocks    = "blocks"
	StatClashes   = "clashes"
	StatKnockouts = "knockouts"
	StatDamageP1  = "damage.p1" // dealt to p1
	StatDamageP2  = "damage.p2"
	StatElapsed   = "elapsed_s"
	LabelID       = "match.id"
	LabelOutcome  = "outcome"
)

// Outcome of a match
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeDraw
	OutcomeP1
	OutcomeP2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDraw:
		return "draw"
	case OutcomeP1:
		return "p1"
	case OutcomeP2:
		return "p2"
	}
	return "pending"
}

// Option configures a Match
type Option func(*Match)

// WithStats records into r instead of a private registry
func WithStats(r *status.Registry) Option {
	return func(m *Match) {
		m.stats = r
	}
}

// WithID fixes the match id
func WithID(id uuid.UUID) Option {
	return func(m *Match) {
		m.id = id
	}
}

// Match owns two combatants for the duration of one round
// Tick must be called from a single goroutine
type Match struct {
	id     uuid.UUID
	p1, p2 *fighter.Combatant
	stats  *status.Registry

	// Cached metric pointers
	ticks, hits, blocks, clashes, knockouts *atomic.Int64
	damage                                  [2]*status.Gauge
	elapsedGauge                            *status.Gauge

	elapsed   time.Duration
	lastClash time.Time
	blocking  [2]bool
	over      bool
	outcome   Outcome
}

// New starts a match between p1 and p2
func New(p1, p2 *fighter.Combatant, opts ...Option) (*Match, error) {
	if p1 == nil || p2 == nil {
		return nil, errors.New("match: two combatants are required")
	}
	if p1 == p2 {
		return nil, errors.New("match: a combatant cannot fight itself")
	}

	m := &Match{p1: p1, p2: p2}
	for _, opt := range opts {
		opt(m)
	}
	if m.id == uuid.Nil {
		m.id = uuid.New()
	}
	if m.stats == nil {
		m.stats = status.NewRegistry()
	}

	m.ticks = m.stats.Counters.Get(StatTicks)
	m.hits = m.stats.Counters.Get(StatHits)
	m.blocks = m.stats.Counters.Get(StatBlocks)
	m.clashes = m.stats.Counters.Get(StatClashes)
	m.knockouts = m.stats.Counters.Get(StatKnockouts)
	m.damage[0] = m.stats.Gauges.Get(StatDamageP1)
	m.damage[1] = m.stats.Gauges.Get(StatDamageP2)
	m.elapsedGauge = m.stats.Gauges.Get(StatElapsed)
	m.stats.Labels.Get(LabelID).Store(m.id.String())
	m.stats.Labels.Get(LabelOutcome).Store(OutcomePending.String())

	log.Printf("[match] %s start: %s vs %s", m.id, p1.Name(), p2.Name())
	return m, nil
}

// Tick advances the match by dt: p1 then p2, hits both ways, then outcome
// No-op once the match is over
func (m *Match) Tick(dt time.Duration) {
	if m.over {
		return
	}
	alive := [2]bool{m.p1.IsAlive(), m.p2.IsAlive()}

	m.p1.Update(dt, m.p2)
	m.p2.Update(dt, m.p1)

	m.exchange(m.p1, m.p2, 1)
	m.exchange(m.p2, m.p1, 0)

	if ct := m.p1.ClashTime(); !ct.IsZero() && !ct.Equal(m.lastClash) {
		m.lastClash = ct
		m.clashes.Add(1)
	}

	for i, c := range m.Fighters() {
		if alive[i] && !c.IsAlive() {
			m.knockouts.Add(1)
			log.Printf("[match] %s knockout: %s", m.id, c.Name())
		}
	}

	m.elapsed += dt
	m.elapsedGauge.Set(m.elapsed.Seconds())
	m.ticks.Add(1)

	m.detectOutcome()
}

// exchange adjudicates one attacker's swing against the defender at index d
func (m *Match) exchange(attacker, defender *fighter.Combatant, d int) {
	if defender.IsHit(attacker) {
		dmg := attacker.AttackDamage()
		defender.TakeDamage(dmg)
		m.hits.Add(1)
		m.damage[d].Add(dmg)
	}

	// One block per swing, not per tick
	blocking := defender.IsBlockingDamage()
	if blocking && !m.blocking[d] {
		m.blocks.Add(1)
	}
	m.blocking[d] = blocking
}

// detectOutcome withholds the result until every death animation has finished
func (m *Match) detectOutcome() {
	h1, h2 := m.p1.Health(), m.p2.Health()
	if h1 > 0 && h2 > 0 {
		return
	}
	for _, c := range m.Fighters() {
		if !c.IsAlive() && !c.DeathFinished() {
			return
		}
	}

	switch {
	case h1 == h2:
		m.outcome = OutcomeDraw
	case h1 > 0:
		m.outcome = OutcomeP1
	default:
		m.outcome = OutcomeP2
	}
	m.over = true
	m.stats.Labels.Get(LabelOutcome).Store(m.outcome.String())
	log.Printf("[match] %s over after %s: %s | %s", m.id, m.elapsed.Truncate(time.Millisecond), m.outcome, m.stats.Summary())
}

// ID returns the match id
func (m *Match) ID() uuid.UUID { return m.id }

// P1 returns the left-side combatant
func (m *Match) P1() *fighter.Combatant { return m.p1 }

// P2 returns the right-side combatant
func (m *Match) P2() *fighter.Combatant { return m.p2 }

// Fighters returns both combatants in update order
func (m *Match) Fighters() [2]*fighter.Combatant {
	return [2]*fighter.Combatant{m.p1, m.p2}
}

func (m *Match) Over() bool              { return m.over }
func (m *Match) Outcome() Outcome        { return m.outcome }
func (m *Match) Elapsed() time.Duration  { return m.elapsed }
func (m *Match) Stats() *status.Registry { return m.stats }

// Winner returns the winning combatant, nil while pending or on a draw
func (m *Match) Winner() *fighter.Combatant {
	switch m.outcome {
	case OutcomeP1:
		return m.p1
	case OutcomeP2:
		return m.p2
	}
	return nil
}
