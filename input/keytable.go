package input

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to actions for one player
type KeyTable struct {
	// Special keys (arrows, function keys)
	SpecialKeys map[tcell.Key]Action

	// Rune bindings, stored lowercase
	Runes map[rune]Action
}

// DefaultKeyTable returns the default bindings for player 1 or 2
// Player 1: a/d move, w jump, f/g/h attacks
// Player 2: arrows move, up jumps, j/k/l attacks
func DefaultKeyTable(player int) *KeyTable {
	if player == 2 {
		return &KeyTable{
			SpecialKeys: map[tcell.Key]Action{
				tcell.KeyLeft:  ActionMoveLeft,
				tcell.KeyRight: ActionMoveRight,
				tcell.KeyUp:    ActionJump,
			},
			Runes: map[rune]Action{
				'j': ActionLight,
				'k': ActionMedium,
				'l': ActionHeavy,
			},
		}
	}
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{},
		Runes: map[rune]Action{
			'a': ActionMoveLeft,
			'd': ActionMoveRight,
			'w': ActionJump,
			'f': ActionLight,
			'g': ActionMedium,
			'h': ActionHeavy,
		},
	}
}

// Lookup resolves a key event to an action
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := kt.Runes[unicode.ToLower(ev.Rune())]
		return a, ok && a != ActionNone
	}
	a, ok := kt.SpecialKeys[ev.Key()]
	return a, ok && a != ActionNone
}

// BindRune overrides a rune binding; ActionNone unbinds
func (kt *KeyTable) BindRune(r rune, action string) error {
	a, err := ParseAction(action)
	if err != nil {
		return fmt.Errorf("bind %q: %w", r, err)
	}
	r = unicode.ToLower(r)
	if a == ActionNone {
		delete(kt.Runes, r)
		return nil
	}
	kt.Runes[r] = a
	return nil
}
