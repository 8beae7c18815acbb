package input

import (
	"fmt"
	"strings"
)

// actionRegistry maps canonical action names to actions
// Used by the key binding loader to resolve config strings
var actionRegistry = map[string]Action{
	"none":       ActionNone,
	"move_left":  ActionMoveLeft,
	"move_right": ActionMoveRight,
	"jump":       ActionJump,
	"light":      ActionLight,
	"medium":     ActionMedium,
	"heavy":      ActionHeavy,
}

// String returns the canonical action name
func (a Action) String() string {
	for name, act := range actionRegistry {
		if act == a && name != "none" {
			return name
		}
	}
	return "none"
}

// ParseAction resolves a canonical action name, case-insensitively
func ParseAction(name string) (Action, error) {
	a, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ActionNone, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// AttackActions lists attack actions in ascending weight
var AttackActions = [...]Action{ActionLight, ActionMedium, ActionHeavy}
