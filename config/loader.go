package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the external roster checked when no path is given
	DefaultConfigPath = "config/fighters.yaml"
)

//go:embed fighters.yaml
var embeddedRoster []byte

// EmbeddedRoster returns the built-in roster source
func EmbeddedRoster() []byte {
	return embeddedRoster
}

// LoadAuto loads the roster with priority: customPath > DefaultConfigPath > embedded
func LoadAuto(customPath string) (*Roster, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}
	if fileExists(DefaultConfigPath) {
		return LoadFile(DefaultConfigPath)
	}
	return Parse(embeddedRoster)
}

// LoadFile reads and validates a roster file
func LoadFile(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}
	roster, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return roster, nil
}

// Parse decodes and validates roster YAML
// Fighters are validated in id order so the reported error is deterministic
func Parse(data []byte) (*Roster, error) {
	var raw rawRoster
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}
	if len(raw.Fighters) == 0 {
		return nil, fmt.Errorf("roster: %w %q", ErrMissingField, "fighters")
	}

	ids := make([]string, 0, len(raw.Fighters))
	for id := range raw.Fighters {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	roster := &Roster{Fighters: make(map[string]*Fighter, len(ids))}
	for _, id := range ids {
		f, err := raw.Fighters[id].build(id)
		if err != nil {
			return nil, err
		}
		roster.Fighters[id] = f
	}
	return roster, nil
}

// Get returns a copy of the fighter so per-match tweaks never leak into the roster
func (r *Roster) Get(id string) (*Fighter, error) {
	f, ok := r.Fighters[id]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownFighter, id, r.IDs())
	}
	cp := *f
	cp.Hitboxes = make(map[string]Hitbox, len(f.Hitboxes))
	for k, v := range f.Hitboxes {
		cp.Hitboxes[k] = v
	}
	cp.Animations = make(map[string]Animation, len(f.Animations))
	for k, v := range f.Animations {
		cp.Animations[k] = v
	}
	return &cp, nil
}

// IDs returns fighter ids in sorted order
func (r *Roster) IDs() []string {
	ids := make([]string, 0, len(r.Fighters))
	for id := range r.Fighters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DisplayName title-cases a fighter name for the HUD
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
