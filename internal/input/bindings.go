// Package input builds the persisted input binding scheme for the generated
// project: named actions bound to named controls, grouped per actor.
package input

import (
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/errors"
)

// Action value kinds.
const (
	KindValue   = "value"   // continuous value (vector axes, pointer deltas)
	KindTrigger = "trigger" // momentary trigger
)

// Binding binds one named control to an action. Composite bindings name the
// part of the composite the control feeds (up/down/left/right).
type Binding struct {
	Control string `yaml:"control"`
	Part    string `yaml:"part,omitempty"`
}

// Action is one named action with its kind and bound controls.
type Action struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Bindings []Binding `yaml:"bindings"`
}

// Group is a named group of actions; action names are unique within it.
type Group struct {
	Name    string   `yaml:"name"`
	Actions []Action `yaml:"actions"`
}

// Scheme is the persisted binding asset.
type Scheme struct {
	SchemaVersion string  `yaml:"schema_version"`
	Groups        []Group `yaml:"groups"`
}

// DefaultScheme returns the fixed scheme for the generated project:
// one "Player" group with Move, Look, and Fire.
func DefaultScheme() Scheme {
	return Scheme{
		SchemaVersion: asset.SchemaVersion,
		Groups: []Group{
			{
				Name: "Player",
				Actions: []Action{
					{
						Name: "Move",
						Kind: KindValue,
						Bindings: []Binding{
							// Composite: four keys combine into one vector value.
							{Control: "key.w", Part: "up"},
							{Control: "key.s", Part: "down"},
							{Control: "key.a", Part: "left"},
							{Control: "key.d", Part: "right"},
							{Control: "gamepad.left_stick"},
						},
					},
					{
						Name: "Look",
						Kind: KindValue,
						Bindings: []Binding{
							{Control: "pointer.delta"},
							{Control: "gamepad.right_stick"},
						},
					},
					{
						Name: "Fire",
						Kind: KindTrigger,
						Bindings: []Binding{
							{Control: "pointer.left"},
							{Control: "gamepad.right_trigger"},
						},
					},
				},
			},
		},
	}
}

// Validate checks scheme invariants: non-empty names, known kinds, and
// action names unique within each group.
func Validate(s Scheme) error {
	for _, g := range s.Groups {
		if g.Name == "" {
			return errors.New(errors.EInternal, "binding group with empty name")
		}
		seen := make(map[string]bool, len(g.Actions))
		for _, a := range g.Actions {
			if a.Name == "" {
				return errors.New(errors.EInternal, "action with empty name in group "+g.Name)
			}
			if a.Kind != KindValue && a.Kind != KindTrigger {
				return errors.New(errors.EInternal, "action "+a.Name+" has unknown kind "+a.Kind)
			}
			if seen[a.Name] {
				return errors.New(errors.EInternal, "duplicate action "+a.Name+" in group "+g.Name)
			}
			seen[a.Name] = true
		}
	}
	return nil
}

// Write validates and persists the scheme at Settings/InputActions.yaml.
func Write(store *asset.Store, s Scheme) error {
	if err := Validate(s); err != nil {
		return err
	}
	return store.SaveYAML(store.Layout.BindingsPath(), s)
}
