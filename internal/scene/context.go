// Package scene assembles the two generated scenes: the menu and the
// gameplay scene.
//
// Cross-scene state (the manager node, the menu panel) flows through an
// explicit Context owned by the pipeline run; there is no self-enforcing
// singleton. The menu build deposits its refs into the context and the
// gameplay build consumes them.
package scene

import (
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/build"
	"github.com/HobanGames/Reckless/internal/layers"
	"github.com/HobanGames/Reckless/internal/prefab"
)

// Scene names.
const (
	MenuName     = "MainMenu"
	GameplayName = "Gameplay"
)

// GroundLayer is the partition the gameplay scene places its ground on.
const GroundLayer = "Ground"

// Manager operation names, matching the GameManager artifact's entry points.
const (
	OpBeginGameplay   = "begin_gameplay"
	OpTerminate       = "terminate"
	OpHealthChanged   = "health_changed"
	OpPositionChanged = "position_changed"
)

// Context carries everything scene assembly needs, including the cross-scene
// refs the menu build produces. Lifecycle is owned by the pipeline run.
type Context struct {
	Store   *asset.Store
	Types   *build.Registry
	Layers  *layers.Table
	Prefabs prefab.Handles

	// Deposited by BuildMenu, consumed by BuildGameplay.
	ManagerScene string
	Manager      *asset.Node
	MenuPanel    *asset.Node
}

// managerRef returns a cross-scene ref to a manager operation.
func (c *Context) managerRef(op string) asset.Ref {
	return asset.Ref{Kind: asset.RefNode, Scene: c.ManagerScene, Node: c.Manager.ID, Op: op}
}
