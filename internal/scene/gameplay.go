package scene

import (
	"github.com/HobanGames/Reckless/internal/artifact"
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/errors"
	"github.com/HobanGames/Reckless/internal/layers"
	"github.com/HobanGames/Reckless/internal/ui"
)

// GameplayResult is the outcome of the gameplay build.
type GameplayResult struct {
	Scene *asset.Scene

	// LayerWarning is set when the layer table had no room for the ground
	// partition. Non-fatal: the scene then references a partition that does
	// not exist, a documented degradation.
	LayerWarning string
}

// BuildGameplay assembles and persists the gameplay scene.
//
// All cross-references are wired against live instances, never against the
// source prefabs: instancing happens first, then the camera's follow target
// and the enemy's pursuit target are patched onto the player instance. Any
// wiring failure aborts before the scene is persisted.
func BuildGameplay(ctx *Context) (GameplayResult, error) {
	for _, typ := range []string{artifact.TypeCameraFollow, artifact.TypeHUDController} {
		if err := ctx.Types.Resolve(typ); err != nil {
			return GameplayResult{}, err
		}
	}
	if ctx.Prefabs.Player == nil || ctx.Prefabs.Enemy == nil {
		return GameplayResult{}, errors.New(errors.EInternal, "gameplay build requires assembled prefab handles")
	}

	result := GameplayResult{}

	// Ground partition. A full table degrades to a warning, not an error.
	ensured := ctx.Layers.Ensure(GroundLayer)
	if ensured.Full {
		result.LayerWarning = "layer_table_full: no free slot for layer " + GroundLayer
	}
	if ensured.Added {
		if err := layers.Save(ctx.Store, ctx.Layers); err != nil {
			return GameplayResult{}, err
		}
	}

	ground := asset.NewNode("Ground")
	ground.Layer = GroundLayer
	ground.AddComponent("transform", map[string]any{"scale": ui.Vec2{X: 40, Y: 40}})
	ground.AddComponent("physics.body", map[string]any{"static": true})

	// Instance first, patch after: live-instance wiring mirrors the prefab
	// forward-reference pattern at scene granularity.
	player := asset.Instantiate(ctx.Prefabs.Player)
	enemy := asset.Instantiate(ctx.Prefabs.Enemy)

	camera := asset.NewNode("MainCamera")
	camera.AddComponent("transform", nil)
	camera.AddComponent("render.camera", map[string]any{"orthographic": true, "size": 10.0})
	follow := camera.AddComponent(artifact.TypeCameraFollow, map[string]any{
		"smoothing": 5.0,
		"target":    nil,
	})

	follow.Fields["target"] = asset.NodeRef(player.Root)

	pursuit := enemy.Root.Component(artifact.TypeEnemyAI)
	if pursuit == nil {
		return GameplayResult{}, errors.New(errors.EInternal, "enemy instance is missing its EnemyAI component")
	}
	pursuit.Fields["target"] = asset.NodeRef(player.Root)

	// HUD: health bar and coordinate readout, driven by the cross-scene
	// manager's update entry points.
	hudRoot := asset.NewNode("HUD")
	canvas := ui.Canvas(hudRoot, "HUDCanvas")
	bar := ui.ValueBar(canvas, "HealthBar", ui.Layout{
		AnchorMin: ui.Vec2{X: 0, Y: 1},
		AnchorMax: ui.Vec2{X: 0, Y: 1},
		Offset:    ui.Vec2{X: 16, Y: -16},
		Size:      ui.Vec2{X: 240, Y: 24},
	})
	coords := ui.Label(canvas, "CoordLabel", ui.Layout{
		AnchorMin: ui.Vec2{X: 1, Y: 1},
		AnchorMax: ui.Vec2{X: 1, Y: 1},
		Offset:    ui.Vec2{X: -16, Y: -16},
		Size:      ui.Vec2{X: 200, Y: 24},
	}, "0.0, 0.0")
	hudRoot.AddComponent(artifact.TypeHUDController, map[string]any{
		"health_bar":      asset.NodeRef(bar.Fill),
		"coord_text":      asset.NodeRef(coords),
		"health_source":   ctx.managerRef(OpHealthChanged),
		"position_source": ctx.managerRef(OpPositionChanged),
	})

	nodes := []*asset.Node{ground, camera, player.Root, enemy.Root, hudRoot}

	// Entering gameplay hides the menu panel carried over from the menu scene.
	if ctx.MenuPanel != nil {
		setup := asset.NewNode("SceneSetup")
		setup.AddComponent("scene.activation", map[string]any{
			"deactivate": []any{asset.CrossSceneNodeRef(ctx.ManagerScene, ctx.MenuPanel)},
		})
		nodes = append(nodes, setup)
	}

	sc := &asset.Scene{Name: GameplayName, Nodes: nodes}
	if err := ctx.Store.SaveScene(sc); err != nil {
		return GameplayResult{}, err
	}

	result.Scene = sc
	return result, nil
}
