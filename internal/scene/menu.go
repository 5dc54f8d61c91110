package scene

import (
	"github.com/HobanGames/Reckless/internal/artifact"
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/ui"
)

// BuildMenu assembles and persists the menu scene: the manager node, a UI
// canvas, and a menu panel with Start and Quit buttons wired to the manager's
// entry points. The manager's menu_panel field is wired before the persist;
// a wiring failure aborts before anything is saved.
//
// On success the manager and menu panel refs are deposited into ctx for the
// gameplay build.
func BuildMenu(ctx *Context) (*asset.Scene, error) {
	if err := ctx.Types.Resolve(artifact.TypeGameManager); err != nil {
		return nil, err
	}

	manager := asset.NewNode("GameManager")
	managerBehavior := manager.AddComponent(artifact.TypeGameManager, map[string]any{
		"menu_panel": nil,
	})

	sceneRoot := asset.NewNode("Menu")
	canvas := ui.Canvas(sceneRoot, "Canvas")

	panel := ui.Panel(canvas, "MenuPanel", ui.Centered(320, 240))
	ui.Button(panel, "StartButton", ui.Layout{
		AnchorMin: ui.Vec2{X: 0.5, Y: 0.5},
		AnchorMax: ui.Vec2{X: 0.5, Y: 0.5},
		Offset:    ui.Vec2{X: 0, Y: 40},
		Size:      ui.Vec2{X: 200, Y: 48},
	}, "Start", asset.OpRef(manager, OpBeginGameplay))
	ui.Button(panel, "QuitButton", ui.Layout{
		AnchorMin: ui.Vec2{X: 0.5, Y: 0.5},
		AnchorMax: ui.Vec2{X: 0.5, Y: 0.5},
		Offset:    ui.Vec2{X: 0, Y: -40},
		Size:      ui.Vec2{X: 200, Y: 48},
	}, "Quit", asset.OpRef(manager, OpTerminate))

	// Register the panel on the manager's UI sub-component before persisting.
	managerBehavior.Fields["menu_panel"] = asset.NodeRef(panel)

	sc := &asset.Scene{
		Name:  MenuName,
		Nodes: []*asset.Node{manager, sceneRoot},
	}
	if err := ctx.Store.SaveScene(sc); err != nil {
		return nil, err
	}

	ctx.ManagerScene = MenuName
	ctx.Manager = manager
	ctx.MenuPanel = panel
	return sc, nil
}
