// Package artifact holds the fixed table of generated gameplay scripts and
// the emitter that writes them into the workspace.
//
// Bodies are opaque static text: the pipeline never parses them, it only
// hands them to the external builder. Behavioral content lives entirely in
// this table.
package artifact

// Artifact is one named script artifact with its full source body.
type Artifact struct {
	Name string // file name under Scripts/, including extension
	Body string
}

// Behavior type names the builder is expected to produce from these sources.
// The prefab and scene assemblers resolve components against these names.
const (
	TypePlayerController = "PlayerController"
	TypeGameManager      = "GameManager"
	TypeCameraFollow     = "CameraFollow"
	TypeEnemyAI          = "EnemyAI"
	TypeProjectile       = "Projectile"
	TypeHUDController    = "HUDController"
)

// Table returns the fixed artifact set, one entry per declared name.
func Table() []Artifact {
	return []Artifact{
		{Name: "player_controller.go", Body: playerControllerSrc},
		{Name: "game_manager.go", Body: gameManagerSrc},
		{Name: "camera_follow.go", Body: cameraFollowSrc},
		{Name: "enemy_ai.go", Body: enemyAISrc},
		{Name: "projectile.go", Body: projectileSrc},
		{Name: "hud_controller.go", Body: hudControllerSrc},
	}
}

const playerControllerSrc = `package behaviors

import "reckless.dev/engine"

// PlayerController moves the player from input actions and fires projectiles.
type PlayerController struct {
	engine.Behavior

	MoveSpeed    float64       ` + "`field:\"move_speed\"`" + `
	Health       float64       ` + "`field:\"health\"`" + `
	FireCooldown float64       ` + "`field:\"fire_cooldown\"`" + `
	Projectile   engine.Prefab ` + "`field:\"projectile\"`" + `

	cooldown float64
}

func (p *PlayerController) Update(dt float64) {
	move := p.Input().Vector("Move")
	p.Node().Translate(move.Scale(p.MoveSpeed * dt))

	p.cooldown -= dt
	if p.Input().Pressed("Fire") && p.cooldown <= 0 {
		aim := p.Input().Vector("Look")
		p.Spawn(p.Projectile, p.Node().Position(), aim)
		p.cooldown = p.FireCooldown
	}
}
`

const gameManagerSrc = `package behaviors

import "reckless.dev/engine"

// GameManager owns cross-scene game state: scene flow, player health,
// and the HUD update entry points.
type GameManager struct {
	engine.Behavior

	MenuPanel engine.NodeRef ` + "`field:\"menu_panel\"`" + `
}

func (g *GameManager) BeginGameplay() {
	g.Scenes().LoadNext()
}

func (g *GameManager) Terminate() {
	g.App().Quit()
}

func (g *GameManager) HealthChanged(fraction float64) {
	g.Emit("health_changed", fraction)
}

func (g *GameManager) PositionChanged(x, y float64) {
	g.Emit("position_changed", x, y)
}
`

const cameraFollowSrc = `package behaviors

import "reckless.dev/engine"

// CameraFollow keeps the camera trailing its target with smoothing.
type CameraFollow struct {
	engine.Behavior

	Target    engine.NodeRef ` + "`field:\"target\"`" + `
	Smoothing float64        ` + "`field:\"smoothing\"`" + `
}

func (c *CameraFollow) LateUpdate(dt float64) {
	target, ok := c.Resolve(c.Target)
	if !ok {
		return
	}
	pos := c.Node().Position()
	c.Node().SetPosition(pos.Lerp(target.Position(), c.Smoothing*dt))
}
`

const enemyAISrc = `package behaviors

import "reckless.dev/engine"

// EnemyAI pursues its target and deals contact damage.
type EnemyAI struct {
	engine.Behavior

	MoveSpeed    float64        ` + "`field:\"move_speed\"`" + `
	Health       float64        ` + "`field:\"health\"`" + `
	AttackDamage float64        ` + "`field:\"attack_damage\"`" + `
	Target       engine.NodeRef ` + "`field:\"target\"`" + `
}

func (e *EnemyAI) Update(dt float64) {
	target, ok := e.Resolve(e.Target)
	if !ok {
		return
	}
	dir := target.Position().Sub(e.Node().Position()).Normalize()
	e.Node().Translate(dir.Scale(e.MoveSpeed * dt))
}

func (e *EnemyAI) OnContact(other engine.Node) {
	if d, ok := engine.BehaviorOf[*PlayerController](other); ok {
		d.Health -= e.AttackDamage
	}
}
`

const projectileSrc = `package behaviors

import "reckless.dev/engine"

// Projectile travels in a straight line and expires after its lifetime.
type Projectile struct {
	engine.Behavior

	Speed    float64 ` + "`field:\"speed\"`" + `
	Damage   float64 ` + "`field:\"damage\"`" + `
	Lifetime float64 ` + "`field:\"lifetime\"`" + `

	age float64
}

func (p *Projectile) Update(dt float64) {
	p.Node().Translate(p.Node().Forward().Scale(p.Speed * dt))
	p.age += dt
	if p.age >= p.Lifetime {
		p.Node().Destroy()
	}
}

func (p *Projectile) OnContact(other engine.Node) {
	if e, ok := engine.BehaviorOf[*EnemyAI](other); ok {
		e.Health -= p.Damage
		p.Node().Destroy()
	}
}
`

const hudControllerSrc = `package behaviors

import "fmt"

import "reckless.dev/engine"

// HUDController drives the health bar fill and the coordinate readout from
// the manager's update signals.
type HUDController struct {
	engine.Behavior

	HealthBar engine.NodeRef ` + "`field:\"health_bar\"`" + `
	CoordText engine.NodeRef ` + "`field:\"coord_text\"`" + `
}

func (h *HUDController) Start() {
	h.On("health_changed", func(args ...any) {
		if bar, ok := h.Resolve(h.HealthBar); ok {
			bar.UI().SetFill(args[0].(float64))
		}
	})
	h.On("position_changed", func(args ...any) {
		if txt, ok := h.Resolve(h.CoordText); ok {
			txt.UI().SetText(fmt.Sprintf("%.1f, %.1f", args[0], args[1]))
		}
	})
}
`
