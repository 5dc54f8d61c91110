// Package prefab assembles the three reusable object templates and owns
// their persisted lifecycle.
//
// PlayerTemplate's spawns-on-fire field references ProjectileTemplate, which
// must already be persisted when the reference is assigned. Assembly is
// therefore two-phase: build and save every prefab with reference fields
// left unset, then patch the references and re-save the affected prefabs.
// The fixed order here is the topological order of the (small, acyclic)
// template dependency graph.
package prefab

import (
	"github.com/HobanGames/Reckless/internal/artifact"
	"github.com/HobanGames/Reckless/internal/asset"
	"github.com/HobanGames/Reckless/internal/build"
)

// Template names.
const (
	PlayerName     = "PlayerTemplate"
	EnemyName      = "EnemyTemplate"
	ProjectileName = "ProjectileTemplate"
)

// Fixed default field values. Implementation constants, not derived.
const (
	playerMoveSpeed    = 5.0
	playerHealth       = 100.0
	playerFireCooldown = 0.25

	enemyMoveSpeed    = 3.5
	enemyHealth       = 50.0
	enemyAttackDamage = 10.0

	projectileSpeed    = 24.0
	projectileDamage   = 10.0
	projectileLifetime = 3.0
)

// Handles are the assembled prefabs, passed to the scene assembler.
// Scene assembly only instantiates these; it never mutates them.
type Handles struct {
	Player     *asset.Prefab
	Enemy      *asset.Prefab
	Projectile *asset.Prefab
}

// Assemble builds and persists the three templates.
// Order: Projectile, Enemy, Player, then the Player->Projectile reference is
// patched and Player re-saved. Behavior component types are resolved against
// the build registry before use; an unavailable type aborts the stage with
// E_TYPE_RESOLUTION before anything else is persisted.
func Assemble(store *asset.Store, reg *build.Registry) (Handles, error) {
	for _, typ := range []string{
		artifact.TypeProjectile,
		artifact.TypeEnemyAI,
		artifact.TypePlayerController,
	} {
		if err := reg.Resolve(typ); err != nil {
			return Handles{}, err
		}
	}

	projectile := buildProjectile()
	if err := store.SavePrefab(projectile); err != nil {
		return Handles{}, err
	}

	enemy := buildEnemy()
	if err := store.SavePrefab(enemy); err != nil {
		return Handles{}, err
	}

	player := buildPlayer()
	if err := store.SavePrefab(player); err != nil {
		return Handles{}, err
	}

	// Patch pass: ProjectileTemplate exists now, so the forward reference
	// can be assigned and PlayerTemplate re-saved.
	controller := player.Root.Component(artifact.TypePlayerController)
	controller.Fields["projectile"] = asset.PrefabRef(ProjectileName)
	if err := store.SavePrefab(player); err != nil {
		return Handles{}, err
	}

	return Handles{Player: player, Enemy: enemy, Projectile: projectile}, nil
}

func buildProjectile() *asset.Prefab {
	root := asset.NewNode("Projectile")
	root.AddComponent("transform", nil)
	root.AddComponent("physics.body", map[string]any{"kinematic": true, "radius": 0.15})
	root.AddComponent(artifact.TypeProjectile, map[string]any{
		"speed":    projectileSpeed,
		"damage":   projectileDamage,
		"lifetime": projectileLifetime,
	})
	return &asset.Prefab{Name: ProjectileName, Root: root}
}

func buildEnemy() *asset.Prefab {
	root := asset.NewNode("Enemy")
	root.AddComponent("transform", nil)
	root.AddComponent("physics.body", map[string]any{"radius": 0.5})
	root.AddComponent(artifact.TypeEnemyAI, map[string]any{
		"move_speed":    enemyMoveSpeed,
		"health":        enemyHealth,
		"attack_damage": enemyAttackDamage,
		// Pursuit target is wired per-scene against the live player instance.
		"target": nil,
	})
	return &asset.Prefab{Name: EnemyName, Root: root}
}

func buildPlayer() *asset.Prefab {
	root := asset.NewNode("Player")
	root.AddComponent("transform", nil)
	root.AddComponent("physics.body", map[string]any{"radius": 0.5})
	root.AddComponent(artifact.TypePlayerController, map[string]any{
		"move_speed":    playerMoveSpeed,
		"health":        playerHealth,
		"fire_cooldown": playerFireCooldown,
		// Assigned in the patch pass once ProjectileTemplate is persisted.
		"projectile": nil,
	})
	return &asset.Prefab{Name: PlayerName, Root: root}
}
