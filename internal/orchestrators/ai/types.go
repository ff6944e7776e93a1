package ai

import "github.com/KirkDiggler/rogue-api/internal/entities"

// ProcessTurnsInput carries the player and the full entity list for
// one coordinator pass. Monsters act in the list's order, and the
// list doubles as the collision set for movement.
type ProcessTurnsInput struct {
	Player   *entities.Entity
	Entities []*entities.Entity
}

// ProcessTurnsOutput reports the outcome of a coordinator pass.
type ProcessTurnsOutput struct {
	// PlayerDied is true when a monster's attack killed the player
	// during this pass.
	PlayerDied bool
}
