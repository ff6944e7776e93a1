package item

import "github.com/KirkDiggler/rogue-api/internal/entities"

// UseItemInput defines the request for using a consumable. Target is
// only consulted for items that need one; everything else applies to
// the user.
type UseItemInput struct {
	User   *entities.Entity
	Item   *entities.Entity
	Target *entities.Entity
}

// UseItemOutput reports what using the item did. Used doubles as the
// consumption flag: a false Used means the item stays in the
// inventory and no turn should pass.
type UseItemOutput struct {
	Used         bool
	Message      string
	Healed       int
	DamageDealt  int
	ManaRestored int
	// TargetDied is set when a damage item killed its target; death
	// sequencing is the caller's job.
	TargetDied bool
}
