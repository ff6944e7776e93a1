package combat

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// ResolveAttackInput identifies the two sides of a melee attack. Both
// entities need combat stats and the defender needs health.
type ResolveAttackInput struct {
	Attacker *entities.Entity
	Defender *entities.Entity
}

// ResolveAttackOutput reports the resolved damage.
type ResolveAttackOutput struct {
	Damage       int
	DefenderDied bool
}

// HandleDeathInput identifies a dead entity to announce.
type HandleDeathInput struct {
	Victim         *entities.Entity
	KilledByPlayer bool
}

// HandleDeathOutput carries the XP the death is worth to its killer.
type HandleDeathOutput struct {
	XPValue int
}

// AwardXPInput grants Amount experience to Recipient. Amounts of zero
// or less are ignored.
type AwardXPInput struct {
	Recipient *entities.Entity
	Amount    int
}

// AwardXPOutput reports the final award after bonuses and whether it
// crossed a level threshold. NewLevel is set only when LeveledUp.
type AwardXPOutput struct {
	XPAwarded int
	LeveledUp bool
	NewLevel  int
}
