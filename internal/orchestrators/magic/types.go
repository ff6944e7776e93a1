package magic

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// CanCastInput asks whether Caster can cast the spell right now.
type CanCastInput struct {
	Caster  *entities.Entity
	SpellID string
}

// CanCastOutput reports the verdict. Reason is player-facing and set
// only when CanCast is false. Spell carries the resolved definition
// whenever one exists, so callers can read range and targeting mode
// without a second lookup.
type CanCastOutput struct {
	CanCast bool
	Reason  string
	Spell   entities.Spell
}

// CastInput casts a spell at Target. Self-targeted spells pass the
// caster as Target. Candidates supplies the entities an area spell may
// splash onto; it is ignored for non-area spells.
type CastInput struct {
	Caster     *entities.Entity
	Target     *entities.Entity
	SpellID    string
	Candidates []*entities.Entity
}

// CastOutput reports the handler's result for the primary target and,
// for area spells, each splashed candidate. A failed precondition
// comes back as Result.Success == false with the reason as the
// message, never as an error.
type CastOutput struct {
	Spell       entities.Spell
	Result      EffectResult
	AreaResults []AreaResult
}

// AreaResult pairs a splashed entity with what the handler did to it.
type AreaResult struct {
	Target *entities.Entity
	Result EffectResult
}

// RegenerateManaInput identifies the entity regenerating mana.
type RegenerateManaInput struct {
	Target *entities.Entity
}

// RegenerateManaOutput reports how much mana the tick restored.
type RegenerateManaOutput struct {
	Restored int
}
