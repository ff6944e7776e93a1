package statuseffect

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// ApplyInput defines the request for applying a status effect
type ApplyInput struct {
	Target   *entities.Entity
	Type     entities.EffectType
	Duration int
	Power    int
}

// ApplyOutput defines the response for applying a status effect.
// Applied is false when the duration was not positive; Effect holds
// the post-merge state when it was.
type ApplyOutput struct {
	Applied bool
	Effect  entities.Effect
}

// ProcessInput defines the request for one turn of effect processing
type ProcessInput struct {
	Target *entities.Entity
}

// ProcessOutput defines the response for one turn of effect processing
type ProcessOutput struct {
	Died    bool
	Expired []entities.Effect
}

// RemoveInput defines the request for removing one effect
type RemoveInput struct {
	Target *entities.Entity
	Type   entities.EffectType
}

// RemoveOutput defines the response for removing one effect
type RemoveOutput struct {
	Removed bool
}

// ClearInput defines the request for stripping every effect
type ClearInput struct {
	Target *entities.Entity
}

// ClearOutput reports how many effects were stripped
type ClearOutput struct {
	Cleared int
}

// StatModifiersInput defines the request for reading stat modifiers
type StatModifiersInput struct {
	Target *entities.Entity
}

// StatModifiersOutput carries the additive stat contributions of the
// target's active effects
type StatModifiersOutput struct {
	Power   int
	Defense int
}
