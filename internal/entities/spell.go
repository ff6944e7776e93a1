package entities

import "sort"

// SpellSchool groups spells for display and spellbook filtering.
type SpellSchool string

// Spell schools.
const (
	SchoolEvocation     SpellSchool = "evocation"
	SchoolConjuration   SpellSchool = "conjuration"
	SchoolTransmutation SpellSchool = "transmutation"
)

// SpellTarget describes how a spell selects what it affects.
type SpellTarget string

// Spell targeting modes. Self affects only the caster, single needs
// one target entity in range, area affects everything within
// AreaRadius of a point, beam affects entities along a line from the
// caster.
const (
	TargetSelf   SpellTarget = "self"
	TargetSingle SpellTarget = "single"
	TargetArea   SpellTarget = "area"
	TargetBeam   SpellTarget = "beam"
)

// SpellEffect names the handler class a session binds to the spell at
// setup: direct damage, healing, a strength buff, or an arbitrary
// timed status.
type SpellEffect string

// Spell effect classes.
const (
	SpellEffectDamage SpellEffect = "damage"
	SpellEffectHeal   SpellEffect = "heal"
	SpellEffectBuff   SpellEffect = "buff"
	SpellEffectStatus SpellEffect = "status"
)

// Spell is a castable spell definition. Definitions are content, not
// state: they are loaded by the spell repository and shared across
// casters. What a cast actually does stays behind the handler
// registered for the spell ID; Effect and the fields below only tell
// the session which handler to construct.
type Spell struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	School      SpellSchool `json:"school"`
	ManaCost    int         `json:"mana_cost"`
	Power       int         `json:"power"`
	Target      SpellTarget `json:"target"`
	Range       int         `json:"range"`
	AreaRadius  int         `json:"area_radius,omitempty"`
	Effect      SpellEffect `json:"effect,omitempty"`
	StatusType  EffectType  `json:"status_type,omitempty"`
	Duration    int         `json:"duration,omitempty"`
	Verb        string      `json:"verb,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Spellbook tracks the spells an entity has learned.
type Spellbook struct {
	known map[string]Spell
}

// NewSpellbook creates an empty Spellbook component.
func NewSpellbook() *Spellbook {
	return &Spellbook{known: make(map[string]Spell)}
}

// Capability implements Component.
func (sb *Spellbook) Capability() Capability { return CapabilitySpellbook }

// Learn adds a spell. It returns false when the spell was already
// known.
func (sb *Spellbook) Learn(spell Spell) bool {
	if _, ok := sb.known[spell.ID]; ok {
		return false
	}
	sb.known[spell.ID] = spell
	return true
}

// Forget removes a spell by ID. It returns false when the spell was
// not known.
func (sb *Spellbook) Forget(id string) bool {
	if _, ok := sb.known[id]; !ok {
		return false
	}
	delete(sb.known, id)
	return true
}

// Knows reports whether a spell ID has been learned.
func (sb *Spellbook) Knows(id string) bool {
	_, ok := sb.known[id]
	return ok
}

// Get returns a known spell by ID.
func (sb *Spellbook) Get(id string) (Spell, bool) {
	s, ok := sb.known[id]
	return s, ok
}

// Count returns the number of known spells.
func (sb *Spellbook) Count() int { return len(sb.known) }

// IDs returns the known spell IDs in sorted order.
func (sb *Spellbook) IDs() []string {
	ids := make([]string, 0, len(sb.known))
	for id := range sb.known {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BySchool returns known spells of one school, sorted by ID.
func (sb *Spellbook) BySchool(school SpellSchool) []Spell {
	var spells []Spell
	for _, id := range sb.IDs() {
		if s := sb.known[id]; s.School == school {
			spells = append(spells, s)
		}
	}
	return spells
}
