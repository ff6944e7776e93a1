// Package builders provides fluent test builders for entities.
package builders

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// MonsterBuilder builds monster entities with overridable stats.
type MonsterBuilder struct {
	entity  *entities.Entity
	health  *entities.Health
	combat  *entities.Combat
	level   *entities.Level
	effects *entities.StatusEffects
}

// NewMonsterBuilder creates a builder with orc-like defaults.
func NewMonsterBuilder(id, name string) *MonsterBuilder {
	e := entities.New(id, entities.KindMonster, name, 'o', entities.Position{})
	e.BlocksMovement = true
	return &MonsterBuilder{
		entity:  e,
		health:  entities.NewHealth(10),
		combat:  entities.NewCombat(3, 0),
		level:   entities.NewLevel(1, 35),
		effects: entities.NewStatusEffects(),
	}
}

// WithGlyph sets the display glyph.
func (b *MonsterBuilder) WithGlyph(glyph rune) *MonsterBuilder {
	b.entity.Glyph = glyph
	return b
}

// WithPosition places the monster.
func (b *MonsterBuilder) WithPosition(x, y int) *MonsterBuilder {
	b.entity.MoveTo(entities.Position{X: x, Y: y})
	return b
}

// WithHealth sets maximum hit points, starting at full.
func (b *MonsterBuilder) WithHealth(maxHP int) *MonsterBuilder {
	b.health = entities.NewHealth(maxHP)
	return b
}

// WithCombat sets power and defense.
func (b *MonsterBuilder) WithCombat(power, defense int) *MonsterBuilder {
	b.combat = entities.NewCombat(power, defense)
	return b
}

// WithXPValue sets the XP awarded for killing the monster.
func (b *MonsterBuilder) WithXPValue(xp int) *MonsterBuilder {
	b.level.XPValue = xp
	return b
}

// WithEffect applies a status effect before build.
func (b *MonsterBuilder) WithEffect(t entities.EffectType, duration, power int) *MonsterBuilder {
	b.effects.Add(t, duration, power)
	return b
}

// Build assembles the entity.
func (b *MonsterBuilder) Build() *entities.Entity {
	b.entity.Attach(b.health)
	b.entity.Attach(b.combat)
	b.entity.Attach(b.level)
	b.entity.Attach(b.effects)
	return b.entity
}

// ItemBuilder builds item entities.
type ItemBuilder struct {
	entity *entities.Entity
}

// NewItemBuilder creates a builder for a bare item entity.
func NewItemBuilder(id, name string) *ItemBuilder {
	return &ItemBuilder{
		entity: entities.New(id, entities.KindItem, name, '!', entities.Position{}),
	}
}

// WithGlyph sets the display glyph.
func (b *ItemBuilder) WithGlyph(glyph rune) *ItemBuilder {
	b.entity.Glyph = glyph
	return b
}

// WithPosition places the item on the ground.
func (b *ItemBuilder) WithPosition(x, y int) *ItemBuilder {
	b.entity.MoveTo(entities.Position{X: x, Y: y})
	return b
}

// WithUse attaches a consumable Item component.
func (b *ItemBuilder) WithUse(item *entities.Item) *ItemBuilder {
	b.entity.Attach(item)
	return b
}

// WithEquipmentStats makes the item equippable.
func (b *ItemBuilder) WithEquipmentStats(stats *entities.EquipmentStats) *ItemBuilder {
	b.entity.Attach(stats)
	return b
}

// WithCraftingTags makes the item a consumable crafting ingredient.
func (b *ItemBuilder) WithCraftingTags(tags ...string) *ItemBuilder {
	b.entity.Attach(entities.NewCrafting(true, false, tags...))
	return b
}

// Build returns the assembled item.
func (b *ItemBuilder) Build() *entities.Entity {
	return b.entity
}
