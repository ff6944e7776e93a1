package testutils

import (
	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// Default fixture stats. Chosen so combat math in tests stays small
// enough to follow by hand.
const (
	TestPlayerMaxHP   = 30
	TestPlayerPower   = 5
	TestPlayerDefense = 2
	TestPlayerMaxMP   = 20
	TestPlayerRegen   = 1

	TestOrcMaxHP   = 10
	TestOrcPower   = 3
	TestOrcDefense = 0
	TestOrcXPValue = 35
)

// CreateTestPlayer creates a fully equipped-for-play player entity:
// health, combat, level, mana, inventory, equipment, status effects,
// spellbook, and recipe book all attached.
func CreateTestPlayer(id string, pos entities.Position) *entities.Entity {
	player := entities.New(id, entities.KindPlayer, "Hero", '@', pos)
	player.BlocksMovement = true
	player.Attach(entities.NewHealth(TestPlayerMaxHP))
	player.Attach(entities.NewCombat(TestPlayerPower, TestPlayerDefense))
	player.Attach(entities.NewLevel(1, 0))
	player.Attach(entities.NewMana(TestPlayerMaxMP, TestPlayerRegen))
	player.Attach(entities.NewInventory(entities.DefaultInventoryCapacity))
	player.Attach(entities.NewEquipment())
	player.Attach(entities.NewStatusEffects())
	player.Attach(entities.NewSpellbook())
	player.Attach(entities.NewRecipeBook())
	return player
}

// CreateTestOrc creates a basic melee monster with health, combat,
// level, and status effects.
func CreateTestOrc(id string, pos entities.Position) *entities.Entity {
	orc := entities.New(id, entities.KindMonster, "Orc", 'o', pos)
	orc.BlocksMovement = true
	orc.Attach(entities.NewHealth(TestOrcMaxHP))
	orc.Attach(entities.NewCombat(TestOrcPower, TestOrcDefense))
	orc.Attach(entities.NewLevel(1, TestOrcXPValue))
	orc.Attach(entities.NewStatusEffects())
	return orc
}

// CreateTestHealingPotion creates a consumable healing item.
func CreateTestHealingPotion(id string, pos entities.Position) *entities.Entity {
	potion := entities.New(id, entities.KindItem, "Healing Potion", '!', pos)
	potion.Attach(&entities.Item{
		Kind:   "potion",
		Effect: entities.ItemEffectHeal,
		Amount: 10,
	})
	potion.Attach(entities.NewCrafting(true, true, "liquid", "restorative"))
	return potion
}

// CreateTestSword creates an equippable weapon granting attack power.
func CreateTestSword(id string, pos entities.Position) *entities.Entity {
	sword := entities.New(id, entities.KindItem, "Iron Sword", '/', pos)
	sword.Attach(&entities.EquipmentStats{
		Slot:       entities.SlotWeapon,
		PowerBonus: 3,
	})
	return sword
}

// CreateTestArmor creates an equippable chest piece granting defense
// and max hit points.
func CreateTestArmor(id string, pos entities.Position) *entities.Entity {
	armor := entities.New(id, entities.KindItem, "Chain Mail", '[', pos)
	armor.Attach(&entities.EquipmentStats{
		Slot:         entities.SlotArmor,
		DefenseBonus: 2,
		MaxHPBonus:   10,
	})
	return armor
}
