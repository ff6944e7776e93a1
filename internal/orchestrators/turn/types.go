package turn

import "github.com/KirkDiggler/rogue-api/internal/entities"

// ActionKind names a player action.
type ActionKind string

// Player actions the turn pipeline understands.
const (
	ActionMove      ActionKind = "move"
	ActionWait      ActionKind = "wait"
	ActionPickup    ActionKind = "pickup"
	ActionDrop      ActionKind = "drop"
	ActionUseItem   ActionKind = "use_item"
	ActionEquip     ActionKind = "equip"
	ActionUnequip   ActionKind = "unequip"
	ActionCast      ActionKind = "cast"
	ActionCraft     ActionKind = "craft"
	ActionAutoCraft ActionKind = "auto_craft"
	ActionQuit      ActionKind = "quit"
)

// Action is one decoded player command. Only the fields the Kind needs
// are read; the rest stay zero.
type Action struct {
	Kind          ActionKind
	DX            int
	DY            int
	ItemID        string
	Slot          string
	SpellID       string
	TargetID      string
	IngredientIDs []string
}

// ExecuteTurnInput carries the acting player and their action.
type ExecuteTurnInput struct {
	Player *entities.Entity
	Action Action
}

// ExecuteTurnOutput reports what one turn did. TurnConsumed false means
// the action failed a precondition and the world did not advance.
type ExecuteTurnOutput struct {
	TurnConsumed bool
	GameOver     bool
	Quit         bool
	Message      string
}
