package ws

import (
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/game"
	"github.com/KirkDiggler/rogue-api/internal/orchestrators/turn"
)

// Client command types.
const (
	CmdNewGame       = "new_game"
	CmdLoadGame      = "load_game"
	CmdListSaves     = "list_saves"
	CmdSave          = "save"
	CmdAction        = "action"
	CmdTargetStart   = "target_start"
	CmdTargetMove    = "target_move"
	CmdTargetCycle   = "target_cycle"
	CmdTargetConfirm = "target_confirm"
	CmdTargetCancel  = "target_cancel"
)

// Server message types.
const (
	MsgUpdate = "update"
	MsgSaves  = "saves"
	MsgSaved  = "saved"
	MsgError  = "error"
)

// Command is one decoded client message. Only the fields its Type
// needs are read.
type Command struct {
	Type          string   `json:"type"`
	SessionID     string   `json:"session_id,omitempty"`
	Action        string   `json:"action,omitempty"`
	DX            int      `json:"dx,omitempty"`
	DY            int      `json:"dy,omitempty"`
	ItemID        string   `json:"item_id,omitempty"`
	Slot          string   `json:"slot,omitempty"`
	SpellID       string   `json:"spell_id,omitempty"`
	TargetID      string   `json:"target_id,omitempty"`
	IngredientIDs []string `json:"ingredient_ids,omitempty"`
	Direction     int      `json:"direction,omitempty"`
}

// Message is one server-to-client message. Update messages carry the
// redrawn frame plus the log lines and raw events the command
// produced; the other types use the remaining fields.
type Message struct {
	Type       string          `json:"type"`
	Frame      *game.Frame     `json:"frame,omitempty"`
	Messages   []string        `json:"messages,omitempty"`
	Events     []EventEnvelope `json:"events,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	SessionIDs []string        `json:"session_ids,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// EventEnvelope wraps a simulation event with its type tag so clients
// can switch without sniffing payload fields.
type EventEnvelope struct {
	Type  events.Type  `json:"type"`
	Event events.Event `json:"data"`
}

// actionKinds is the set of action names accepted over the wire.
var actionKinds = map[turn.ActionKind]bool{
	turn.ActionMove:      true,
	turn.ActionWait:      true,
	turn.ActionPickup:    true,
	turn.ActionDrop:      true,
	turn.ActionUseItem:   true,
	turn.ActionEquip:     true,
	turn.ActionUnequip:   true,
	turn.ActionCast:      true,
	turn.ActionCraft:     true,
	turn.ActionAutoCraft: true,
	turn.ActionQuit:      true,
}

// decodeAction maps an action command onto the turn pipeline's action
// type.
func decodeAction(cmd Command) (turn.Action, error) {
	kind := turn.ActionKind(cmd.Action)
	if !actionKinds[kind] {
		return turn.Action{}, errors.InvalidArgumentf("unknown action %q", cmd.Action)
	}
	return turn.Action{
		Kind:          kind,
		DX:            cmd.DX,
		DY:            cmd.DY,
		ItemID:        cmd.ItemID,
		Slot:          cmd.Slot,
		SpellID:       cmd.SpellID,
		TargetID:      cmd.TargetID,
		IngredientIDs: cmd.IngredientIDs,
	}, nil
}

// envelopes wraps raw events for the wire.
func envelopes(evts []events.Event) []EventEnvelope {
	if len(evts) == 0 {
		return nil
	}
	wrapped := make([]EventEnvelope, 0, len(evts))
	for _, e := range evts {
		wrapped = append(wrapped, EventEnvelope{Type: e.Type(), Event: e})
	}
	return wrapped
}
