package game

import (
	"fmt"
	"unicode"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/events"
)

// eventMessage renders an event as a message-log line. Most events
// return ok false: their outcome already reads back through the action
// message (pickups, equips, casts), or they are bookkeeping the log
// never shows (mana changes, non-poison ticks).
func eventMessage(e events.Event) (string, bool) {
	switch ev := e.(type) {
	case events.CombatEvent:
		return fmt.Sprintf("%s attacks %s for %d damage!", ev.AttackerName, ev.DefenderName, ev.Damage), true
	case events.DeathEvent:
		return fmt.Sprintf("%s dies!", ev.EntityName), true
	case events.XPGainEvent:
		return fmt.Sprintf("You gain %d XP!", ev.XPGained), true
	case events.LevelUpEvent:
		return fmt.Sprintf("You advance to level %d!", ev.NewLevel), true
	case events.StatusEffectAppliedEvent:
		return fmt.Sprintf("%s is affected by %s for %d turns!",
			ev.EntityName, capitalize(ev.EffectType), ev.Duration), true
	case events.StatusEffectExpiredEvent:
		return fmt.Sprintf("%s's %s effect has worn off.",
			ev.EntityName, capitalize(ev.EffectType)), true
	case events.StatusEffectTickEvent:
		if ev.EffectType == string(entities.EffectPoison) && ev.Power > 0 {
			return fmt.Sprintf("%s takes %d poison damage!", ev.EntityName, ev.Power), true
		}
		return "", false
	default:
		return "", false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
