package game

import (
	"context"

	"github.com/KirkDiggler/rogue-api/internal/entities"
	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/repositories/gamestate"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/world"
)

// snapshot captures the full session state. Items held in inventories
// or worn as equipment are flattened into the entity list with HeldBy
// pointing at their carrier; restore re-links them.
func (s *Session) snapshot() *gamestate.Snapshot {
	snap := &gamestate.Snapshot{
		SessionID:   s.id,
		Turn:        s.turn,
		GameOver:    s.gameOver,
		RNGSeed:     s.rng.Seed(),
		RNGPosition: s.rng.Position(),
		Map:         s.mapSnapshot(),
	}
	if s.player != nil {
		snap.PlayerID = s.player.GetID()
	}

	for _, e := range s.entities {
		snap.Entities = append(snap.Entities, entitySnapshot(e, ""))
		if inv := e.Inventory(); inv != nil {
			for _, held := range inv.Items() {
				snap.Entities = append(snap.Entities, entitySnapshot(held, e.GetID()))
			}
		}
		if eq := e.Equipment(); eq != nil {
			for _, slot := range eq.Slots() {
				snap.Entities = append(snap.Entities, entitySnapshot(eq.Worn(slot), e.GetID()))
			}
		}
	}

	return snap
}

func (s *Session) mapSnapshot() gamestate.MapSnapshot {
	width, height := s.gameMap.Width(), s.gameMap.Height()
	ms := gamestate.MapSnapshot{
		Width:    width,
		Height:   height,
		Rows:     make([]string, 0, height),
		Explored: make([]string, 0, height),
	}
	for y := 0; y < height; y++ {
		tiles := make([]byte, width)
		seen := make([]byte, width)
		for x := 0; x < width; x++ {
			pos := entities.Position{X: x, Y: y}
			if s.gameMap.IsWall(pos) {
				tiles[x] = '#'
			} else {
				tiles[x] = '.'
			}
			if s.explored[pos] {
				seen[x] = '*'
			} else {
				seen[x] = ' '
			}
		}
		ms.Rows = append(ms.Rows, string(tiles))
		ms.Explored = append(ms.Explored, string(seen))
	}
	return ms
}

func entitySnapshot(e *entities.Entity, heldBy string) gamestate.EntitySnapshot {
	es := gamestate.EntitySnapshot{
		ID:             e.GetID(),
		Kind:           e.GetType(),
		Name:           e.Name,
		Glyph:          string(e.Glyph),
		Position:       e.Position,
		BlocksMovement: e.BlocksMovement,
		HeldBy:         heldBy,
	}

	if h := e.Health(); h != nil {
		es.Health = &gamestate.HealthSnapshot{Current: h.HP(), Max: h.MaxHP()}
	}
	if cmb := e.Combat(); cmb != nil {
		c := *cmb
		es.Combat = &c
	}
	if lvl := e.Level(); lvl != nil {
		l := *lvl
		es.Level = &l
	}
	if m := e.Mana(); m != nil {
		es.Mana = &gamestate.ManaSnapshot{Current: m.MP(), Max: m.MaxMP(), Regen: m.RegenRate()}
	}
	if se := e.StatusEffects(); se != nil {
		es.StatusEffects = &gamestate.StatusEffectsSnapshot{Effects: se.All()}
	}
	if inv := e.Inventory(); inv != nil {
		is := &gamestate.InventorySnapshot{Capacity: inv.Capacity()}
		for _, held := range inv.Items() {
			is.ItemIDs = append(is.ItemIDs, held.GetID())
		}
		es.Inventory = is
	}
	if eq := e.Equipment(); eq != nil {
		worn := make(map[string]string, eq.Count())
		for _, slot := range eq.Slots() {
			worn[string(slot)] = eq.Worn(slot).GetID()
		}
		es.Equipment = &gamestate.EquipmentSnapshot{Worn: worn}
	}
	if sb := e.Spellbook(); sb != nil {
		es.Spellbook = &gamestate.SpellbookSnapshot{SpellIDs: sb.IDs()}
	}
	if rb := e.RecipeBook(); rb != nil {
		es.RecipeBook = &gamestate.RecipeBookSnapshot{RecipeIDs: rb.IDs()}
	}
	if it := e.Item(); it != nil {
		i := *it
		es.Item = &i
	}
	if stats := e.EquipmentStats(); stats != nil {
		st := *stats
		es.Equippable = &st
	}
	if cr := e.Crafting(); cr != nil {
		es.Crafting = &gamestate.CraftingSnapshot{
			Tags:       cr.Tags(),
			Consumable: cr.Consumable,
			Craftable:  cr.Craftable,
		}
	}

	return es
}

// restoreMap rebuilds the tile grid from snapshot rows.
func restoreMap(ms *gamestate.MapSnapshot) *world.Map {
	m := world.NewMap(ms.Width, ms.Height)
	for y, row := range ms.Rows {
		for x, ch := range row {
			if ch == '#' {
				m.SetWall(entities.Position{X: x, Y: y}, true)
			}
		}
	}
	return m
}

// restore repopulates an assembled session from a snapshot. Entities
// are rebuilt in two passes so inventory and equipment references
// resolve regardless of snapshot order.
func (s *Session) restore(ctx context.Context, snap *gamestate.Snapshot) error {
	s.turn = snap.Turn
	s.gameOver = snap.GameOver

	byID := make(map[string]*entities.Entity, len(snap.Entities))
	for i := range snap.Entities {
		e, err := s.restoreEntity(ctx, &snap.Entities[i])
		if err != nil {
			return err
		}
		byID[e.GetID()] = e
	}

	for i := range snap.Entities {
		es := &snap.Entities[i]
		owner := byID[es.ID]
		if es.Inventory != nil {
			inv := owner.Inventory()
			for _, itemID := range es.Inventory.ItemIDs {
				held, ok := byID[itemID]
				if !ok {
					return errors.DataLossf("snapshot inventory of %q references missing entity %q", es.ID, itemID)
				}
				inv.Add(held)
			}
		}
		if es.Equipment != nil {
			eq := owner.Equipment()
			for slotName, itemID := range es.Equipment.Worn {
				slot, ok := entities.ParseSlot(slotName)
				if !ok {
					return errors.DataLossf("snapshot equipment of %q names unknown slot %q", es.ID, slotName)
				}
				worn, ok := byID[itemID]
				if !ok {
					return errors.DataLossf("snapshot equipment of %q references missing entity %q", es.ID, itemID)
				}
				eq.Equip(slot, worn)
			}
		}
	}

	for i := range snap.Entities {
		if snap.Entities[i].HeldBy == "" {
			s.Add(byID[snap.Entities[i].ID])
		}
	}

	if snap.PlayerID != "" {
		player, ok := byID[snap.PlayerID]
		if !ok {
			return errors.DataLossf("snapshot names missing player %q", snap.PlayerID)
		}
		s.player = player
	}

	for y, row := range snap.Map.Explored {
		for x, ch := range row {
			if ch == '*' {
				s.explored[entities.Position{X: x, Y: y}] = true
			}
		}
	}
	s.updateFOV()

	return nil
}

// restoreEntity rebuilds one entity and its components. Worn equipment
// bonuses were folded into the Combat snapshot when the item was
// equipped, so re-linking the item must not re-apply them; restore
// goes straight to the component.
func (s *Session) restoreEntity(ctx context.Context, es *gamestate.EntitySnapshot) (*entities.Entity, error) {
	glyph := '?'
	for _, r := range es.Glyph {
		glyph = r
		break
	}

	e := entities.New(es.ID, es.Kind, es.Name, glyph, es.Position)
	e.BlocksMovement = es.BlocksMovement

	if es.Health != nil {
		h := entities.NewHealth(es.Health.Max)
		h.SetHP(es.Health.Current)
		e.Attach(h)
	}
	if es.Combat != nil {
		cmb := *es.Combat
		e.Attach(&cmb)
	}
	if es.Level != nil {
		lvl := *es.Level
		e.Attach(&lvl)
	}
	if es.Mana != nil {
		m := entities.NewMana(es.Mana.Max, es.Mana.Regen)
		m.SetMP(es.Mana.Current)
		e.Attach(m)
	}
	if es.StatusEffects != nil {
		se := entities.NewStatusEffects()
		for _, eff := range es.StatusEffects.Effects {
			se.Add(eff.Type, eff.Duration, eff.Power)
		}
		e.Attach(se)
	}
	if es.Inventory != nil {
		e.Attach(entities.NewInventory(es.Inventory.Capacity))
	}
	if es.Equipment != nil {
		e.Attach(entities.NewEquipment())
	}
	if es.Spellbook != nil {
		book := entities.NewSpellbook()
		for _, spellID := range es.Spellbook.SpellIDs {
			out, err := s.spellRepo.Get(ctx, spells.GetInput{SpellID: spellID})
			if err != nil {
				if errors.IsNotFound(err) {
					return nil, errors.DataLossf("snapshot spellbook of %q references unknown spell %q", es.ID, spellID)
				}
				return nil, errors.Wrapf(err, "restore spellbook of %q", es.ID)
			}
			book.Learn(out.Spell)
		}
		e.Attach(book)
	}
	if es.RecipeBook != nil {
		rb := entities.NewRecipeBook()
		for _, recipeID := range es.RecipeBook.RecipeIDs {
			rb.Discover(recipeID)
		}
		e.Attach(rb)
	}
	if es.Item != nil {
		it := *es.Item
		e.Attach(&it)
	}
	if es.Equippable != nil {
		stats := *es.Equippable
		e.Attach(&stats)
	}
	if es.Crafting != nil {
		e.Attach(entities.NewCrafting(es.Crafting.Consumable, es.Crafting.Craftable, es.Crafting.Tags...))
	}

	return e, nil
}
