package game

import (
	"sort"

	"github.com/KirkDiggler/rogue-api/internal/entities"
)

// Frame is one render-agnostic view of the session for a client. Tiles
// the player has never seen are blanked; entities appear only on
// currently visible tiles. The frame carries data, not layout; clients
// own presentation.
type Frame struct {
	SessionID string `json:"session_id"`
	Turn      int    `json:"turn"`
	GameOver  bool   `json:"game_over"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Tiles has one row per map row: '#' wall, '.' floor, ' ' for
	// tiles the player has not explored.
	Tiles []string `json:"tiles"`

	// Visible mirrors Tiles with '*' for tiles in the current field of
	// view, so clients can dim remembered terrain.
	Visible []string `json:"visible"`

	Sprites []Sprite `json:"sprites"`

	Player *PlayerView `json:"player,omitempty"`

	Targeting *TargetingView `json:"targeting,omitempty"`
}

// Sprite is one drawable entity.
type Sprite struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Kind  string `json:"kind"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// ItemView is one carried item.
type ItemView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerView is the player's stat block.
type PlayerView struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	MP      int `json:"mp,omitempty"`
	MaxMP   int `json:"max_mp,omitempty"`
	Level   int `json:"level"`
	XP      int `json:"xp"`
	XPToGo  int `json:"xp_to_go"`
	Power   int `json:"power"`
	Defense int `json:"defense"`

	Effects   []entities.Effect `json:"effects,omitempty"`
	Inventory []ItemView        `json:"inventory,omitempty"`

	// Equipment maps slot name to worn item name.
	Equipment map[string]string `json:"equipment,omitempty"`

	Spells  []string `json:"spells,omitempty"`
	Recipes []string `json:"recipes,omitempty"`
}

// TargetingView is the cursor overlay while targeting is active.
type TargetingView struct {
	CursorX    int    `json:"cursor_x"`
	CursorY    int    `json:"cursor_y"`
	TargetID   string `json:"target_id,omitempty"`
	TargetName string `json:"target_name,omitempty"`
}

// BuildFrame renders the session into a Frame.
func (s *Session) BuildFrame() *Frame {
	width, height := s.gameMap.Width(), s.gameMap.Height()
	f := &Frame{
		SessionID: s.id,
		Turn:      s.turn,
		GameOver:  s.gameOver,
		Width:     width,
		Height:    height,
		Tiles:     make([]string, 0, height),
		Visible:   make([]string, 0, height),
	}

	for y := 0; y < height; y++ {
		tiles := make([]byte, width)
		vis := make([]byte, width)
		for x := 0; x < width; x++ {
			pos := entities.Position{X: x, Y: y}
			switch {
			case !s.explored[pos]:
				tiles[x] = ' '
			case s.gameMap.IsWall(pos):
				tiles[x] = '#'
			default:
				tiles[x] = '.'
			}
			if s.visible[pos] {
				vis[x] = '*'
			} else {
				vis[x] = ' '
			}
		}
		f.Tiles = append(f.Tiles, string(tiles))
		f.Visible = append(f.Visible, string(vis))
	}

	for _, e := range s.entities {
		if !s.visible[e.Position] {
			continue
		}
		f.Sprites = append(f.Sprites, Sprite{
			ID:    e.GetID(),
			Name:  e.Name,
			Glyph: string(e.Glyph),
			Kind:  e.GetType(),
			X:     e.Position.X,
			Y:     e.Position.Y,
		})
	}
	// Blocking entities draw last so actors sit on top of corpses and
	// loot sharing their tile.
	sort.SliceStable(f.Sprites, func(i, j int) bool {
		return spriteLayer(f.Sprites[i].Kind) < spriteLayer(f.Sprites[j].Kind)
	})

	if s.player != nil {
		f.Player = s.playerView()
	}

	if s.targeting.Active() {
		tv := &TargetingView{}
		if pos, ok := s.targeting.Cursor(); ok {
			tv.CursorX, tv.CursorY = pos.X, pos.Y
		}
		if t := s.targeting.CurrentTarget(); t != nil {
			tv.TargetID = t.GetID()
			tv.TargetName = t.Name
		}
		f.Targeting = tv
	}

	return f
}

func spriteLayer(kind string) int {
	switch kind {
	case entities.KindScenery:
		return 0
	case entities.KindItem:
		return 1
	default:
		return 2
	}
}

func (s *Session) playerView() *PlayerView {
	p := s.player
	pv := &PlayerView{
		HP:      p.HP(),
		MaxHP:   p.MaxHP(),
		Power:   entities.EffectivePower(p),
		Defense: entities.EffectiveDefense(p),
	}

	if m := p.Mana(); m != nil {
		pv.MP = m.MP()
		pv.MaxMP = m.MaxMP()
	}
	if lvl := p.Level(); lvl != nil {
		pv.Level = lvl.Level
		pv.XP = lvl.XP
		pv.XPToGo = lvl.XPToNextLevel() - lvl.XP
	}
	if se := p.StatusEffects(); se != nil {
		pv.Effects = se.All()
	}
	if inv := p.Inventory(); inv != nil {
		for _, held := range inv.Items() {
			pv.Inventory = append(pv.Inventory, ItemView{ID: held.GetID(), Name: held.Name})
		}
	}
	if eq := p.Equipment(); eq != nil {
		worn := make(map[string]string, eq.Count())
		for _, slot := range eq.Slots() {
			worn[string(slot)] = eq.Worn(slot).Name
		}
		if len(worn) > 0 {
			pv.Equipment = worn
		}
	}
	if sb := p.Spellbook(); sb != nil {
		pv.Spells = sb.IDs()
	}
	if rb := p.RecipeBook(); rb != nil {
		pv.Recipes = rb.IDs()
	}

	return pv
}
