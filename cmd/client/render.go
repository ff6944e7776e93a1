package main

import (
	"fmt"

	"github.com/KirkDiggler/rogue-api/internal/game"
	"github.com/KirkDiggler/rogue-api/internal/handlers/ws"
)

// serverMessage mirrors the server's wire shape. Raw event payloads
// are skipped on decode; the rendered log lines carry the same story.
type serverMessage struct {
	Type       string      `json:"type"`
	Frame      *game.Frame `json:"frame"`
	Messages   []string    `json:"messages"`
	SessionID  string      `json:"session_id"`
	SessionIDs []string    `json:"session_ids"`
	Error      string      `json:"error"`
}

func render(msg serverMessage) {
	switch msg.Type {
	case ws.MsgError:
		fmt.Println("error:", msg.Error)
	case ws.MsgSaves:
		if len(msg.SessionIDs) == 0 {
			fmt.Println("no saved sessions")
			return
		}
		fmt.Println("saved sessions:")
		for _, id := range msg.SessionIDs {
			fmt.Println(" ", id)
		}
	case ws.MsgSaved:
		fmt.Println("saved", msg.SessionID)
	case ws.MsgUpdate:
		renderFrame(msg.Frame)
		for _, line := range msg.Messages {
			fmt.Println(line)
		}
	default:
		fmt.Println("unhandled message type:", msg.Type)
	}
}

func renderFrame(f *game.Frame) {
	if f == nil {
		return
	}

	rows := make([][]byte, len(f.Tiles))
	for y, row := range f.Tiles {
		rows[y] = []byte(row)
	}
	for _, sp := range f.Sprites {
		if sp.Glyph == "" {
			continue
		}
		if sp.Y >= 0 && sp.Y < len(rows) && sp.X >= 0 && sp.X < len(rows[sp.Y]) {
			rows[sp.Y][sp.X] = sp.Glyph[0]
		}
	}
	if t := f.Targeting; t != nil {
		if t.CursorY >= 0 && t.CursorY < len(rows) && t.CursorX >= 0 && t.CursorX < len(rows[t.CursorY]) {
			rows[t.CursorY][t.CursorX] = '+'
		}
	}

	fmt.Println()
	for _, row := range rows {
		fmt.Println(string(row))
	}

	if p := f.Player; p != nil {
		fmt.Printf("HP %d/%d  MP %d/%d  Lv %d  XP %d (%d to go)  Pow %d  Def %d  Turn %d\n",
			p.HP, p.MaxHP, p.MP, p.MaxMP, p.Level, p.XP, p.XPToGo, p.Power, p.Defense, f.Turn)
		if len(p.Inventory) > 0 {
			fmt.Print("carrying:")
			for _, item := range p.Inventory {
				fmt.Printf(" %s(%s)", item.Name, item.ID)
			}
			fmt.Println()
		}
		if len(p.Equipment) > 0 {
			fmt.Print("wearing:")
			for slot, name := range p.Equipment {
				fmt.Printf(" %s=%s", slot, name)
			}
			fmt.Println()
		}
		if len(p.Effects) > 0 {
			fmt.Print("effects:")
			for _, e := range p.Effects {
				fmt.Printf(" %s(%d)", e.Type, e.Duration)
			}
			fmt.Println()
		}
	}
	if t := f.Targeting; t != nil && t.TargetName != "" {
		fmt.Printf("targeting %s (%s)\n", t.TargetName, t.TargetID)
	}
	if f.GameOver {
		fmt.Println("*** GAME OVER ***")
	}
	fmt.Println("session:", f.SessionID)
}
