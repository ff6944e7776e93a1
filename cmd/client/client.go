// Package main provides a terminal client for playing against a
// running game server. It speaks the WebSocket protocol directly and
// renders frames as plain text, which makes it equally useful as a
// smoke-testing tool.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rogue-api/internal/handlers/ws"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "rogue-client",
	Short: "Terminal client for the game server",
	RunE:  runPlay,
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "ws://localhost:8080/ws", "WebSocket URL of the game server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	conn, resp, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", serverURL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() {
		_ = conn.Close()
	}()

	// The reader stays hot so keepalive pings are answered even while
	// the prompt is idle.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg serverMessage
			if err := conn.ReadJSON(&msg); err != nil {
				fmt.Println("connection closed:", err)
				return
			}
			render(msg)
		}
	}()

	fmt.Println("connected to", serverURL)
	printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "help" {
			printHelp()
			continue
		}
		if line == "exit" {
			break
		}

		command, err := parseCommand(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := conn.WriteJSON(command); err != nil {
			return fmt.Errorf("write command: %w", err)
		}
		// Give the reply a beat to render before re-prompting.
		select {
		case <-done:
			return scanner.Err()
		case <-time.After(150 * time.Millisecond):
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return scanner.Err()
}

func printHelp() {
	fmt.Print(`commands:
  new                      start a fresh game
  saves                    list saved sessions
  load <session_id>        restore a saved session
  save                     save the current session
  m <dx> <dy>              move (e.g. "m 1 0")
  wait                     pass the turn
  pickup                   pick up the item underfoot
  drop <item_id>           drop an inventory item
  use <item_id> [target]   use an item, optionally on a target
  equip <item_id>          equip a carried item
  unequip <slot>           remove worn gear
  cast <spell_id> [target] cast directly at a known target
  target <spell_id>        start cursor targeting
  tm <dx> <dy>             move the targeting cursor
  tn / tp                  cycle targets forward / back
  tok / tcancel            confirm / abandon targeting
  craft <id> <id> ...      craft from specific ingredients
  autocraft                craft from whatever is carried
  quit                     end the game
  exit                     leave the client
`)
}

func parseCommand(line string) (*ws.Command, error) {
	fields := strings.Fields(line)
	verb, rest := fields[0], fields[1:]

	switch verb {
	case "new":
		return &ws.Command{Type: ws.CmdNewGame}, nil
	case "saves":
		return &ws.Command{Type: ws.CmdListSaves}, nil
	case "load":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: load <session_id>")
		}
		return &ws.Command{Type: ws.CmdLoadGame, SessionID: rest[0]}, nil
	case "save":
		return &ws.Command{Type: ws.CmdSave}, nil
	case "m":
		dx, dy, err := parseDelta(rest)
		if err != nil {
			return nil, err
		}
		return &ws.Command{Type: ws.CmdAction, Action: "move", DX: dx, DY: dy}, nil
	case "wait":
		return &ws.Command{Type: ws.CmdAction, Action: "wait"}, nil
	case "pickup":
		return &ws.Command{Type: ws.CmdAction, Action: "pickup"}, nil
	case "drop":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: drop <item_id>")
		}
		return &ws.Command{Type: ws.CmdAction, Action: "drop", ItemID: rest[0]}, nil
	case "use":
		if len(rest) < 1 || len(rest) > 2 {
			return nil, fmt.Errorf("usage: use <item_id> [target_id]")
		}
		command := &ws.Command{Type: ws.CmdAction, Action: "use_item", ItemID: rest[0]}
		if len(rest) == 2 {
			command.TargetID = rest[1]
		}
		return command, nil
	case "equip":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: equip <item_id>")
		}
		return &ws.Command{Type: ws.CmdAction, Action: "equip", ItemID: rest[0]}, nil
	case "unequip":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: unequip <slot>")
		}
		return &ws.Command{Type: ws.CmdAction, Action: "unequip", Slot: rest[0]}, nil
	case "cast":
		if len(rest) < 1 || len(rest) > 2 {
			return nil, fmt.Errorf("usage: cast <spell_id> [target_id]")
		}
		command := &ws.Command{Type: ws.CmdAction, Action: "cast", SpellID: rest[0]}
		if len(rest) == 2 {
			command.TargetID = rest[1]
		}
		return command, nil
	case "target":
		if len(rest) != 1 {
			return nil, fmt.Errorf("usage: target <spell_id>")
		}
		return &ws.Command{Type: ws.CmdTargetStart, SpellID: rest[0]}, nil
	case "tm":
		dx, dy, err := parseDelta(rest)
		if err != nil {
			return nil, err
		}
		return &ws.Command{Type: ws.CmdTargetMove, DX: dx, DY: dy}, nil
	case "tn":
		return &ws.Command{Type: ws.CmdTargetCycle, Direction: 1}, nil
	case "tp":
		return &ws.Command{Type: ws.CmdTargetCycle, Direction: -1}, nil
	case "tok":
		return &ws.Command{Type: ws.CmdTargetConfirm}, nil
	case "tcancel":
		return &ws.Command{Type: ws.CmdTargetCancel}, nil
	case "craft":
		if len(rest) == 0 {
			return nil, fmt.Errorf("usage: craft <item_id> <item_id> ...")
		}
		return &ws.Command{Type: ws.CmdAction, Action: "craft", IngredientIDs: rest}, nil
	case "autocraft":
		return &ws.Command{Type: ws.CmdAction, Action: "auto_craft"}, nil
	case "quit":
		return &ws.Command{Type: ws.CmdAction, Action: "quit"}, nil
	default:
		return nil, fmt.Errorf("unknown command %q (try \"help\")", verb)
	}
}

func parseDelta(rest []string) (int, int, error) {
	if len(rest) != 2 {
		return 0, 0, fmt.Errorf("expected <dx> <dy>")
	}
	dx, err := strconv.Atoi(rest[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad dx %q", rest[0])
	}
	dy, err := strconv.Atoi(rest[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad dy %q", rest[1])
	}
	return dx, dy, nil
}
