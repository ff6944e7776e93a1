// Package main is the entry point for the game server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rogue-api",
	Short: "Turn-based dungeon simulation server",
	Long:  `rogue-api runs the turn-based dungeon simulation and serves sessions to clients over WebSocket.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
