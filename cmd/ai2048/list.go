package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai2048/internal/config"
	"github.com/vovakirdan/ai2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategies and intelligence presets",
	Long:  `Shows the move strategies available to bench and the intelligence presets.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	strategies := registry.List()

	maxIDLen := 2 // "ID" header
	for _, s := range strategies {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Println("Strategies:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range strategies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Intelligence presets:")
	fmt.Println()
	for _, p := range config.Presets() {
		v, _ := config.IntelligenceForPreset(p)
		fmt.Printf("  %-8s %3d\n", p, v)
	}

	fmt.Println()
	fmt.Println("Run 'ai2048 bench --strategy <id>' to compare strategies.")
}
