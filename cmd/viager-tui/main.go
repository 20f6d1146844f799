package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/viager/internal/app"
	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/tui"
)

func main() {
	// Get offers file path (and optional reference) from arguments
	if len(os.Args) < 2 {
		fmt.Println("Usage: viager-tui <offers-file> [reference]")
		os.Exit(1)
	}
	configPath := os.Args[1]
	ref := ""
	if len(os.Args) > 2 {
		ref = os.Args[2]
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Offers file not found: %s\n", configPath)
		os.Exit(1)
	}

	// Settings come from VIAGER_SETTINGS and VIAGER_* environment variables
	settings, err := config.LoadSettings(os.Getenv("VIAGER_SETTINGS"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	rt, err := app.Open(settings, app.Options{Logger: calculation.NopLogger{}})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	model := tui.NewModel(configPath, rt.OpenSession).WithInitialOffer(ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		rt.Close()
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
