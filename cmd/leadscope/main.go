package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"leadscope/internal/config"
	"leadscope/internal/gateway"
	"leadscope/internal/logging"
	"leadscope/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogFile); err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}

	gw, err := gateway.Open(cfg)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(views.NewLeadsModel(gw, cfg), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
