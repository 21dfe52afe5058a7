package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ErnestoTSantos/Topografia/internal/api"
	"github.com/ErnestoTSantos/Topografia/internal/config"
	"github.com/ErnestoTSantos/Topografia/internal/tui"
)

func main() {
	cfg := config.Load()
	client := api.NewClient(cfg.APIBaseURL)

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(client, os.Args[1])
	} else {
		m = tui.New(client)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
