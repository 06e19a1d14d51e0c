// Command blocks-tui is the falling-block game in a terminal.
package main

import (
	"flag"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default tunables")
	logPath := flag.String("log", "", "append log output to this file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(newModel(blocks.New(cfg.Blocks)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
