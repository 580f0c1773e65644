package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"movecore/internal/game"
)

func main() {
	configPath := flag.String("config", "", "tuning file (YAML), reloaded on change")
	levelPath := flag.String("level", "", "level file (YAML), built-in playground if empty")
	exportLevel := flag.String("export-level", "", "write the built-in playground to this file and exit")
	flag.Parse()

	if *exportLevel != "" {
		if err := writeDefaultLevel(*exportLevel); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Resolve paths before moving to the executable's directory.
	*configPath = absPath(*configPath)
	*levelPath = absPath(*levelPath)

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	g, err := game.New(game.Options{ConfigPath: *configPath, LevelPath: *levelPath})
	if err != nil {
		log.Fatal(err)
	}
	g.Run()
}

func absPath(p string) string {
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
