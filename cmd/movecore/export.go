package main

import (
	"fmt"
	"os"

	"movecore/internal/world"
)

func writeDefaultLevel(path string) error {
	data, err := world.DefaultLevel().Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export level: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
