package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/driftfield/internal/placeholders"
)

func main() {
	out := flag.String("out", "assets", "output directory")
	size := flag.Int("size", placeholders.TileSize, "tile size in pixels")
	variants := flag.Int("variants", 4, "number of ground variants")
	flag.Parse()

	fmt.Println("Driftfield Placeholder Graphics Generator")
	fmt.Println("=========================================")
	fmt.Println()

	configPath, err := placeholders.Save(*out, *size, *variants)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d ground variants to %s\n", *variants, configPath)
	fmt.Println()
	fmt.Println("Point [world] atlas at this file to use it.")
}
