package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/manolides/satellite-tracker/internal/capabilities"
)

func main() {
	file := flag.String("file", "capabilities.xml", "path to the WMTS capabilities document")
	flag.Parse()

	ids, err := capabilities.FromFile(*file)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Available Layers:")
	for _, id := range ids {
		fmt.Printf("- %s\n", id)
	}
}
