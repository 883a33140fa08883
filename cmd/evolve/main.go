package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"evolve/internal/cli"
)

func main() {
	// .env is optional; GEMINI_API_KEY and EVOLVE_* may come from it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Fatal Error: Could not load .env file: %v", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
