package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for OPENAI_API_KEY and friends; a missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
