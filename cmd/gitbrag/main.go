package main

import (
	"os"

	"gitbrag/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Provider keys may live in a local .env; absence is fine.
	_ = godotenv.Load()
	os.Exit(cli.Run())
}
