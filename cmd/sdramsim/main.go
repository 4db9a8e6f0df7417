package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Flag defaults can come from a local .env file.
	_ = godotenv.Load()

	Execute()
}
