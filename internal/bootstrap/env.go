package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls in a local .env when present. Deployed environments set
// everything through real environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
}
