package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from DOTENV_PATH, or .env when
// unset, if the file exists. Existing process environment variables are not
// overridden.
func loadDotEnv() error {
	path := os.Getenv("DOTENV_PATH")
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return errors.Wrapf(err, "load %s", path)
}
