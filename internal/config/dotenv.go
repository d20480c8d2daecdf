package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads the .env file at DotenvPath into the process
// environment, without overriding variables already set. A missing
// file is not an error — irisd runs fine from ambient environment
// variables alone.
func LoadDotenv() error {
	path := DotenvPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}
