// Command userctl hashes an admin password for the API's login check.
// Put the output in CRICSTATS_AUTH_ADMIN_PASSWORD (or auth.admin_password in
// the config file); the server compares login attempts against the hash and
// never sees the plaintext.
package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	logger := log.New(os.Stdout, "userctl: ", log.LstdFlags)

	password := os.Getenv("PASSWORD")
	if password == "" {
		logger.Fatal("PASSWORD environment variable must be set.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalf("Failed to hash password: %v", err)
	}

	logger.Printf("CRICSTATS_AUTH_ADMIN_PASSWORD=%s\n", string(hashed))
}
