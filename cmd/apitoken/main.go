package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/promoforge/promoforge/pkg/crypto"
)

// Generates an operator API token and the bcrypt hash to put in
// API_TOKEN_HASH. The token itself is shown once and never stored.
func main() {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := crypto.HashAPIToken(token)
	if err != nil {
		log.Fatalf("Failed to hash token: %v", err)
	}

	fmt.Println()
	fmt.Println("Generated operator API token")
	fmt.Println()
	fmt.Printf("Token (keep this secret!): %s\n", token)
	fmt.Printf("API_TOKEN_HASH: %s\n", hash)
	fmt.Println()
}
