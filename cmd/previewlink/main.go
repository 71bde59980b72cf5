package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/promoforge/promoforge/pkg/crypto"
)

// Signs a preview payload file so the resulting URL can be opened without
// an operator session. The secret must match PREVIEW_LINK_SECRET on the
// server.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/previewlink/main.go <payload.json> <secret_key>")
		os.Exit(1)
	}

	payloadFile := os.Args[1]
	secretKey := os.Args[2]

	raw, err := os.ReadFile(payloadFile)
	if err != nil {
		fmt.Printf("Failed to read payload: %v\n", err)
		os.Exit(1)
	}

	payload := base64.RawURLEncoding.EncodeToString(raw)
	signature := crypto.ComputeHMAC256(raw, secretKey)[:16]

	fmt.Println()
	fmt.Printf("Payload file: %s\n", payloadFile)
	fmt.Printf("Signature: %s\n", signature)
	fmt.Println()
	fmt.Printf("Preview URL: /preview?payload=%s&sig=%s\n", payload, signature)
}
