package main

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/promoforge/promoforge/pkg/crypto"
)

func TestTokenGeneration(t *testing.T) {
	// Capture stdout to test the output
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	main()

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	io.Copy(&buf, r)
	output := buf.String()

	if !strings.Contains(output, "Generated operator API token") {
		t.Error("Output doesn't contain expected header")
	}
	if !strings.Contains(output, "API_TOKEN_HASH:") {
		t.Error("Output doesn't contain the hash line")
	}

	tokenRe := regexp.MustCompile(`Token \(keep this secret!\): (\S+)`)
	hashRe := regexp.MustCompile(`API_TOKEN_HASH: (\S+)`)

	tokenMatch := tokenRe.FindStringSubmatch(output)
	hashMatch := hashRe.FindStringSubmatch(output)
	if tokenMatch == nil || hashMatch == nil {
		t.Fatal("Could not extract token and hash from output")
	}

	if !crypto.CheckAPIToken(tokenMatch[1], hashMatch[1]) {
		t.Error("Printed hash does not verify against the printed token")
	}
}
