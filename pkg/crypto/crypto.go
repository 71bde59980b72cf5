package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ComputeHMAC256 signs the payload with the secret key and returns the hex
// encoded signature. Used to sign shareable preview URLs so previews can be
// opened without an operator session.
func ComputeHMAC256(toSign []byte, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(toSign)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// VerifyHMAC reports whether providedSign matches the signature of toSign.
// When compareOnlyFirstCharacters is positive only that prefix is compared,
// which keeps share URLs short while leaving enough entropy.
func VerifyHMAC(secretKey string, toSign []byte, providedSign string, compareOnlyFirstCharacters int) bool {
	signed := ComputeHMAC256(toSign, secretKey)

	if compareOnlyFirstCharacters <= 0 || compareOnlyFirstCharacters > len(signed) {
		return hmac.Equal([]byte(signed), []byte(providedSign))
	}
	if len(providedSign) < compareOnlyFirstCharacters {
		return false
	}
	return hmac.Equal([]byte(signed[:compareOnlyFirstCharacters]), []byte(providedSign[:compareOnlyFirstCharacters]))
}

// HashAPIToken hashes an operator API token for storage in configuration.
func HashAPIToken(token string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api token: %w", err)
	}
	return string(hashed), nil
}

// CheckAPIToken compares a presented token against its stored bcrypt hash.
func CheckAPIToken(token string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
