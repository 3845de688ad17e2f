package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureToken returns a hex token of the given length, used for
// email verification and password reset links.
func GenerateSecureToken(length int) string {
	b := make([]byte, (length+1)/2)
	rand.Read(b)
	return hex.EncodeToString(b)[:length]
}
