// utils/respond.go
package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a JSON error payload with the given status
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns an uppercase alphanumeric string of length n,
// used for referral codes and other human-readable identifiers
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			panic("failed to read random bytes")
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}

// GenerateReferralCode returns a new salesperson referral code
func GenerateReferralCode() string {
	return "REF-" + GenerateRandomString(6)
}
