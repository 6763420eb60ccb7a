package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"
)

const referencePrefix = "RNT"

// NewPaymentReference builds a human-readable payment reference like
// "RNT-20240615-A3F09C": creation date plus a short random suffix.
// Uniqueness is the caller's problem; regenerate on collision.
func NewPaymentReference() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively unrecoverable; fall back
		// to the nanosecond clock rather than panic in a request path.
		return fmt.Sprintf("%s-%s-%06X", referencePrefix, time.Now().Format("20060102"), time.Now().UnixNano()&0xFFFFFF)
	}
	return fmt.Sprintf("%s-%s-%s", referencePrefix, time.Now().Format("20060102"), strings.ToUpper(hex.EncodeToString(b)))
}

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
