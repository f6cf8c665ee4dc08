package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewShortID returns a URL-safe random identifier of size random bytes,
// hex encoded. Question and answer IDs use 4 bytes (8 hex characters).
func NewShortID(size int) string {
	if size <= 0 {
		size = 2
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
