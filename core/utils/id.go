package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short url-safe identifier, used for blend share codes.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
