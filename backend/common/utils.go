package common

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

func Password2Hash(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func ValidatePasswordAndHash(password string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// RandomHex returns n random bytes as a lowercase hex string (2n characters).
func RandomHex(n int) string {
	key := make([]byte, n)
	_, _ = rand.Read(key)
	return hex.EncodeToString(key)
}
