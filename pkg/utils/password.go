package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes raw password material with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
