// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// # Confirmation Codes
//
// Signup issues a one-time confirmation code delivered by email. Only a
// bcrypt hash of the code is kept at rest; the plain code exists in the
// outgoing email alone.

// GenerateConfirmationCode returns a cryptographically random, URL-safe
// confirmation code of the given byte length.
func GenerateConfirmationCode(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}

	// Base32 keeps the code case-insensitive and easy to copy from an email.
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw), nil
}

// HashConfirmationCode hashes a plain confirmation code with bcrypt.
func HashConfirmationCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckConfirmationCode compares a plain confirmation code against its bcrypt
// hash using a constant-time comparison.
func CheckConfirmationCode(code, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(code))
	return err == nil
}
