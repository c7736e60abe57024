// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
)

// TokenAlphabet has 32 symbols and leaves out 0, O, 1 and I so printed codes
// can be read back without guessing.
const TokenAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// TokenCodeLength is the number of symbols in a voting token code.
const TokenCodeLength = 8

var (
	ErrInvalidAdminSecret = errors.New("invalid admin secret")
	ErrInvalidCount       = errors.New("token count must be positive")
)

// GenerateTokenCode returns a random code drawn uniformly from TokenAlphabet.
func GenerateTokenCode() (string, error) {
	b := make([]byte, TokenCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token code: %w", err)
	}
	// len(TokenAlphabet) divides 256, so masking keeps the draw uniform
	for i := range b {
		b[i] = TokenAlphabet[b[i]&(byte(len(TokenAlphabet))-1)]
	}
	return string(b), nil
}

// GenerateTokenCodes returns n codes that are distinct from each other.
// Uniqueness against codes already stored is left to the database.
func GenerateTokenCodes(n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}

	seen := make(map[string]struct{}, n)
	codes := make([]string, 0, n)
	for len(codes) < n {
		code, err := GenerateTokenCode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// ValidateAdminSecret compares the provided secret against the configured one
// in constant time. An empty value never matches.
func ValidateAdminSecret(provided, configured string) error {
	if provided == "" || configured == "" {
		return ErrInvalidAdminSecret
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
		return ErrInvalidAdminSecret
	}
	return nil
}
