// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEditToken = errors.New("invalid edit token")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateEditToken creates an HMAC-based organiser token for a poll.
// Deterministic and verifiable: the organiser keeps it to finalise the
// poll and trigger nudges.
func GenerateEditToken(pollID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateEditToken checks if the provided edit token is valid for the poll
func ValidateEditToken(pollID, token, salt string) error {
	expected := GenerateEditToken(pollID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidEditToken
	}
	return nil
}

// GenerateShareSlug creates a short, deterministic URL slug for a poll.
// Uses HMAC for determinism and base62 encoding for URL-friendliness.
func GenerateShareSlug(pollID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	sum := h.Sum(nil)

	// First 8 bytes keep the slug short
	return base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z) for URL-friendly
// slugs without special characters.
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way salted hash of an IP address for privacy.
// Only the first 64 bits are kept - enough for deduplication.
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
