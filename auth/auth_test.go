// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 { // 16 bytes = 32 hex chars
		t.Errorf("Expected 32 char ID, got %d: %s", len(id), id)
	}

	// IDs must be unique
	id2, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == id2 {
		t.Error("Two generated IDs are identical")
	}
}

func TestEditTokenRoundTrip(t *testing.T) {
	const salt = "test-salt"
	pollID, _ := GenerateID(16)

	token := GenerateEditToken(pollID, salt)
	if token == "" {
		t.Fatal("Empty edit token")
	}
	if strings.ContainsAny(token, "=+/") {
		t.Errorf("Edit token contains non-URL-safe characters: %s", token)
	}

	if err := ValidateEditToken(pollID, token, salt); err != nil {
		t.Errorf("Valid token rejected: %v", err)
	}
}

func TestEditTokenDeterministic(t *testing.T) {
	const salt = "test-salt"
	if GenerateEditToken("poll-a", salt) != GenerateEditToken("poll-a", salt) {
		t.Error("Edit token generation is not deterministic")
	}
}

func TestValidateEditTokenRejections(t *testing.T) {
	const salt = "test-salt"
	pollID, _ := GenerateID(16)
	token := GenerateEditToken(pollID, salt)

	if err := ValidateEditToken(pollID, "wrong-token", salt); err == nil {
		t.Error("Wrong token accepted")
	}
	if err := ValidateEditToken("other-poll", token, salt); err == nil {
		t.Error("Token for a different poll accepted")
	}
	if err := ValidateEditToken(pollID, token, "other-salt"); err == nil {
		t.Error("Token with a different salt accepted")
	}
	if err := ValidateEditToken(pollID, "", salt); err == nil {
		t.Error("Empty token accepted")
	}
}

func TestGenerateShareSlug(t *testing.T) {
	const salt = "slug-salt"

	slug := GenerateShareSlug("poll-a", salt)
	if slug == "" {
		t.Fatal("Empty share slug")
	}
	for _, c := range slug {
		isAlnum := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isAlnum {
			t.Errorf("Slug contains non-alphanumeric character %q: %s", c, slug)
		}
	}

	// Deterministic per poll, distinct across polls
	if slug != GenerateShareSlug("poll-a", salt) {
		t.Error("Share slug is not deterministic")
	}
	if slug == GenerateShareSlug("poll-b", salt) {
		t.Error("Different polls produced the same slug")
	}
}

func TestHashIP(t *testing.T) {
	const salt = "ip-salt"

	h1 := HashIP("203.0.113.7", salt)
	if len(h1) != 16 { // 8 bytes = 16 hex chars
		t.Errorf("Expected 16 char hash, got %d", len(h1))
	}
	if h1 != HashIP("203.0.113.7", salt) {
		t.Error("IP hash is not deterministic")
	}
	if h1 == HashIP("203.0.113.8", salt) {
		t.Error("Different IPs produced the same hash")
	}
	if h1 == HashIP("203.0.113.7", "other-salt") {
		t.Error("Different salts produced the same hash")
	}
}
