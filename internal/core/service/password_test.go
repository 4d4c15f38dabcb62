package service

import (
	"testing"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("expected digest, got plaintext back")
	}
	if !hasher.Verify("s3cret", digest) {
		t.Fatalf("correct password rejected")
	}
	if hasher.Verify("wrong", digest) {
		t.Fatalf("wrong password accepted")
	}
}

func TestPasswordHasher_EmptySecret(t *testing.T) {
	hasher := NewPasswordHasher()
	if _, err := hasher.Hash(""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordHasher_SaltedDigests(t *testing.T) {
	hasher := NewPasswordHasher()

	a, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct salted digests")
	}
}
