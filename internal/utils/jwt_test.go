package utils

import "testing"

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("secret", "42", "freelancer", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "42" {
		t.Errorf("uid = %q, want 42", claims.UserID)
	}
	if claims.Role != "freelancer" {
		t.Errorf("role = %q, want freelancer", claims.Role)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("secret", "42", "freelancer", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("other-secret", token); err == nil {
		t.Fatal("expected error with the wrong secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := SignJWT("secret", "42", "freelancer", -1)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret", token); err == nil {
		t.Fatal("expected error for an expired token")
	}
}
