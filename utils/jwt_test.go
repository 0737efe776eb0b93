package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("acct-1", RoleProfessional, "pro@turnia.dev", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	subject, role, err := ExtractClaimsFromToken(token)
	if err != nil {
		t.Fatalf("ExtractClaimsFromToken failed: %v", err)
	}
	if subject != "acct-1" || role != RoleProfessional {
		t.Errorf("claims = (%s, %s), want (acct-1, professional)", subject, role)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := GenerateToken("acct-1", RoleClient, "ana@turnia.dev", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestTamperedTokenIsRejected(t *testing.T) {
	token, err := GenerateToken("acct-1", RoleClient, "ana@turnia.dev", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, _, err := ExtractClaimsFromToken(tampered); err == nil {
		t.Fatal("tampered token validated")
	}
}

func TestHashTokenIsStableAndOpaque(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if h1 == "some-token" || len(h1) != 64 {
		t.Errorf("unexpected hash %q", h1)
	}
	if HashToken("other-token") == h1 {
		t.Error("distinct tokens collided")
	}
}
