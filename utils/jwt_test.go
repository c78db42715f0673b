package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "khaled", true, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if uid, _ := claims["user_id"].(float64); uint(uid) != 42 {
		t.Errorf("user_id = %v, want 42", claims["user_id"])
	}
	if claims["username"] != "khaled" {
		t.Errorf("username = %v, want khaled", claims["username"])
	}
	if isManager, _ := claims["is_manager"].(bool); !isManager {
		t.Error("is_manager lost in round trip")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := GenerateToken(1, "x", false, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyToken(token); err == nil {
		t.Error("expired token accepted")
	}
}
