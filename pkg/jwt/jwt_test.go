package jwt

import (
	"testing"
	"time"

	"clinic-appointment-service/config"

	"github.com/google/uuid"
)

func testService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := testService("test-secret")
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "pat@example.com", "patient")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokenID == "" {
		t.Fatal("token ID must not be empty")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("generated token must validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "pat@example.com" || claims.Role != "patient" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %s, want %s", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %s, want %s", claims.TokenID, tokenID)
	}
}

func TestGenerateRefreshTokenCarriesType(t *testing.T) {
	svc := testService("test-secret")

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "doc@example.com", "doctor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("generated token must validate: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("TokenType = %s, want %s", claims.TokenType, RefreshToken)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := testService("issuer-secret")
	verifier := testService("other-secret")

	token, _, err := issuer.GenerateAccessToken(uuid.New(), "pat@example.com", "patient")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "pat@example.com", "patient")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testService("test-secret")
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token must be rejected")
	}
}
