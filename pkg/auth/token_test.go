package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/zestraw/storefront-backend/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "zestraw",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()
	phone := "+911234567890"

	payload := AccessTokenPayload{
		UserID: userID,
		Email:  "buyer@example.com",
		Phone:  &phone,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Email != "buyer@example.com" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
	if claims.Phone == nil || *claims.Phone != phone {
		t.Fatalf("phone mismatch: %v", claims.Phone)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
	if claims.Subject != userID.String() {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now()
	base := config.JWTConfig{Secret: "s", Issuer: "i", ExpirationMinutes: 5}

	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{"missing secret", config.JWTConfig{Issuer: "i", ExpirationMinutes: 5}, AccessTokenPayload{UserID: uuid.New()}},
		{"missing issuer", config.JWTConfig{Secret: "s", ExpirationMinutes: 5}, AccessTokenPayload{UserID: uuid.New()}},
		{"zero expiry", config.JWTConfig{Secret: "s", Issuer: "i"}, AccessTokenPayload{UserID: uuid.New()}},
		{"nil user", base, AccessTokenPayload{}},
	}
	for _, tc := range cases {
		if _, err := MintAccessToken(tc.cfg, now, tc.payload); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	mintCfg := config.JWTConfig{Secret: "secret", Issuer: "someone-else", ExpirationMinutes: 5}
	token, err := MintAccessToken(mintCfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parseCfg := config.JWTConfig{Secret: "secret", Issuer: "zestraw", ExpirationMinutes: 5}
	if _, err := ParseAccessToken(parseCfg, token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseAllowExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "zestraw", ExpirationMinutes: 1}
	past := time.Now().Add(-2 * time.Hour)
	token, err := MintAccessToken(cfg, past, AccessTokenPayload{UserID: uuid.New(), JTI: "fixed-jti"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil ||
		!strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("allow-expired parse failed: %v", err)
	}
	if claims.ID != "fixed-jti" {
		t.Fatalf("jti mismatch: %s", claims.ID)
	}
}
