package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/example/audio-service/config"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                "test-secret",
		Algorithm:                "HS256",
		JWTIssuer:                "audio-service",
		JWTAudience:              "frontend",
		AccessTokenExpireMinutes: 30,
	}
}

func TestSignAndParseRoundtrip(t *testing.T) {
	signer, err := NewJWTSigner(testConfig())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	token, err := signer.SignAccessToken("user-1", map[string]interface{}{"email": "user@example.com"}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	tok, claims, err := signer.Parse(token)
	if err != nil || tok == nil || !tok.Valid {
		t.Fatalf("parse failed: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != "user-1" {
		t.Fatalf("subject = %q", sub)
	}
	if email, _ := claims["email"].(string); email != "user@example.com" {
		t.Fatalf("email claim = %q", email)
	}
}

func TestParseExpiredToken(t *testing.T) {
	signer, err := NewJWTSigner(testConfig())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	// beyond the 30s parse leeway
	token, err := signer.SignAccessToken("user-1", nil, -2*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := signer.Parse(token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseTamperedSignature(t *testing.T) {
	signer, err := NewJWTSigner(testConfig())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	otherCfg := testConfig()
	otherCfg.SecretKey = "another-secret"
	other, err := NewJWTSigner(otherCfg)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	token, err := other.SignAccessToken("user-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if tok, _, err := signer.Parse(token); err == nil && tok != nil && tok.Valid {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestParseMalformedToken(t *testing.T) {
	signer, err := NewJWTSigner(testConfig())
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	for _, bad := range []string{"", "garbage", "a.b", strings.Repeat("x", 64)} {
		if tok, _, err := signer.Parse(bad); err == nil && tok != nil && tok.Valid {
			t.Fatalf("expected malformed token %q to fail", bad)
		}
	}
}

func TestSignerRequiresKeyMaterial(t *testing.T) {
	if _, err := NewJWTSigner(&config.Config{}); err == nil {
		t.Fatal("expected error without secret or key pair")
	}
}

func TestSignerRejectsAsymmetricAlgWithSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Algorithm = "RS256"
	if _, err := NewJWTSigner(cfg); err == nil {
		t.Fatal("expected error for RS256 with symmetric secret")
	}
}
