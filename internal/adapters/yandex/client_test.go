package yandex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, tokenStatus int, profile map[string]interface{}) (Client, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus >= 400 {
			http.Error(w, `{"error":"invalid_grant"}`, tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "provider-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "OAuth ") {
			http.Error(w, "no token", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost/callback",
		AuthURL:      srv.URL + "/authorize",
		TokenURL:     srv.URL + "/token",
		ProfileURL:   srv.URL + "/info",
	}, 2*time.Second)
	return client, srv
}

func TestAuthCodeURLEmbedsState(t *testing.T) {
	client, srv := newTestClient(t, http.StatusOK, nil)
	u := client.AuthCodeURL("csrf-123")
	if !strings.HasPrefix(u, srv.URL+"/authorize") {
		t.Fatalf("unexpected auth url: %s", u)
	}
	if !strings.Contains(u, "state=csrf-123") || !strings.Contains(u, "client_id=cid") {
		t.Fatalf("auth url missing params: %s", u)
	}
}

func TestExchangeAndFetchProfile(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, map[string]interface{}{
		"id":            "42",
		"default_email": "user@yandex.ru",
		"display_name":  "User",
	})
	token, err := client.ExchangeCode(context.Background(), "code")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if token != "provider-token" {
		t.Fatalf("token = %q", token)
	}
	profile, err := client.FetchProfile(context.Background(), token)
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if profile.ID != "42" || profile.Email != "user@yandex.ru" || profile.DisplayName != "User" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestExchangeFailure(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadRequest, nil)
	if _, err := client.ExchangeCode(context.Background(), "stale-code"); !errors.Is(err, ErrExchangeFailed) {
		t.Fatalf("expected ErrExchangeFailed, got %v", err)
	}
}

func TestFetchProfileWithoutEmail(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, map[string]interface{}{
		"id":           "42",
		"display_name": "User",
	})
	if _, err := client.FetchProfile(context.Background(), "provider-token"); !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestFetchProfileFallsBackToLogin(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, map[string]interface{}{
		"id":            "42",
		"default_email": "user@yandex.ru",
		"login":         "uzer",
	})
	profile, err := client.FetchProfile(context.Background(), "provider-token")
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if profile.DisplayName != "uzer" {
		t.Fatalf("display name fallback failed: %+v", profile)
	}
}

func TestGenerateStateIsUnique(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a == b || len(a) != 32 {
		t.Fatalf("weak state tokens: %q %q", a, b)
	}
}
