package yandex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
)

const (
	authURL    = "https://oauth.yandex.ru/authorize"
	tokenURL   = "https://oauth.yandex.ru/token"
	profileURL = "https://login.yandex.ru/info"
)

var defaultScopes = []string{"login:email", "login:info"}

var (
	ErrExchangeFailed    = errors.New("oauth_exchange_failed")
	ErrProfileIncomplete = errors.New("profile_incomplete")
)

// Profile is the subset of the Yandex userinfo response the service needs.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"default_email"`
	DisplayName string `json:"display_name"`
	Login       string `json:"login"`
}

type Client interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

type Options struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides, used by tests. Empty means the real Yandex URLs.
	AuthURL    string
	TokenURL   string
	ProfileURL string
}

type client struct {
	opts       Options
	httpClient *http.Client
}

// NewClient returns a stateless OAuth client value. It holds configuration
// only; per-handshake state (the csrf token) lives with the caller.
func NewClient(opts Options, timeout time.Duration) Client {
	if opts.AuthURL == "" {
		opts.AuthURL = authURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = tokenURL
	}
	if opts.ProfileURL == "" {
		opts.ProfileURL = profileURL
	}
	return &client{opts: opts, httpClient: &http.Client{Timeout: timeout}}
}

func (c *client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.opts.ClientID,
		ClientSecret: c.opts.ClientSecret,
		RedirectURL:  c.opts.RedirectURI,
		Scopes:       defaultScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.opts.AuthURL,
			TokenURL: c.opts.TokenURL,
		},
	}
}

func (c *client) AuthCodeURL(state string) string {
	return c.oauthConfig().AuthCodeURL(state)
}

func (c *client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if token.AccessToken == "" {
		return "", ErrExchangeFailed
	}
	return token.AccessToken, nil
}

func (c *client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var profile Profile
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.ProfileURL+"?format=json", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "OAuth "+accessToken)
		res, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
			return backoff.Permanent(fmt.Errorf("yandex userinfo: %d", res.StatusCode))
		}
		if res.StatusCode >= 400 {
			return fmt.Errorf("yandex userinfo: %d", res.StatusCode)
		}
		if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 3 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(profile.Email) == "" {
		return nil, ErrProfileIncomplete
	}
	if profile.DisplayName == "" {
		profile.DisplayName = profile.Login
	}
	return &profile, nil
}

// GenerateState produces a random csrf token for the authorization redirect.
func GenerateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
