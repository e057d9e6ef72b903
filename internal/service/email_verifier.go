package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"starblog/internal/cache"
	"starblog/internal/errors"
)

const (
	emailCheckTimeout  = 10 * time.Second
	emailVerdictTTL    = 24 * time.Hour
	emailVerdictPrefix = "email_check:"
)

// EmailVerifier reports whether an email address is syntactically real
// according to the external email-validity checker.
type EmailVerifier interface {
	Verify(ctx context.Context, email string) error
}

type httpEmailVerifier struct {
	urlTemplate string
	client      *http.Client
	cache       *cache.Client
}

// NewEmailVerifier creates a verifier backed by the checker service at
// urlTemplate, where %s receives the URL-escaped address. Verdicts are cached
// in Redis so repeat sign-up attempts do not hit the checker again.
func NewEmailVerifier(urlTemplate string, cache *cache.Client) EmailVerifier {
	return &httpEmailVerifier{
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: emailCheckTimeout},
		cache:       cache,
	}
}

// emailCheckResponse mirrors the checker's JSON payload.
type emailCheckResponse struct {
	Data struct {
		Gibberish bool `json:"gibberish"`
		Webmail   bool `json:"webmail"`
	} `json:"data"`
}

// Verify returns nil for a deliverable address and ErrEmailRejected when the
// checker reports it as gibberish or not webmail-capable. Checker outages
// surface as plain errors, not rejections.
func (v *httpEmailVerifier) Verify(ctx context.Context, email string) error {
	cacheKey := emailVerdictPrefix + email
	if verdict, _ := v.cache.Get(ctx, cacheKey); verdict != nil {
		if string(verdict) == "ok" {
			return nil
		}
		return errors.ErrEmailRejected
	}

	checkURL := fmt.Sprintf(v.urlTemplate, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return fmt.Errorf("build email check request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("email check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email checker returned status: %d", resp.StatusCode)
	}

	var result emailCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode email check response: %w", err)
	}

	if result.Data.Gibberish || !result.Data.Webmail {
		_ = v.cache.Set(ctx, cacheKey, []byte("rejected"), emailVerdictTTL)
		return errors.ErrEmailRejected
	}

	_ = v.cache.Set(ctx, cacheKey, []byte("ok"), emailVerdictTTL)
	return nil
}
