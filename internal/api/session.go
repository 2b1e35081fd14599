// Package api implements the typed remote access functions against the
// journal server. Each operation performs one HTTP request and returns a
// validated value or a classified error; nothing here touches the cache.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session holds everything needed to speak to one journal server: base
// URL, an optional bearer credential, and the active locale. The underlying
// client carries a cookie jar so server sessions participate in requests.
type Session struct {
	base   *url.URL
	token  string
	locale string
	client *http.Client
	log    zerolog.Logger
}

// Options configures a Session.
type Options struct {
	BaseURL string
	// Token is the bearer credential. Empty means unauthenticated; no
	// Authorization header is sent. Token acquisition is out of scope
	// for this client.
	Token string
	// Locale is sent as Accept-Language on every request.
	Locale string
	// Client overrides the HTTP client, used by tests. When nil a
	// client with a cookie jar and a 15s timeout is used.
	Client *http.Client
}

// NewSession creates a session against the given server.
func NewSession(opts Options, log zerolog.Logger) (*Session, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := opts.Client
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		client = &http.Client{Timeout: 15 * time.Second, Jar: jar}
	}

	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}

	return &Session{
		base:   base,
		token:  opts.Token,
		locale: locale,
		client: client,
		log:    log.With().Str("component", "api").Logger(),
	}, nil
}

// endpointOf renders the path-plus-query form used in error messages and
// logs, e.g. "/insights/featured?type=daily&tz=Europe%2FParis".
func endpointOf(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// do performs one request and returns the status, raw body, and the
// rendered endpoint. A nil error means the call completed at the transport
// level regardless of HTTP status; transport-level failures come back as
// *TransportError.
func (s *Session) do(ctx context.Context, method, path string, query url.Values, payload any) (int, []byte, string, error) {
	endpoint := endpointOf(path, query)

	u := *s.base
	u.Path = path
	u.RawQuery = query.Encode()

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, endpoint, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return 0, nil, endpoint, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", s.locale)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, endpoint, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.Debug().Err(err).Str("endpoint", endpoint).Msg("close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, endpoint, &TransportError{Endpoint: endpoint, Err: err}
	}

	s.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Msg("request complete")

	return resp.StatusCode, raw, endpoint, nil
}
