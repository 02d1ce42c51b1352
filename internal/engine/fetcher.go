package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// VCardFetcher retrieves a remote vCard source, typically a CardDAV address
// book export. The import flow depends on this interface so tests can run
// without a network.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher is the production VCardFetcher.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch downloads vCard data with optional basic auth. Only http and https
// schemes are accepted, log lines carry the URL stripped of credentials and
// query, and the returned reader is capped at MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug("Initiating vCard download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("Server returned error status", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	log.Info("vCards downloading", slog.Int64("content_length", resp.ContentLength))
	return &cappedBody{
		r:    io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		body: resp.Body,
	}, nil
}

// cappedBody reads through the size-limited reader but closes the underlying
// response body, so the connection is released while reads stay capped.
type cappedBody struct {
	r    io.Reader
	body io.Closer
}

func (c *cappedBody) Read(p []byte) (int, error) { return c.r.Read(p) }

func (c *cappedBody) Close() error { return c.body.Close() }
