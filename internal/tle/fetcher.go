package tle

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maxBodyBytes caps a catalog response. A three-line element set is a few
// hundred bytes; anything approaching the cap is a misbehaving endpoint.
const maxBodyBytes = 1 << 20

// StatusError reports a non-200 response from the catalog service.
type StatusError struct {
	Code  int
	CatNr int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for catalog %d", e.Code, e.CatNr)
}

// Fetcher retrieves raw TLE text for single catalog numbers.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

// NewFetcher creates a Fetcher against baseURL. When insecure is true the
// client skips certificate and hostname verification; callers should treat
// that as a diagnostic escape hatch, not a default.
func NewFetcher(baseURL string, timeout time.Duration, insecure bool) *Fetcher {
	client := &http.Client{Timeout: timeout}
	if insecure {
		// Clone the default transport so proxy settings and dial
		// timeouts survive; only the TLS config is relaxed.
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		client.Transport = transport
	}
	return &Fetcher{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// URL returns the request URL for the given catalog number.
func (f *Fetcher) URL(catNr int) string {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return f.baseURL
	}
	q := u.Query()
	q.Set("CATNR", strconv.Itoa(catNr))
	q.Set("FORMAT", "TLE")
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch performs one GET for the given catalog number and returns the raw
// response body.
func (f *Fetcher) Fetch(ctx context.Context, catNr int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(catNr), nil)
	if err != nil {
		return "", fmt.Errorf("creating request for catalog %d: %w", catNr, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching catalog %d: %w", catNr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, CatNr: catNr}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading response for catalog %d: %w", catNr, err)
	}
	if len(body) > maxBodyBytes {
		return "", fmt.Errorf("response for catalog %d exceeds %d byte limit", catNr, maxBodyBytes)
	}

	return string(body), nil
}
