package eodhd

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/rs/zerolog"
)

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base   http.RoundTripper
	dir    string      // empty is the system temp dir
	period date.Period // zero is daily
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	logger := zerolog.Ctx(req.Context())
	// The key changes with the period, so entries expire at the end of each period.
	rangeID := c.period.Range(date.Today()).Identifier()
	key := fmt.Sprintf("%s %s %s", rangeID, req.Method, req.URL.String())
	key = fmt.Sprintf("eodhd-%s-%x", c.period, sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Int("status", resp.StatusCode).Msg("eodhd request")
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		logger.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache. The response body remains readable.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	file := c.file(key)
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Concurrent fetches may store the same key: readers only ever see a
	// complete file.
	tmp, err := os.CreateTemp(dir, filepath.Base(file)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}

// newCachingClient returns an http.Client that uses a disk cache in dir where entries expire every period.
func newCachingClient(base http.RoundTripper, dir string, period date.Period) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{Transport: &diskCache{base: base, dir: dir, period: period}}
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
//
// A 404 is reported as tracker.ErrDataUnavailable.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("cannot http GET %v%v: %v: %w", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status, tracker.ErrDataUnavailable)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			return fmt.Errorf("invalid json from %v%v: %w", resp.Request.URL.Host, resp.Request.URL.Path, err)
		}
		return err
	}
	return nil
}
