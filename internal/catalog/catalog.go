// Package catalog fetches the sport list from the external sports API.
// The booking core never talks to the network directly; it consumes the
// Client interface, and tests plug in Static.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sport is one code/name pair from the external catalog.
type Sport struct {
	ID   string
	Code string
	Name string
}

// Client lists the sports known to the catalog.
type Client interface {
	Sports(ctx context.Context) ([]Sport, error)
}

// HTTPClient fetches sports from the catalog's JSON endpoint.
type HTTPClient struct {
	url  string
	http *http.Client
}

// NewHTTPClient constructs an HTTPClient for the given endpoint URL.
func NewHTTPClient(url string) *HTTPClient {
	return &HTTPClient{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// sportEntry tolerates the field spellings the API has used over time:
// sport_id/id, sport_code/code, sport_name/name. IDs may arrive as numbers.
type sportEntry struct {
	SportID   json.Number `json:"sport_id"`
	ID        json.Number `json:"id"`
	SportCode string      `json:"sport_code"`
	Code      string      `json:"code"`
	SportName string      `json:"sport_name"`
	Name      string      `json:"name"`
}

// Sports fetches and normalises the sport list. Entries without a usable
// code (falling back to the numeric ID) are dropped; missing names fall
// back to the code.
func (c *HTTPClient) Sports(ctx context.Context) ([]Sport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build sports request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sports: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read sports response: %w", err)
	}

	entries, err := decodeEntries(body)
	if err != nil {
		return nil, err
	}

	var sports []Sport
	for _, e := range entries {
		id := firstNonEmpty(e.SportID.String(), e.ID.String())
		code := strings.TrimSpace(firstNonEmpty(e.SportCode, e.Code))
		if code == "" {
			code = id
		}
		if code == "" {
			continue
		}
		name := strings.TrimSpace(firstNonEmpty(e.SportName, e.Name))
		if name == "" {
			name = code
		}
		sports = append(sports, Sport{ID: id, Code: code, Name: name})
	}
	return sports, nil
}

// decodeEntries accepts either {"data": [...]} or a bare array.
func decodeEntries(body []byte) ([]sportEntry, error) {
	var envelope struct {
		Data []sportEntry `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var entries []sportEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode sports response: %w", err)
	}
	return entries, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Static is a fixed in-memory catalog for tests and offline runs.
type Static []Sport

// Sports returns the fixed list.
func (s Static) Sports(context.Context) ([]Sport, error) {
	return s, nil
}
