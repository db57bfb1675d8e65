// Package notion implements the document-store interfaces on the Notion REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"dinneragent"
)

// Client is a minimal Notion REST client covering the three operations the
// pipelines consume: database query, page create, page update.
type Client struct {
	baseURL    string
	apiKey     string
	version    string
	httpClient dinneragent.HTTPClient
}

type ClientOpts struct {
	BaseURL    string
	APIKey     string
	Version    string
	HTTPClient dinneragent.HTTPClient
}

func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.notion.com"
	}
	if opts.Version == "" {
		opts.Version = "2022-06-28"
	}
	return &Client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		version:    opts.Version,
		httpClient: opts.HTTPClient,
	}
}

// Query is the request body for a database query.
type Query struct {
	Filter   *Filter `json:"filter,omitempty"`
	Sorts    []Sort  `json:"sorts,omitempty"`
	PageSize int     `json:"page_size,omitempty"`
}

// Filter supports the single filter shape the pipelines need: a checkbox
// equality test on a named property.
type Filter struct {
	Property string          `json:"property"`
	Checkbox *CheckboxFilter `json:"checkbox,omitempty"`
}

type CheckboxFilter struct {
	Equals bool `json:"equals"`
}

// Sort orders query results by a page timestamp.
type Sort struct {
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results []Page `json:"results"`
}

type createPageRequest struct {
	Parent     parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties map[string]Property `json:"properties"`
}

// QueryDatabase runs a filtered, sorted query against one database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) ([]Page, error) {
	var out queryResponse
	url := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, databaseID)
	if err := c.do(ctx, http.MethodPost, url, q, &out); err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	return out.Results, nil
}

// CreatePage appends a new page to a database. Pages are never updated through
// this path; the run log stays append-only.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props map[string]Property) (Page, error) {
	var out Page
	url := c.baseURL + "/v1/pages"
	body := createPageRequest{Parent: parent{DatabaseID: databaseID}, Properties: props}
	if err := c.do(ctx, http.MethodPost, url, body, &out); err != nil {
		return Page{}, fmt.Errorf("create page in %s: %w", databaseID, err)
	}
	return out, nil
}

// UpdatePage patches properties on an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props map[string]Property) error {
	url := fmt.Sprintf("%s/v1/pages/%s", c.baseURL, pageID)
	if err := c.do(ctx, http.MethodPatch, url, updatePageRequest{Properties: props}, nil); err != nil {
		return fmt.Errorf("update page %s: %w", pageID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		slog.Warn("NOTION: request failed", "method", method, "url", url, "status", resp.Status)
		return fmt.Errorf("notion: %s: %s", resp.Status, string(body))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
