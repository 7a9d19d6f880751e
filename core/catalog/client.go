package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is the HTTP implementation of API against an Omeka-compatible
// catalog. It authenticates with key_identity/key_credential query
// credentials.
type Client struct {
	http          *http.Client
	base          string
	keyIdentity   string
	keyCredential string
	pageSize      int
	log           *zap.Logger
}

// NewClient creates a catalog API client from the configuration.
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}

	return &Client{
		http:          &http.Client{Timeout: time.Duration(timeout) * time.Second},
		base:          strings.TrimSuffix(cfg.Endpoint, "/"),
		keyIdentity:   cfg.KeyIdentity,
		keyCredential: cfg.KeyCredential,
		pageSize:      pageSize,
		log:           log,
	}
}

var _ API = (*Client)(nil)

func (c *Client) Vocabularies(ctx context.Context) ([]Vocabulary, error) {
	return listPages[Vocabulary](ctx, c, "/vocabularies", nil)
}

func (c *Client) Properties(ctx context.Context) ([]Property, error) {
	return listPages[Property](ctx, c, "/properties", nil)
}

func (c *Client) ResourceClasses(ctx context.Context) ([]ResourceClass, error) {
	return listPages[ResourceClass](ctx, c, "/resource_classes", nil)
}

func (c *Client) SearchItems(ctx context.Context, query ItemQuery) ([]Item, error) {
	params := url.Values{}
	if query.PropertyID != 0 {
		params.Set("property[0][property]", strconv.Itoa(query.PropertyID))
		params.Set("property[0][type]", "eq")
		params.Set("property[0][joiner]", "and")
		params.Set("property[0][text]", query.Text)
	}
	if query.ItemSetID != 0 {
		params.Set("item_set_id[]", strconv.Itoa(query.ItemSetID))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.SortBy != "" {
		params.Set("sort_by", query.SortBy)
		params.Set("sort_order", query.SortOrder)
	}

	var items []Item
	if err := c.do(ctx, http.MethodGet, "/items", params, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ReadItem(ctx context.Context, id int) (*Item, error) {
	var item Item
	err := c.do(ctx, http.MethodGet, "/items/"+strconv.Itoa(id), nil, nil, &item)
	if err != nil {
		return nil, asNotFound(err, "item", id)
	}
	return &item, nil
}

func (c *Client) ReadItemSet(ctx context.Context, id int) (*ItemSet, error) {
	var set ItemSet
	err := c.do(ctx, http.MethodGet, "/item_sets/"+strconv.Itoa(id), nil, nil, &set)
	if err != nil {
		return nil, asNotFound(err, "item set", id)
	}
	return &set, nil
}

// FindTemplate returns the first matching resource template, or nil when
// none matches.
func (c *Client) FindTemplate(ctx context.Context, query TemplateQuery) (*Template, error) {
	params := url.Values{}
	if query.Label != "" {
		params.Set("label", query.Label)
	}
	if query.ResourceClassID != 0 {
		params.Set("resource_class_id", strconv.Itoa(query.ResourceClassID))
	}
	params.Set("limit", "1")

	var templates []Template
	if err := c.do(ctx, http.MethodGet, "/resource_templates", params, nil, &templates); err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, nil
	}
	return &templates[0], nil
}

func (c *Client) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	var created Item
	err := c.do(ctx, http.MethodPost, "/items", nil, item, &created)
	if err != nil {
		return nil, asValidation(err)
	}
	return &created, nil
}

// UpdateItem replaces an item wholesale; the catalog's update is not a
// merge.
func (c *Client) UpdateItem(ctx context.Context, id int, item *Item) (*Item, error) {
	var updated Item
	err := c.do(ctx, http.MethodPut, "/items/"+strconv.Itoa(id), nil, item, &updated)
	if err != nil {
		return nil, asValidation(err)
	}
	return &updated, nil
}

// BatchCreateItems creates a batch of items in continue-on-error mode.
// The result is aligned with the input; rejected payloads yield nil.
func (c *Client) BatchCreateItems(ctx context.Context, items []*Item) ([]*Item, error) {
	params := url.Values{}
	params.Set("continue_on_error", "1")

	var created []*Item
	if err := c.do(ctx, http.MethodPost, "/items", params, items, &created); err != nil {
		return nil, err
	}
	if len(created) != len(items) {
		return nil, fmt.Errorf("batch create returned %d results for %d payloads", len(created), len(items))
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.keyIdentity != "" {
		params.Set("key_identity", c.keyIdentity)
		params.Set("key_credential", c.keyCredential)
	}

	requestURL := c.base + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload for %q: %w", requestURL, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return fmt.Errorf("failed to build request %q: %w", requestURL, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %q failed: %w", requestURL, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %q: %w", requestURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(responseBody)),
		}
	}

	if out != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("failed to decode response of %q: %w", requestURL, err)
		}
	}
	return nil
}

// listPages walks a paginated listing endpoint until a short page.
func listPages[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		pageParams := url.Values{}
		for key, values := range params {
			pageParams[key] = values
		}
		pageParams.Set("page", strconv.Itoa(page))
		pageParams.Set("per_page", strconv.Itoa(c.pageSize))

		var results []T
		if err := c.do(ctx, http.MethodGet, path, pageParams, nil, &results); err != nil {
			return nil, err
		}
		all = append(all, results...)
		if len(results) < c.pageSize {
			return all, nil
		}
	}
}

// asNotFound converts a 404 RequestError into a NotFoundError.
func asNotFound(err error, resource string, id int) error {
	if reqErr, ok := err.(*RequestError); ok && reqErr.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}

// asValidation converts a client-side rejection into a ValidationError;
// server-side failures stay fatal RequestErrors.
func asValidation(err error) error {
	if reqErr, ok := err.(*RequestError); ok && reqErr.StatusCode >= 400 && reqErr.StatusCode < 500 {
		return &ValidationError{URL: reqErr.URL, Body: reqErr.Body}
	}
	return err
}
