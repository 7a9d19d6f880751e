package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxChunkSize is the bulk-request ceiling of the source API.
const maxChunkSize = 50

// apiVersion is the source API version requested on every call.
const apiVersion = "3"

// forceVersion is sent as If-Unmodified-Since-Version on deletes so that
// version drift on the server never blocks the deletion.
const forceVersion = "999999999"

// Client is a chunked HTTP client for one source library.
type Client struct {
	http      *http.Client
	url       *URL
	apiKey    string
	chunkSize int
	log       *zap.Logger
}

// FetchResult partitions fetched records into parents and children.
// ParentOrder preserves the server's fetch ordering of parent keys, which
// the import relies on for resumable, timestamp-ordered processing.
type FetchResult struct {
	Parents     map[string]*Record
	Children    map[string][]*Record
	ParentOrder []string
}

// NewClient creates a source API client from the configuration.
func NewClient(cfg Config, log *zap.Logger) *Client {
	chunk := cfg.ChunkSize
	if chunk <= 0 || chunk > maxChunkSize {
		chunk = maxChunkSize
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 20
	}

	return &Client{
		http:      &http.Client{Timeout: time.Duration(timeout) * time.Second},
		url:       NewURL(cfg.Endpoint, cfg.LibraryType, cfg.LibraryID),
		apiKey:    cfg.APIKey,
		chunkSize: chunk,
		log:       log,
	}
}

// URL exposes the client's URL builder, used when composing file
// download links for attachments.
func (c *Client) URL() *URL {
	return c.url
}

// HasAPIKey reports whether the client carries a credential.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// APIKey returns the configured credential.
func (c *Client) APIKey() string {
	return c.apiKey
}

// ChangedKeys lists the keys of items changed since the given library
// version, ordered ascending by dateAdded so an interrupted import can be
// resumed by timestamp. Notes are excluded. When collectionKey is set the
// listing is restricted to that collection.
func (c *Client) ChangedKeys(ctx context.Context, collectionKey string, sinceVersion int) ([]string, error) {
	params := url.Values{}
	params.Set("since", fmt.Sprintf("%d", sinceVersion))
	params.Set("format", "versions")
	params.Set("sort", "dateAdded")
	params.Set("direction", "asc")
	params.Set("itemType", "-note")

	var requestURL string
	if collectionKey != "" {
		requestURL = c.url.CollectionItems(collectionKey, params)
	} else {
		requestURL = c.url.Items(params)
	}

	var keys []string
	for requestURL != "" {
		if err := ctx.Err(); err != nil {
			return keys, err
		}

		body, header, err := c.do(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return keys, err
		}

		pageKeys, err := decodeVersionKeys(body)
		if err != nil {
			return keys, fmt.Errorf("failed to decode listing %q: %w", requestURL, err)
		}
		keys = append(keys, pageKeys...)

		// The chunking above already bounds request sizes; the next link
		// is a safety net for server-side sub-pagination.
		requestURL = linkRel(header.Get("Link"), "next")
	}
	return keys, nil
}

// FetchRecords fetches the full records for the given keys in chunks and
// partitions them into parents and children. Records added before since
// are discarded, a defense against clock skew and retry overlap. On
// cancellation the accumulated partial result is returned together with
// the context error.
func (c *Client) FetchRecords(ctx context.Context, keys []string, since time.Time) (*FetchResult, error) {
	result := &FetchResult{
		Parents:  make(map[string]*Record),
		Children: make(map[string][]*Record),
	}

	for _, chunk := range chunkKeys(keys, c.chunkSize) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		params := url.Values{}
		params.Set("itemKey", strings.Join(chunk, ","))
		if c.apiKey != "" {
			// Including the key makes the server add enclosure links;
			// attachments can only be downloaded through them.
			params.Set("key", c.apiKey)
		}

		requestURL := c.url.Items(params)
		body, _, err := c.do(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return result, err
		}

		var records []*Record
		if err := json.Unmarshal(body, &records); err != nil {
			return result, fmt.Errorf("failed to decode records %q: %w", requestURL, err)
		}

		for _, record := range records {
			if !since.IsZero() && record.Data.DateAdded.Before(since) {
				continue
			}
			if record.Data.ParentItem != "" {
				result.Children[record.Data.ParentItem] = append(result.Children[record.Data.ParentItem], record)
			} else {
				result.Parents[record.Key] = record
				result.ParentOrder = append(result.ParentOrder, record.Key)
			}
		}
	}
	return result, nil
}

// Children fetches the child items of one record in a single page.
// itemType filters the children ("attachment" for enclosures); pagination
// is not followed because child cardinality is small.
func (c *Client) Children(ctx context.Context, parentKey, itemType string) ([]*Record, error) {
	params := url.Values{}
	if itemType != "" {
		params.Set("itemType", itemType)
	}

	requestURL := c.url.ItemChildren(parentKey, params)
	body, _, err := c.do(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var records []*Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode children %q: %w", requestURL, err)
	}
	return records, nil
}

// DeleteItems unconditionally deletes the given items in chunks. The
// forced precondition version means server-side version drift never
// blocks the deletion.
func (c *Client) DeleteItems(ctx context.Context, keys []string) error {
	headers := map[string]string{"If-Unmodified-Since-Version": forceVersion}

	for _, chunk := range chunkKeys(keys, c.chunkSize) {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := url.Values{}
		params.Set("itemKey", strings.Join(chunk, ","))
		if _, _, err := c.do(ctx, http.MethodDelete, c.url.Items(params), headers); err != nil {
			return err
		}
	}
	return nil
}

// DeleteItem unconditionally deletes a single item.
func (c *Client) DeleteItem(ctx context.Context, key string) error {
	headers := map[string]string{"If-Unmodified-Since-Version": forceVersion}
	_, _, err := c.do(ctx, http.MethodDelete, c.url.Item(key, nil), headers)
	return err
}

// do issues one request and returns the response body and headers. Any
// non-success status is surfaced as a RequestError.
func (c *Client) do(ctx context.Context, method, rawURL string, headers map[string]string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request %q: %w", rawURL, err)
	}

	req.Header.Set("Zotero-API-Version", apiVersion)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request %q failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response of %q: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &RequestError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, resp.Header, nil
}

// decodeVersionKeys decodes a format=versions listing, an object of
// key to version members, preserving the server's member order. A plain
// map would lose the dateAdded ordering the import depends on, so the
// object is walked token by token.
func decodeVersionKeys(body []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		// Skip the version value.
		var version json.RawMessage
		if err := dec.Decode(&version); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

var linkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// linkRel extracts the URL with the given relationship from a Link
// header. Possible relationships are first, prev, next, last, alternate.
func linkRel(header, rel string) string {
	if header == "" {
		return ""
	}
	for _, match := range linkPattern.FindAllStringSubmatch(header, -1) {
		if match[2] == rel {
			return match[1]
		}
	}
	return ""
}

// chunkKeys splits keys into slices of at most size elements.
func chunkKeys(keys []string, size int) [][]string {
	if size <= 0 {
		size = maxChunkSize
	}
	var chunks [][]string
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}
