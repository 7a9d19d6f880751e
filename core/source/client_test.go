package source

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(Config{
		Endpoint:    "https://api.example.org",
		LibraryType: "user",
		LibraryID:   475425,
		APIKey:      "secret",
	}, zap.NewNop())

	httpmock.ActivateNonDefault(c.http)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestChangedKeys_PreservesServerOrder(t *testing.T) {
	c := newTestClient(t)

	// Keys deliberately not in lexical order; the server sorts by
	// dateAdded and that order must survive decoding.
	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		httpmock.NewStringResponder(http.StatusOK, `{"ZZZZZZZZ": 10, "AAAAAAAA": 12, "MMMMMMMM": 15}`))

	keys, err := c.ChangedKeys(context.Background(), "", 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZZZZZZZ", "AAAAAAAA", "MMMMMMMM"}, keys)
}

func TestChangedKeys_FollowsNextLink(t *testing.T) {
	c := newTestClient(t)

	first := httpmock.NewStringResponse(http.StatusOK, `{"AAAAAAAA": 1}`)
	first.Header.Set("Link", `<https://api.example.org/users/475425/items?start=1>; rel="next", <https://api.example.org/users/475425/items?start=0>; rel="first"`)
	httpmock.RegisterResponder(http.MethodGet, "https://api.example.org/users/475425/items",
		httpmock.ResponderFromResponse(first))
	httpmock.RegisterResponderWithQuery(http.MethodGet, "https://api.example.org/users/475425/items", "start=1",
		httpmock.NewStringResponder(http.StatusOK, `{"BBBBBBBB": 2}`))

	keys, err := c.ChangedKeys(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAAAAAA", "BBBBBBBB"}, keys)
}

func TestChangedKeys_CollectionScope(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/collections/COLL1234/items`,
		httpmock.NewStringResponder(http.StatusOK, `{"AAAAAAAA": 3}`))

	keys, err := c.ChangedKeys(context.Background(), "COLL1234", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAAAAAAA"}, keys)
}

func TestChangedKeys_RequestError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		httpmock.NewStringResponder(http.StatusForbidden, `Invalid key`))

	_, err := c.ChangedKeys(context.Background(), "", 0)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
	assert.Equal(t, "Invalid key", reqErr.Body)
	assert.Contains(t, reqErr.Error(), "Invalid key")
}

func TestFetchRecords_ChunksRequests(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		httpmock.NewStringResponder(http.StatusOK, `[]`))

	keys := make([]string, 120)
	for i := range keys {
		keys[i] = "KEY" + string(rune('A'+i%26)) + string(rune('A'+i/26))
	}

	_, err := c.FetchRecords(context.Background(), keys, time.Time{})
	require.NoError(t, err)

	// 120 keys with a chunk size of 50 means exactly 3 requests.
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestFetchRecords_PartitionsParentsAndChildren(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		httpmock.NewStringResponder(http.StatusOK, `[
			{"key": "PARENT01", "version": 5, "data": {"itemType": "book", "title": "First", "dateAdded": "2020-06-01T10:00:00Z"}},
			{"key": "CHILD001", "version": 6, "data": {"itemType": "attachment", "parentItem": "PARENT01", "title": "scan.pdf", "dateAdded": "2020-06-01T10:05:00Z"}},
			{"key": "PARENT02", "version": 7, "data": {"itemType": "thesis", "title": "Second", "dateAdded": "2020-06-02T10:00:00Z"}}
		]`))

	result, err := c.FetchRecords(context.Background(), []string{"PARENT01", "CHILD001", "PARENT02"}, time.Time{})
	require.NoError(t, err)

	assert.Len(t, result.Parents, 2)
	assert.Equal(t, []string{"PARENT01", "PARENT02"}, result.ParentOrder)
	require.Len(t, result.Children["PARENT01"], 1)
	assert.Equal(t, "CHILD001", result.Children["PARENT01"][0].Key)
}

func TestFetchRecords_DiscardsRecordsAddedBeforeSince(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		httpmock.NewStringResponder(http.StatusOK, `[
			{"key": "OLD00001", "version": 5, "data": {"itemType": "book", "dateAdded": "2019-01-01T00:00:00Z"}},
			{"key": "NEW00001", "version": 6, "data": {"itemType": "book", "dateAdded": "2021-01-01T00:00:00Z"}}
		]`))

	since := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	result, err := c.FetchRecords(context.Background(), []string{"OLD00001", "NEW00001"}, since)
	require.NoError(t, err)

	assert.NotContains(t, result.Parents, "OLD00001")
	assert.Contains(t, result.Parents, "NEW00001")
}

func TestFetchRecords_CancellationReturnsPartialResult(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		func(req *http.Request) (*http.Response, error) {
			// Stop cooperatively after the first chunk completes.
			cancel()
			return httpmock.NewStringResponse(http.StatusOK,
				`[{"key": "PARENT01", "version": 5, "data": {"itemType": "book", "dateAdded": "2021-01-01T00:00:00Z"}}]`), nil
		})

	keys := make([]string, 60)
	for i := range keys {
		keys[i] = "KEY"
	}

	result, err := c.FetchRecords(ctx, keys, time.Time{})
	require.ErrorIs(t, err, context.Canceled)

	// The first chunk's records were accumulated before the stop.
	assert.Contains(t, result.Parents, "PARENT01")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestChildren(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items/PARENT01/children`,
		httpmock.NewStringResponder(http.StatusOK, `[
			{"key": "CHILD001", "version": 3, "data": {"itemType": "attachment", "title": "notes.pdf", "dateAdded": "2020-06-01T10:05:00Z"}}
		]`))

	children, err := c.Children(context.Background(), "PARENT01", "attachment")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "CHILD001", children[0].Key)
	assert.True(t, children[0].IsAttachment())
}

func TestDeleteItems_SendsForcedPrecondition(t *testing.T) {
	c := newTestClient(t)

	var gotVersion string
	httpmock.RegisterResponder(http.MethodDelete, `=~users/475425/items`,
		func(req *http.Request) (*http.Response, error) {
			gotVersion = req.Header.Get("If-Unmodified-Since-Version")
			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	err := c.DeleteItems(context.Background(), []string{"AAAAAAAA", "BBBBBBBB"})
	require.NoError(t, err)
	assert.Equal(t, "999999999", gotVersion)
}

func TestRequestHeaders(t *testing.T) {
	c := newTestClient(t)

	var gotAuth, gotVersion string
	httpmock.RegisterResponder(http.MethodGet, `=~users/475425/items`,
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			gotVersion = req.Header.Get("Zotero-API-Version")
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	_, err := c.ChangedKeys(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "3", gotVersion)
}
