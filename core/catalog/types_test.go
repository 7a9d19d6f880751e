package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemMarshal_MergesTermValues(t *testing.T) {
	item := &Item{
		ItemSets:      []Ref{{ID: 7}},
		ResourceClass: &Ref{ID: 42},
	}
	item.AppendValue("dcterms:title", Value{
		PropertyID: 1,
		Type:       ValueLiteral,
		Value:      "On the Economy of Machinery",
	})
	item.AppendValue("bibo:uri", Value{
		PropertyID: 2,
		Type:       ValueURI,
		URI:        "https://example.org/babbage",
	})

	encoded, err := json.Marshal(item)
	require.NoError(t, err)

	var object map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &object))

	// Structural and term-keyed members live side by side.
	assert.Contains(t, object, "o:item_set")
	assert.Contains(t, object, "o:resource_class")
	assert.Contains(t, object, "dcterms:title")
	assert.Contains(t, object, "bibo:uri")
	assert.NotContains(t, object, "Values")
}

func TestItemUnmarshal_SplitsTermValues(t *testing.T) {
	payload := `{
		"o:id": 99,
		"o:item_set": [{"o:id": 7}],
		"dcterms:title": [{"property_id": 1, "type": "literal", "@value": "X"}]
	}`

	var item Item
	require.NoError(t, json.Unmarshal([]byte(payload), &item))

	assert.Equal(t, 99, item.ID)
	require.Len(t, item.ItemSets, 1)
	require.Len(t, item.Values["dcterms:title"], 1)
	assert.Equal(t, "X", item.Values["dcterms:title"][0].Value)
}
