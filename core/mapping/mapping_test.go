package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() Registry {
	return Registry{
		{Prefix: "dcterms", LocalName: "title"}:   1,
		{Prefix: "dcterms", LocalName: "creator"}: 2,
		{Prefix: "bibo", LocalName: "Article"}:    3,
		{Prefix: "bibo", LocalName: "Book"}:       4,
	}
}

func TestPrepare_FirstRegisteredCandidateWins(t *testing.T) {
	raw := RawMap{
		// fabio is not registered, the bibo fallback must win.
		"blogPost": {"fabio:blogPost", "bibo:Article"},
		"book":     {"bibo:Book"},
	}

	resolved := Prepare(raw, testRegistry())
	require.Len(t, resolved, 2)
	assert.Equal(t, Term{Prefix: "bibo", LocalName: "Article"}, resolved["blogPost"])
	assert.Equal(t, Term{Prefix: "bibo", LocalName: "Book"}, resolved["book"])
}

func TestPrepare_DropsEmptyAndUnregistered(t *testing.T) {
	raw := RawMap{
		"scriptwriter": {},                  // knowingly unmapped
		"podcast":      {"fabio:Audio"},     // no candidate registered
		"author":       {"dcterms:creator"}, // kept
		"broken":       {"notaterm"},        // unparseable candidate
	}

	resolved := Prepare(raw, testRegistry())
	require.Len(t, resolved, 1)
	assert.Contains(t, resolved, "author")
	assert.NotContains(t, resolved, "scriptwriter")
	assert.NotContains(t, resolved, "podcast")
	assert.NotContains(t, resolved, "broken")
}

func TestPrepare_NeverInventsTerms(t *testing.T) {
	registry := testRegistry()
	resolved := Prepare(ItemTypeMap, registry)

	for key, term := range resolved {
		assert.True(t, registry.Has(term), "key %q resolved to unregistered term %s", key, term)
	}
}

func TestInvert_FirstKeyWinsDeterministically(t *testing.T) {
	raw := RawMap{
		"seriesEditor": {"bibo:editor"},
		"editor":       {"bibo:editor"},
		"author":       {"dcterms:creator"},
	}

	inverted := Invert(raw)
	// Both roles claim bibo:editor; the lexically smallest key wins so
	// repeated runs agree.
	assert.Equal(t, "editor", inverted["bibo:editor"])
	assert.Equal(t, "author", inverted["dcterms:creator"])
}

func TestParseTerm(t *testing.T) {
	term, ok := ParseTerm("dcterms:title")
	require.True(t, ok)
	assert.Equal(t, "dcterms", term.Prefix)
	assert.Equal(t, "title", term.LocalName)
	assert.Equal(t, "dcterms:title", term.String())

	_, ok = ParseTerm("noprefix")
	assert.False(t, ok)
	_, ok = ParseTerm(":empty")
	assert.False(t, ok)
}
