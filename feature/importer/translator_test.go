package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refsync/core/catalog"
	"refsync/core/catalog/mocks"
	"refsync/core/mapping"
	"refsync/core/source"
)

func testTerms() Terms {
	properties := []catalog.Property{
		{ID: 1, Term: "dcterms:title"},
		{ID: 2, Term: "dcterms:creator"},
		{ID: 3, Term: "dcterms:subject"},
		{ID: 4, Term: "bibo:uri"},
		{ID: 5, Term: "dcterms:abstract"},
		{ID: 6, Term: "bibo:editor"},
		{ID: 7, Term: "dcterms:date"},
		{ID: 8, Term: "dcterms:isPartOf"},
	}
	classes := []catalog.ResourceClass{
		{ID: 10, Term: "bibo:Book"},
		{ID: 11, Term: "bibo:Document"},
		{ID: 12, Term: "bibo:DocumentPart"},
	}
	return ResolveTerms(properties, classes)
}

func testURL() *source.URL {
	return source.NewURL("https://api.example.org", "user", 12345)
}

func testOptions() Options {
	return Options{
		ItemSetID:   5,
		Policy:      PolicyCreate,
		NameOrder:   NameFirstLast,
		TagLanguage: "en",
	}
}

func bookRecord() *source.Record {
	return &source.Record{
		Key: "AAAA1111",
		Data: source.Data{
			ItemType: "book",
			Title:    "On Computable Numbers",
			Creators: []source.Creator{
				{CreatorType: "author", FirstName: "Ada", LastName: "Lovelace"},
			},
			Tags: []source.Tag{{Tag: "computing"}},
			Fields: map[string]string{
				"title": "On Computable Numbers",
				"url":   "https://example.org/paper",
			},
		},
	}
}

func TestTranslate_Book(t *testing.T) {
	opts := testOptions()
	tr := NewTranslator(testTerms(), opts, testURL(), "", nil, zap.NewNop())

	item, err := tr.Translate(context.Background(), bookRecord(), nil)
	require.NoError(t, err)

	assert.Equal(t, []catalog.Ref{{ID: 5}}, item.ItemSets)
	require.NotNil(t, item.ResourceClass)
	assert.Equal(t, 10, item.ResourceClass.ID)

	assert.Equal(t, []catalog.Value{
		{PropertyID: 1, Type: catalog.ValueLiteral, Value: "On Computable Numbers"},
	}, item.Values["dcterms:title"])
	assert.Equal(t, []catalog.Value{
		{PropertyID: 2, Type: catalog.ValueLiteral, Value: "Ada Lovelace"},
	}, item.Values["dcterms:creator"])
	assert.Equal(t, []catalog.Value{
		{PropertyID: 3, Type: catalog.ValueLiteral, Value: "computing", Language: "en"},
	}, item.Values["dcterms:subject"])

	// URL fields become URI-typed values, not literals.
	assert.Equal(t, []catalog.Value{
		{PropertyID: 4, Type: catalog.ValueURI, URI: "https://example.org/paper"},
	}, item.Values["bibo:uri"])
}

func TestTranslate_DropsUnmappedData(t *testing.T) {
	record := &source.Record{
		Key: "BBBB2222",
		Data: source.Data{
			ItemType: "podcast", // no candidate class registered
			Creators: []source.Creator{
				{CreatorType: "scriptwriter", FirstName: "X", LastName: "Y"}, // knowingly unmapped role
				{CreatorType: "narrator", FirstName: "X", LastName: "Y"},     // unknown role
			},
			Fields: map[string]string{
				"audioFileType": "mp3", // unmapped field
			},
		},
	}

	tr := NewTranslator(testTerms(), testOptions(), testURL(), "", nil, zap.NewNop())
	item, err := tr.Translate(context.Background(), record, nil)
	require.NoError(t, err)

	assert.Nil(t, item.ResourceClass)
	assert.Empty(t, item.Values)
}

func TestMapFields_StableOrderOnSharedTerm(t *testing.T) {
	terms := testTerms()
	// Two source fields resolving to the same registered term.
	terms.Fields = mapping.Resolved{
		"date":      {Prefix: "dcterms", LocalName: "date"},
		"issueDate": {Prefix: "dcterms", LocalName: "date"},
	}

	record := &source.Record{
		Key: "FFFF6666",
		Data: source.Data{
			ItemType: "book",
			Fields: map[string]string{
				"issueDate": "1843-09",
				"date":      "1843",
			},
		},
	}

	tr := NewTranslator(terms, testOptions(), testURL(), "", nil, zap.NewNop())
	for i := 0; i < 10; i++ {
		item, err := tr.Translate(context.Background(), record, nil)
		require.NoError(t, err)
		assert.Equal(t, []catalog.Value{
			{PropertyID: 7, Type: catalog.ValueLiteral, Value: "1843"},
			{PropertyID: 7, Type: catalog.ValueLiteral, Value: "1843-09"},
		}, item.Values["dcterms:date"])
	}
}

func TestComposeName(t *testing.T) {
	cases := []struct {
		name    string
		creator source.Creator
		order   NameOrder
		want    string
	}{
		{"first last", source.Creator{FirstName: "Ada", LastName: "Lovelace"}, NameFirstLast, "Ada Lovelace"},
		{"last first", source.Creator{FirstName: "Ada", LastName: "Lovelace"}, NameLastFirst, "Lovelace Ada"},
		{"last comma", source.Creator{FirstName: "Ada", LastName: "Lovelace"}, NameLastComma, "Lovelace, Ada"},
		{"precomposed only", source.Creator{Name: "Acme Institute"}, NameFirstLast, "Acme Institute"},
		{"precomposed equals parts", source.Creator{Name: "Ada Lovelace", FirstName: "Ada", LastName: "Lovelace"}, NameFirstLast, "Ada Lovelace"},
		{"precomposed equals comma form", source.Creator{Name: "Lovelace, Ada", FirstName: "Ada", LastName: "Lovelace"}, NameLastComma, "Lovelace, Ada"},
		{"last only", source.Creator{LastName: "Lovelace"}, NameFirstLast, "Lovelace"},
		{"empty", source.Creator{}, NameFirstLast, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, composeName(tc.creator, tc.order))
		})
	}
}

func TestTranslate_AttachmentChildBecomesMedia(t *testing.T) {
	opts := testOptions()
	opts.SyncFiles = true

	child := &source.Record{
		Key:   "CCCC3333",
		Links: source.Links{Enclosure: &source.Link{Href: "https://files.example.org/x", Title: "paper.pdf"}},
		Data: source.Data{
			ItemType:   "attachment",
			ParentItem: "AAAA1111",
			Title:      "paper.pdf",
			Fields:     map[string]string{"title": "paper.pdf"},
		},
	}

	tr := NewTranslator(testTerms(), opts, testURL(), "secret", nil, zap.NewNop())
	item, err := tr.Translate(context.Background(), bookRecord(), []*source.Record{child})
	require.NoError(t, err)

	require.Len(t, item.Media, 1)
	media := item.Media[0]
	assert.Equal(t, "url", media.Ingester)
	assert.Equal(t, "https://api.example.org/users/12345/items/CCCC3333/file", media.Source)
	assert.Equal(t, "https://api.example.org/users/12345/items/CCCC3333/file?key=secret", media.IngestURL)
	assert.Equal(t, []catalog.Value{
		{PropertyID: 1, Type: catalog.ValueLiteral, Value: "paper.pdf"},
	}, media.Values["dcterms:title"])

	// Attachment fields never leak into the parent's values.
	assert.NotContains(t, item.Values["dcterms:title"], catalog.Value{
		PropertyID: 1, Type: catalog.ValueLiteral, Value: "paper.pdf",
	})
}

func TestTranslate_AttachmentNeedsEnclosureAndCredential(t *testing.T) {
	opts := testOptions()
	opts.SyncFiles = true

	noEnclosure := &source.Record{
		Key:  "DDDD4444",
		Data: source.Data{ItemType: "attachment", ParentItem: "AAAA1111"},
	}
	withEnclosure := &source.Record{
		Key:   "EEEE5555",
		Links: source.Links{Enclosure: &source.Link{Href: "https://files.example.org/y"}},
		Data:  source.Data{ItemType: "attachment", ParentItem: "AAAA1111"},
	}

	// A linked file without a credential cannot be downloaded either way.
	tr := NewTranslator(testTerms(), opts, testURL(), "", nil, zap.NewNop())
	item, err := tr.Translate(context.Background(), bookRecord(), []*source.Record{noEnclosure, withEnclosure})
	require.NoError(t, err)
	assert.Empty(t, item.Media)

	opts.SyncFiles = false
	tr = NewTranslator(testTerms(), opts, testURL(), "secret", nil, zap.NewNop())
	item, err = tr.Translate(context.Background(), bookRecord(), []*source.Record{withEnclosure})
	require.NoError(t, err)
	assert.Empty(t, item.Media)
}

func TestTranslate_TagsAsItems(t *testing.T) {
	opts := testOptions()
	opts.TagAsItem = true

	api := new(mocks.API)
	api.On("SearchItems", mock.Anything, catalog.ItemQuery{
		PropertyID: 1,
		Text:       "computing",
		Limit:      1,
		SortBy:     "id",
		SortOrder:  "asc",
	}).Return([]catalog.Item{{ID: 77}}, nil)

	terms := testTerms()
	tags := NewTagMaterializer(api, terms, opts, zap.NewNop())
	tr := NewTranslator(terms, opts, testURL(), "", tags, zap.NewNop())

	item, err := tr.Translate(context.Background(), bookRecord(), nil)
	require.NoError(t, err)

	assert.Equal(t, []catalog.Value{
		{PropertyID: 3, Type: catalog.ValueResourceItem, ResourceID: 77},
	}, item.Values["dcterms:subject"])
	api.AssertExpectations(t)
}
