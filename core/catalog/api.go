package catalog

import "context"

// ItemQuery is a property-equals search over items.
type ItemQuery struct {
	// PropertyID restricts the search to items whose property has exactly
	// the given text.
	PropertyID int
	Text       string
	// ItemSetID restricts the search to one item set when non-zero.
	ItemSetID int
	// Limit caps the number of results (0 means server default).
	Limit int
	// SortBy / SortOrder fix the result ordering, e.g. "id" / "asc" for
	// first-created-wins lookups.
	SortBy    string
	SortOrder string
}

// TemplateQuery locates a resource template either by exact label or by
// the resource class it applies to.
type TemplateQuery struct {
	Label           string
	ResourceClassID int
}

// API is the boundary to the target catalog. The catalog's storage engine
// is opaque; everything goes through these operations.
//
// Update is full-replace, not merge. BatchCreateItems tolerates partial
// failure: the result slice is aligned with the input and holds nil for
// every payload the catalog rejected.
type API interface {
	Vocabularies(ctx context.Context) ([]Vocabulary, error)
	Properties(ctx context.Context) ([]Property, error)
	ResourceClasses(ctx context.Context) ([]ResourceClass, error)

	SearchItems(ctx context.Context, query ItemQuery) ([]Item, error)
	ReadItem(ctx context.Context, id int) (*Item, error)
	ReadItemSet(ctx context.Context, id int) (*ItemSet, error)
	FindTemplate(ctx context.Context, query TemplateQuery) (*Template, error)

	CreateItem(ctx context.Context, item *Item) (*Item, error)
	UpdateItem(ctx context.Context, id int, item *Item) (*Item, error)
	BatchCreateItems(ctx context.Context, items []*Item) ([]*Item, error)
}
