package importer

import (
	"fmt"
	"time"
)

// DuplicatePolicy selects what happens to parents that were already
// imported in a prior run.
type DuplicatePolicy string

const (
	// PolicyCreate imports every parent as a new catalog item, even when
	// a prior run already imported it.
	PolicyCreate DuplicatePolicy = "create"
	// PolicyReplace updates the existing catalog item wholesale instead
	// of creating a duplicate.
	PolicyReplace DuplicatePolicy = "replace"
)

// NameOrder selects how creator person names are composed.
type NameOrder string

const (
	// NameFirstLast composes "First Last".
	NameFirstLast NameOrder = "first"
	// NameLastFirst composes "Last First".
	NameLastFirst NameOrder = "last"
	// NameLastComma composes "Last, First".
	NameLastComma NameOrder = "last_comma"
)

// Options are the run-scoped import parameters. They arrive from the
// sync command's flags, not from the environment configuration.
type Options struct {
	// ItemSetID is the catalog item set every imported item is put into.
	ItemSetID int
	// CollectionKey restricts the import to one source collection.
	CollectionKey string
	// SinceVersion is the source library version of the last import; only
	// items changed after it are listed.
	SinceVersion int
	// SinceTimestamp discards fetched records added before it, a guard
	// against clock skew and retry overlap.
	SinceTimestamp time.Time
	// Policy is the duplicate-handling policy.
	Policy DuplicatePolicy
	// SyncFiles enables attachment file import; requires a source API key.
	SyncFiles bool
	// NameOrder is the creator name composition policy.
	NameOrder NameOrder
	// TagLanguage is the language tag attached to subject values.
	TagLanguage string
	// TagAsItem materializes tags as catalog items instead of literals,
	// making them translatable and linkable.
	TagAsItem bool
	// TagAsConcept creates tag items as thesaurus concepts when a skos
	// vocabulary is registered. Only meaningful with TagAsItem.
	TagAsConcept bool
	// TagParentItemID relates new tag items to a main tag item when set.
	TagParentItemID int
	// TagItemSetID stores new tag items in an item set when set.
	TagItemSetID int
}

// Validate checks the option combination before a run starts.
func (o Options) Validate() error {
	if o.ItemSetID <= 0 {
		return fmt.Errorf("an item set id is required")
	}
	switch o.Policy {
	case PolicyCreate, PolicyReplace:
	default:
		return fmt.Errorf("unknown duplicate policy %q", o.Policy)
	}
	switch o.NameOrder {
	case NameFirstLast, NameLastFirst, NameLastComma:
	default:
		return fmt.Errorf("unknown name order %q", o.NameOrder)
	}
	return nil
}
