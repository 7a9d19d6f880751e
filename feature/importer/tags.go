package importer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"refsync/core/catalog"
	"refsync/core/mapping"
)

const (
	skosNamespace        = "http://www.w3.org/2004/02/skos/core#"
	conceptTemplateLabel = "Thesaurus Concept"
)

// tagTemplate is the resolved shape of tag items for one run: which
// property carries the label, which class and resource template apply,
// and how a new tag relates to the main tag item and item set.
type tagTemplate struct {
	labelTerm    string
	labelID      int
	relationTerm string
	relationID   int
	classID      int
	templateID   int
	parentItemID int
	itemSetID    int
}

// TagMaterializer turns free-text tags into catalog items, one item per
// distinct tag. Lookups are exact-match on the label with the oldest
// item winning, so concurrent imports converge on the same tag items.
// The tag template is resolved against the catalog once, on the first
// tag of the run.
type TagMaterializer struct {
	api   catalog.API
	terms Terms
	opts  Options
	log   *zap.Logger

	cache    map[string]int
	resolved bool
	tpl      tagTemplate
}

// NewTagMaterializer creates a materializer for one run.
func NewTagMaterializer(api catalog.API, terms Terms, opts Options, log *zap.Logger) *TagMaterializer {
	return &TagMaterializer{
		api:   api,
		terms: terms,
		opts:  opts,
		log:   log,
		cache: make(map[string]int),
	}
}

// GetOrCreate returns the catalog item id for a tag, creating the tag
// item when no item with that exact label exists yet. Results are
// cached for the rest of the run.
func (t *TagMaterializer) GetOrCreate(ctx context.Context, tag string) (int, error) {
	if id, ok := t.cache[tag]; ok {
		return id, nil
	}
	if err := t.resolve(ctx); err != nil {
		return 0, err
	}

	found, err := t.api.SearchItems(ctx, catalog.ItemQuery{
		PropertyID: t.tpl.labelID,
		Text:       tag,
		ItemSetID:  t.tpl.itemSetID,
		Limit:      1,
		SortBy:     "id",
		SortOrder:  "asc",
	})
	if err != nil {
		return 0, err
	}
	if len(found) > 0 {
		t.cache[tag] = found[0].ID
		return found[0].ID, nil
	}

	item := &catalog.Item{}
	if t.tpl.classID != 0 {
		item.ResourceClass = &catalog.Ref{ID: t.tpl.classID}
	}
	if t.tpl.templateID != 0 {
		item.Template = &catalog.Ref{ID: t.tpl.templateID}
	}
	if t.tpl.itemSetID != 0 {
		item.ItemSets = []catalog.Ref{{ID: t.tpl.itemSetID}}
	}
	item.AppendValue(t.tpl.labelTerm, catalog.Value{
		PropertyID: t.tpl.labelID,
		Type:       catalog.ValueLiteral,
		Value:      tag,
		Language:   t.opts.TagLanguage,
	})
	if t.tpl.parentItemID != 0 && t.tpl.relationID != 0 {
		item.AppendValue(t.tpl.relationTerm, catalog.Value{
			PropertyID: t.tpl.relationID,
			Type:       catalog.ValueResourceItem,
			ResourceID: t.tpl.parentItemID,
		})
	}

	created, err := t.api.CreateItem(ctx, item)
	if err != nil {
		return 0, err
	}
	t.log.Info("created tag item", zap.String("tag", tag), zap.Int("item_id", created.ID))
	t.cache[tag] = created.ID
	return created.ID, nil
}

// resolve fixes the tag template for the run. Thesaurus mode needs a
// registered skos vocabulary; without one it degrades to plain dcterms
// tag items. A missing main tag item or tag item set is logged and
// dropped rather than failing the run.
func (t *TagMaterializer) resolve(ctx context.Context) error {
	if t.resolved {
		return nil
	}

	thesaurus := false
	if t.opts.TagAsConcept {
		vocabularies, err := t.api.Vocabularies(ctx)
		if err != nil {
			return err
		}
		for _, v := range vocabularies {
			if v.NamespaceURI == skosNamespace {
				thesaurus = true
				break
			}
		}
		if !thesaurus {
			t.log.Warn("no skos vocabulary registered, creating plain tag items")
		}
	}

	label := mapping.Term{Prefix: "dcterms", LocalName: "title"}
	relation := mapping.Term{Prefix: "dcterms", LocalName: "isPartOf"}
	if thesaurus {
		label = mapping.Term{Prefix: "skos", LocalName: "prefLabel"}
		relation = mapping.Term{Prefix: "skos", LocalName: "inScheme"}
		t.tpl.classID = t.terms.Classes.ID(mapping.Term{Prefix: "skos", LocalName: "Concept"})

		template, err := t.api.FindTemplate(ctx, catalog.TemplateQuery{Label: conceptTemplateLabel})
		if err != nil {
			return err
		}
		if template != nil {
			t.tpl.templateID = template.ID
		}
	}

	t.tpl.labelID = t.terms.Properties.ID(label)
	if t.tpl.labelID == 0 {
		return fmt.Errorf("tag label property %s is not registered", label)
	}
	t.tpl.labelTerm = label.String()
	t.tpl.relationTerm = relation.String()
	t.tpl.relationID = t.terms.Properties.ID(relation)

	if t.opts.TagParentItemID != 0 {
		if _, err := t.api.ReadItem(ctx, t.opts.TagParentItemID); err != nil {
			var notFound *catalog.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
			t.log.Warn("main tag item does not exist, new tags will not be related",
				zap.Int("item_id", t.opts.TagParentItemID))
		} else {
			t.tpl.parentItemID = t.opts.TagParentItemID
		}
	}
	if t.opts.TagItemSetID != 0 {
		if _, err := t.api.ReadItemSet(ctx, t.opts.TagItemSetID); err != nil {
			var notFound *catalog.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
			t.log.Warn("tag item set does not exist, new tags will not be assigned",
				zap.Int("item_set_id", t.opts.TagItemSetID))
		} else {
			t.tpl.itemSetID = t.opts.TagItemSetID
		}
	}

	t.resolved = true
	return nil
}
