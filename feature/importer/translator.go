package importer

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"refsync/core/catalog"
	"refsync/core/mapping"
	"refsync/core/source"
)

const subjectTerm = "dcterms:subject"

// terms whose values carry a URL and become URI-typed instead of literal
var uriTerms = map[mapping.Term]struct{}{
	{Prefix: "bibo", LocalName: "uri"}: {},
}

// Translator converts one source record, together with its attachment
// children, into a catalog item payload. All vocabulary resolution
// happened up front in Terms; translation itself only touches the
// catalog when tags are materialized as items.
type Translator struct {
	terms  Terms
	opts   Options
	url    *source.URL
	apiKey string
	tags   *TagMaterializer
	log    *zap.Logger

	subjectID int
	titleID   int
}

// NewTranslator creates a translator. tags is nil when tags stay
// literal values.
func NewTranslator(terms Terms, opts Options, u *source.URL, apiKey string, tags *TagMaterializer, log *zap.Logger) *Translator {
	t := &Translator{
		terms:     terms,
		opts:      opts,
		url:       u,
		apiKey:    apiKey,
		tags:      tags,
		log:       log,
		subjectID: terms.Properties.ID(mapping.Term{Prefix: "dcterms", LocalName: "subject"}),
		titleID:   terms.Properties.ID(mapping.Term{Prefix: "dcterms", LocalName: "title"}),
	}
	if t.subjectID == 0 {
		log.Warn("dcterms:subject is not registered, tags will not be imported")
	}
	return t
}

// Translate builds the catalog item for a parent record. Children are
// the record's attachment items; each one that carries a downloadable
// file becomes a media sub-resource.
func (t *Translator) Translate(ctx context.Context, parent *source.Record, children []*source.Record) (*catalog.Item, error) {
	item := &catalog.Item{ItemSets: []catalog.Ref{{ID: t.opts.ItemSetID}}}

	t.mapClass(parent, item)
	t.mapCreators(parent, item)
	if err := t.mapTags(ctx, parent, item); err != nil {
		return nil, err
	}
	t.mapFields(parent, item)

	t.mapAttachment(parent, item)
	for _, child := range children {
		t.mapAttachment(child, item)
	}
	return item, nil
}

func (t *Translator) mapClass(r *source.Record, item *catalog.Item) {
	term, ok := t.terms.ItemTypes[r.Data.ItemType]
	if !ok {
		return
	}
	if id := t.terms.Classes.ID(term); id != 0 {
		item.ResourceClass = &catalog.Ref{ID: id}
	}
}

func (t *Translator) mapCreators(r *source.Record, item *catalog.Item) {
	for _, c := range r.Data.Creators {
		term, ok := t.terms.Creators[c.CreatorType]
		if !ok {
			continue
		}
		name := composeName(c, t.opts.NameOrder)
		if name == "" {
			continue
		}
		item.AppendValue(term.String(), catalog.Value{
			PropertyID: t.terms.Properties.ID(term),
			Type:       catalog.ValueLiteral,
			Value:      name,
		})
	}
}

func (t *Translator) mapTags(ctx context.Context, r *source.Record, item *catalog.Item) error {
	if t.subjectID == 0 {
		return nil
	}
	for _, tag := range r.Data.Tags {
		if tag.Tag == "" {
			continue
		}
		if t.tags != nil {
			id, err := t.tags.GetOrCreate(ctx, tag.Tag)
			if err != nil {
				return err
			}
			item.AppendValue(subjectTerm, catalog.Value{
				PropertyID: t.subjectID,
				Type:       catalog.ValueResourceItem,
				ResourceID: id,
			})
			continue
		}
		item.AppendValue(subjectTerm, catalog.Value{
			PropertyID: t.subjectID,
			Type:       catalog.ValueLiteral,
			Value:      tag.Tag,
			Language:   t.opts.TagLanguage,
		})
	}
	return nil
}

// mapFields appends the generic field values. Keys are walked in sorted
// order so two fields resolving to the same term always produce the
// same value order.
func (t *Translator) mapFields(r *source.Record, item *catalog.Item) {
	keys := make([]string, 0, len(r.Data.Fields))
	for key := range r.Data.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := r.Data.Fields[key]
		term, ok := t.terms.Fields[key]
		if !ok {
			continue
		}
		v := catalog.Value{
			PropertyID: t.terms.Properties.ID(term),
			Type:       catalog.ValueLiteral,
			Value:      value,
		}
		if _, uri := uriTerms[term]; uri {
			v.Type = catalog.ValueURI
			v.Value = ""
			v.URI = value
		}
		item.AppendValue(term.String(), v)
	}
}

// mapAttachment turns an attachment record into a URL-ingested media.
// File import requires an enclosure link in the source response, the
// file sync option, and an API key to build the credentialed download
// URL; otherwise the attachment is silently left out.
func (t *Translator) mapAttachment(r *source.Record, item *catalog.Item) {
	if !r.IsAttachment() || r.Links.Enclosure == nil {
		return
	}
	if !t.opts.SyncFiles || t.apiKey == "" {
		return
	}

	params := url.Values{}
	params.Set("key", t.apiKey)
	media := catalog.Media{
		Ingester:  "url",
		Source:    t.url.ItemFile(r.Key, nil),
		IngestURL: t.url.ItemFile(r.Key, params),
	}
	if t.titleID != 0 && r.Data.Title != "" {
		media.Values = map[string][]catalog.Value{
			"dcterms:title": {{
				PropertyID: t.titleID,
				Type:       catalog.ValueLiteral,
				Value:      r.Data.Title,
			}},
		}
	}
	item.Media = append(item.Media, media)
}

// composeName builds a creator's display name from the precomposed name
// and the first/last parts, in the configured order. When the
// precomposed name is just the parts in some recognized order, it wins
// alone instead of being doubled.
func composeName(c source.Creator, order NameOrder) string {
	name := c.Name
	switch order {
	case NameLastComma:
		if c.LastName != "" {
			name += " " + c.LastName
		}
		if c.FirstName != "" {
			name += ", " + c.FirstName
		}
	case NameLastFirst:
		if c.LastName != "" {
			name += " " + c.LastName
		}
		if c.FirstName != "" {
			name += " " + c.FirstName
		}
	default:
		if c.FirstName != "" {
			name += " " + c.FirstName
		}
		if c.LastName != "" {
			name += " " + c.LastName
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if c.Name != "" {
		switch c.Name {
		case c.FirstName + " " + c.LastName,
			c.LastName + " " + c.FirstName,
			c.LastName + ", " + c.FirstName:
			name = c.Name
		}
	}
	return name
}
