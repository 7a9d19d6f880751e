package catalog

import (
	"encoding/json"
	"strings"
)

// Value types understood by the catalog.
const (
	ValueLiteral      = "literal"
	ValueURI          = "uri"
	ValueResourceItem = "resource:item"
)

// Ref is a reference to another catalog resource by id.
type Ref struct {
	ID int `json:"o:id"`
}

// Value is a single value of a vocabulary term on a resource. Exactly one
// of Value, URI or ResourceID is set, according to Type.
type Value struct {
	PropertyID int    `json:"property_id"`
	Type       string `json:"type"`
	Value      string `json:"@value,omitempty"`
	Language   string `json:"@language,omitempty"`
	URI        string `json:"@id,omitempty"`
	ResourceID int    `json:"value_resource_id,omitempty"`
}

// Media is a media sub-resource ingested by URL. Source is the public
// reference URL, IngestURL the credentialed download location.
type Media struct {
	Ingester  string             `json:"o:ingester"`
	Source    string             `json:"o:source"`
	IngestURL string             `json:"ingest_url"`
	Values    map[string][]Value `json:"-"`
}

// Item is a catalog item, both as a write payload and as a response.
// Values are keyed by vocabulary term ("prefix:localName") and serialized
// as top-level members next to the o:-prefixed structural ones.
type Item struct {
	ID            int                `json:"o:id,omitempty"`
	ItemSets      []Ref              `json:"o:item_set,omitempty"`
	ResourceClass *Ref               `json:"o:resource_class,omitempty"`
	Template      *Ref               `json:"o:resource_template,omitempty"`
	Media         []Media            `json:"o:media,omitempty"`
	Values        map[string][]Value `json:"-"`
}

// ItemSet is an item collection.
type ItemSet struct {
	ID int `json:"o:id"`
}

// Vocabulary is a registered vocabulary.
type Vocabulary struct {
	ID           int    `json:"o:id"`
	Prefix       string `json:"o:prefix"`
	NamespaceURI string `json:"o:namespace_uri"`
}

// Property is a registered vocabulary property. Term is the
// "prefix:localName" form.
type Property struct {
	ID        int    `json:"o:id"`
	LocalName string `json:"o:local_name"`
	Term      string `json:"o:term"`
}

// ResourceClass is a registered vocabulary class.
type ResourceClass struct {
	ID        int    `json:"o:id"`
	LocalName string `json:"o:local_name"`
	Term      string `json:"o:term"`
}

// Template is a resource template.
type Template struct {
	ID    int    `json:"o:id"`
	Label string `json:"o:label"`
}

// AppendValue appends a value under a term.
func (i *Item) AppendValue(term string, v Value) {
	if i.Values == nil {
		i.Values = make(map[string][]Value)
	}
	i.Values[term] = append(i.Values[term], v)
}

// mergeValues flattens struct members and term-keyed values into one
// JSON object.
func mergeValues(structural []byte, values map[string][]Value) ([]byte, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(structural, &object); err != nil {
		return nil, err
	}
	for term, vals := range values {
		encoded, err := json.Marshal(vals)
		if err != nil {
			return nil, err
		}
		object[term] = encoded
	}
	return json.Marshal(object)
}

func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	structural, err := json.Marshal(plain(i))
	if err != nil {
		return nil, err
	}
	return mergeValues(structural, i.Values)
}

func (m Media) MarshalJSON() ([]byte, error) {
	type plain Media
	structural, err := json.Marshal(plain(m))
	if err != nil {
		return nil, err
	}
	return mergeValues(structural, m.Values)
}

func (i *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*i = Item(p)
	for key, value := range raw {
		// Term-keyed members carry a vocabulary prefix; everything else
		// is structural.
		if !strings.Contains(key, ":") || strings.HasPrefix(key, "o:") || strings.HasPrefix(key, "@") {
			continue
		}
		var vals []Value
		if err := json.Unmarshal(value, &vals); err != nil {
			continue
		}
		if i.Values == nil {
			i.Values = make(map[string][]Value)
		}
		i.Values[key] = vals
	}
	return nil
}
