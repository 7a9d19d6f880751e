package source

import (
	"encoding/json"
	"time"
)

// Record is one item of the source library. Only the parts needed for
// translation are decoded; server bookkeeping sections (library, meta,
// self/alternate links) are never retained, which keeps memory bounded
// on large imports.
type Record struct {
	Key     string `json:"key"`
	Version int    `json:"version"`
	Links   Links  `json:"links"`
	Data    Data   `json:"data"`
}

// Links holds the subset of response links used downstream. An attachment
// can only be downloaded when the response includes an enclosure link.
type Links struct {
	Enclosure *Link `json:"enclosure"`
}

// Link is a single response link.
type Link struct {
	Href  string `json:"href"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Creator is one creator entry of a record. Either Name or the
// FirstName/LastName pair is set, depending on the creator kind.
type Creator struct {
	CreatorType string `json:"creatorType"`
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// Tag is one free-text tag of a record.
type Tag struct {
	Tag string `json:"tag"`
}

// Data is the data section of a record. Scalar string fields that have no
// dedicated struct field are collected into Fields so the generic field
// mapping can iterate them.
type Data struct {
	ItemType   string
	ParentItem string
	Title      string
	DateAdded  time.Time
	Creators   []Creator
	Tags       []Tag
	Fields     map[string]string
}

// IsAttachment reports whether the record is an attachment item.
func (r *Record) IsAttachment() bool {
	return r.Data.ItemType == "attachment"
}

// dataEnvelope covers the typed members of the data section.
type dataEnvelope struct {
	ItemType   string    `json:"itemType"`
	ParentItem string    `json:"parentItem"`
	DateAdded  time.Time `json:"dateAdded"`
	Creators   []Creator `json:"creators"`
	Tags       []Tag     `json:"tags"`
}

// structural members of the data section that must not leak into the
// generic field map
var nonFieldKeys = map[string]struct{}{
	"key":          {},
	"version":      {},
	"itemType":     {},
	"parentItem":   {},
	"dateAdded":    {},
	"dateModified": {},
	"creators":     {},
	"tags":         {},
	"collections":  {},
	"relations":    {},
	"linkMode":     {},
	"contentType":  {},
	"charset":      {},
	"filename":     {},
	"md5":          {},
	"mtime":        {},
	"note":         {},
}

// UnmarshalJSON decodes the typed members and collects every remaining
// non-empty scalar string member into Fields.
func (d *Data) UnmarshalJSON(b []byte) error {
	var env dataEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	fields := make(map[string]string)
	for key, value := range raw {
		if _, skip := nonFieldKeys[key]; skip {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			// Not a scalar string (array, object, number); the field
			// mapping only handles scalar values.
			continue
		}
		if s == "" {
			continue
		}
		fields[key] = s
	}

	d.ItemType = env.ItemType
	d.ParentItem = env.ParentItem
	d.DateAdded = env.DateAdded
	d.Creators = env.Creators
	d.Tags = env.Tags
	d.Fields = fields
	d.Title = fields["title"]
	return nil
}
