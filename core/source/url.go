package source

import (
	"fmt"
	"net/url"
	"strings"
)

// URL builds endpoint URLs for one library of the source API.
type URL struct {
	base   string
	prefix string
}

// NewURL creates a URL builder for a library. libraryType is "user" or
// "group", id is the numeric library id.
func NewURL(base, libraryType string, libraryID int) *URL {
	return &URL{
		base:   strings.TrimSuffix(base, "/"),
		prefix: fmt.Sprintf("%ss/%d", libraryType, libraryID),
	}
}

// Items returns the URL of the library's items listing.
func (u *URL) Items(params url.Values) string {
	return u.build("items", params)
}

// Item returns the URL of a single item.
func (u *URL) Item(key string, params url.Values) string {
	return u.build("items/"+key, params)
}

// CollectionItems returns the URL of the items of one collection.
func (u *URL) CollectionItems(collectionKey string, params url.Values) string {
	return u.build("collections/"+collectionKey+"/items", params)
}

// ItemChildren returns the URL of an item's child items.
func (u *URL) ItemChildren(key string, params url.Values) string {
	return u.build("items/"+key+"/children", params)
}

// ItemFile returns the URL of an item's file content. With a "key"
// parameter the URL is a credentialed download link.
func (u *URL) ItemFile(key string, params url.Values) string {
	return u.build("items/"+key+"/file", params)
}

func (u *URL) build(path string, params url.Values) string {
	s := u.base + "/" + u.prefix + "/" + path
	if len(params) > 0 {
		s += "?" + params.Encode()
	}
	return s
}
