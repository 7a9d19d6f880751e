// Package catalog is the boundary to the target repository that stores
// vocabulary-described entities.
//
// The catalog's own persistence is opaque to this application: every
// interaction goes through the API interface, whose HTTP implementation
// talks to an Omeka-compatible REST endpoint. The sync engine and the tag
// materializer depend only on the interface; tests substitute the mocks in
// the mocks subpackage.
//
// # Payload model
//
// Item payloads carry structural members (item sets, resource class,
// template, media) and a map of vocabulary-term-keyed value lists. On the
// wire both live in one JSON object ("o:item_set" next to "dcterms:title"),
// handled by the custom (un)marshalers.
//
// # Error taxonomy
//
//   - *RequestError: transport or server failure, fatal to the run.
//   - *ValidationError: one payload rejected, recovered per record.
//   - *NotFoundError: a referenced auxiliary resource is gone; optional
//     features degrade instead of failing.
package catalog
