// Package mapping holds the static translation tables between the source
// library's taxonomy and the target catalog's vocabularies, plus the
// primitive that resolves them.
//
// Three raw tables ship with the application: item types to resource
// classes, record fields to properties, and creator roles to properties.
// Each entry is a priority-ordered candidate list; Prepare filters a table
// against the terms actually registered in the catalog, keeping for every
// key only the first registered candidate. A key whose candidates are all
// unregistered, or whose list is empty, is dropped; the data loss is
// deliberate and documented on the tables.
//
// The same primitive serves all three tables; only the raw data differs.
package mapping
