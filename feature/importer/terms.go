package importer

import (
	"refsync/core/catalog"
	"refsync/core/mapping"
)

// Terms bundles the vocabulary state a run needs: the catalog's
// registered properties and classes, and the source mapping tables
// resolved against them.
type Terms struct {
	Properties mapping.Registry
	Classes    mapping.Registry
	ItemTypes  mapping.Resolved
	Fields     mapping.Resolved
	Creators   mapping.Resolved
}

// ResolveTerms builds the run's term state from the catalog's installed
// properties and resource classes. Mapping candidates that resolve to
// nothing are dropped here, once, so translation never has to probe.
func ResolveTerms(properties []catalog.Property, classes []catalog.ResourceClass) Terms {
	props := mapping.Registry{}
	for _, p := range properties {
		if term, ok := mapping.ParseTerm(p.Term); ok {
			props[term] = p.ID
		}
	}
	cls := mapping.Registry{}
	for _, c := range classes {
		if term, ok := mapping.ParseTerm(c.Term); ok {
			cls[term] = c.ID
		}
	}
	return Terms{
		Properties: props,
		Classes:    cls,
		ItemTypes:  mapping.Prepare(mapping.ItemTypeMap, cls),
		Fields:     mapping.Prepare(mapping.ItemFieldMap, props),
		Creators:   mapping.Prepare(mapping.CreatorTypeMap, props),
	}
}
