package mapping

import "strings"

// Term is a namespaced vocabulary identifier, "prefix:localName".
type Term struct {
	Prefix    string
	LocalName string
}

// ParseTerm splits a "prefix:localName" string into a Term.
func ParseTerm(s string) (Term, bool) {
	prefix, localName, found := strings.Cut(s, ":")
	if !found || prefix == "" || localName == "" {
		return Term{}, false
	}
	return Term{Prefix: prefix, LocalName: localName}, true
}

func (t Term) String() string {
	return t.Prefix + ":" + t.LocalName
}

// Registry is the set of vocabulary terms actually registered in the
// target catalog, each with its catalog id.
type Registry map[Term]int

// Has reports whether the term is registered.
func (r Registry) Has(t Term) bool {
	_, ok := r[t]
	return ok
}

// ID returns the catalog id of a registered term, 0 otherwise.
func (r Registry) ID(t Term) int {
	return r[t]
}

// RawMap is a raw translation table: source key to candidate terms in
// priority order. An empty candidate list means the key is knowingly not
// mapped and its data is dropped.
type RawMap map[string][]string

// Resolved is a prepared table: source key to the single winning term.
type Resolved map[string]Term

// Prepare resolves a raw table against the registered terms. For each key
// the first candidate whose term is registered wins; keys with no
// candidates or no registered candidate are dropped entirely. Resolution
// is first-match priority, never a merge.
func Prepare(raw RawMap, registry Registry) Resolved {
	resolved := make(Resolved)
	for key, candidates := range raw {
		for _, candidate := range candidates {
			term, ok := ParseTerm(candidate)
			if !ok {
				continue
			}
			if registry.Has(term) {
				resolved[key] = term
				break
			}
		}
	}
	return resolved
}

// Invert flips a raw table into candidate term to source key. The forward
// table is many-to-one, so the inversion is lossy: the first key claiming
// a term wins; iteration is normalized by preferring the lexically
// smallest key on conflicts to keep the result deterministic.
func Invert(raw RawMap) map[string]string {
	inverted := make(map[string]string)
	for key, candidates := range raw {
		for _, candidate := range candidates {
			existing, taken := inverted[candidate]
			if !taken || key < existing {
				inverted[candidate] = key
			}
		}
	}
	return inverted
}
