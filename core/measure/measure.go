package measure

import "sort"

// Set maps an identity (stop id or vehicle id) to the ordered sequence of
// measurements observed for it in a single replicate file.
type Set map[string][]float64

// Add appends a measurement for the given identity.
func (s Set) Add(id string, v float64) {
	s[id] = append(s[id], v)
}

// Put replaces any previous measurement for the identity with a single
// value. Used for per-vehicle durations where one value per file is kept.
func (s Set) Put(id string, v float64) {
	s[id] = []float64{v}
}

// Sort orders each identity's occurrences by value ascending. Occurrence
// rank is defined over this order, not over file order.
func (s Set) Sort() {
	for _, vs := range s {
		sort.Float64s(vs)
	}
}

// IDs returns the identities in lexical order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the total number of measurements across all identities.
func (s Set) Len() int {
	n := 0
	for _, vs := range s {
		n += len(vs)
	}
	return n
}

// Extraction is the outcome of parsing one replicate file. OK is false when
// the file was missing or completely unreadable; downstream alignment treats
// that the same as an empty set.
type Extraction struct {
	Set Set
	OK  bool
}

// Unavailable marks a replicate whose file could not be read at all.
func Unavailable() Extraction {
	return Extraction{Set: Set{}, OK: false}
}
