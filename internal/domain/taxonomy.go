package domain

import "time"

// TaxonomyKind enumerates the reference collections articles draw from.
type TaxonomyKind string

const (
	KindEditor  TaxonomyKind = "editor"
	KindAuthor  TaxonomyKind = "author"
	KindMonth   TaxonomyKind = "month"
	KindYear    TaxonomyKind = "year"
	KindSection TaxonomyKind = "section"
)

// TaxonomyKinds lists every valid kind in display order.
var TaxonomyKinds = []TaxonomyKind{KindEditor, KindAuthor, KindMonth, KindYear, KindSection}

// Valid reports whether k is one of the known kinds.
func (k TaxonomyKind) Valid() bool {
	switch k {
	case KindEditor, KindAuthor, KindMonth, KindYear, KindSection:
		return true
	}
	return false
}

// TaxonomyEntry is a reusable display value within a kind. Values are not
// unique within a kind.
type TaxonomyEntry struct {
	ID        string
	Kind      TaxonomyKind
	Value     string
	CreatedAt time.Time
}
