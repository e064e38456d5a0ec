// Package vocab resolves provider-specific codes against the
// controlled vocabularies. Tables are loaded once at process start and
// are immutable afterwards, so a single Store can be shared by every
// parser without locking.
package vocab

import (
	"strings"

	"github.com/belga/newswire/pkg/newswire/item"
)

// Closed set of schemes the core knows about.
const (
	SchemeIPTCSubjects     = "iptc_subject_codes"
	SchemeServicesProducts = "services-products"
	SchemeDistribution     = "distribution"
	SchemeNewsItemTypes    = "news_item_types"
	SchemeCountry          = "country"
	SchemeGenre            = "genre"
	SchemeSources          = "sources"
	SchemeNewsProduct      = "news_product"
	SchemeEssential        = "essential"
	SchemeEquivalentsList  = "equivalents_list"
	SchemeLabel            = "label"
	SchemeSTTDepartment    = "sttdepartment"
	SchemeSTTVersion       = "sttversion"
	SchemeBelgaKeywords    = "belga-keywords"
	SchemeNewsServices     = "news_services"
	SchemeNewsProducts     = "news_products"
	SchemeLinkType         = "link_type"
	SchemeOfInterestTo     = "of_interest_to"
	SchemeCredits          = "credits"
	SchemeCategories       = "categories"
	SchemeEventCalendars   = "event_calendars"
)

// Term is one controlled-vocabulary entry.
type Term struct {
	QCode        string             `yaml:"qcode"`
	Name         string             `yaml:"name"`
	Parent       string             `yaml:"parent,omitempty"`
	IsActive     bool               `yaml:"is_active"`
	Translations *item.Translations `yaml:"translations,omitempty"`
}

// Store holds every vocabulary table, keyed by scheme.
type Store struct {
	tables map[string][]Term
}

// New builds a store from explicit tables. Tables are copied; the
// store never mutates after construction.
func New(tables map[string][]Term) *Store {
	copied := make(map[string][]Term, len(tables))
	for scheme, terms := range tables {
		copied[scheme] = append([]Term(nil), terms...)
	}
	return &Store{tables: copied}
}

// Default returns a store with the compiled-in tables.
func Default() *Store {
	return New(builtinTables)
}

// Terms returns the active terms of a scheme.
func (s *Store) Terms(scheme string) []Term {
	var out []Term
	for _, t := range s.tables[scheme] {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out
}

// Resolve maps a provider code to its canonical subject term. Unknown
// codes pass through verbatim with name == qcode == code, so
// resolution is total and deterministic.
func (s *Store) Resolve(scheme, code string) item.Subject {
	for _, t := range s.tables[scheme] {
		if t.IsActive && t.QCode == code {
			return item.Subject{
				Name:         t.Name,
				QCode:        t.QCode,
				Parent:       t.Parent,
				Scheme:       scheme,
				Translations: t.Translations,
			}
		}
	}
	return item.Subject{Name: code, QCode: code, Scheme: scheme}
}

// SubjectName returns the IPTC media-topic name for a subject code, or
// the empty string when the code is unknown.
func (s *Store) SubjectName(qcode string) string {
	for _, t := range s.tables[SchemeIPTCSubjects] {
		if t.QCode == qcode {
			return t.Name
		}
	}
	return ""
}

// HasSubjectCode reports whether an IPTC subject code is active.
func (s *Store) HasSubjectCode(qcode string) bool {
	for _, t := range s.tables[SchemeIPTCSubjects] {
		if t.IsActive && t.QCode == qcode {
			return true
		}
	}
	return false
}

// Country looks up an ISO-ish provider country code against the
// country table. Matching is by qcode "country_<code>", the way the
// table is keyed; an unknown code yields no terms.
func (s *Store) Country(code string) []item.Subject {
	want := "country_" + strings.ToLower(code)
	var out []item.Subject
	for _, t := range s.tables[SchemeCountry] {
		if t.IsActive && t.QCode == want {
			out = append(out, item.Subject{
				Name:         t.Name,
				QCode:        t.QCode,
				Scheme:       SchemeCountry,
				Translations: t.Translations,
			})
		}
	}
	return out
}

// Calendar resolves an event calendar name case-insensitively against
// the event_calendars table and expands it into the reference shape
// events carry. Names absent from the table pass through so a feed can
// introduce a calendar ahead of the vocabulary.
func (s *Store) Calendar(name string) (item.Calendar, bool) {
	if name == "" {
		return item.Calendar{}, false
	}
	for _, t := range s.Terms(SchemeEventCalendars) {
		if strings.EqualFold(t.QCode, name) || strings.EqualFold(t.Name, name) {
			return item.Calendar{Name: t.Name, QCode: t.QCode, IsActive: t.IsActive}, true
		}
	}
	return item.Calendar{
		Name:     name,
		QCode:    strings.ToLower(name),
		IsActive: true,
	}, true
}
