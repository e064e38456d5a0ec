package vocab

import (
	"reflect"
	"testing"

	"github.com/belga/newswire/pkg/newswire/item"
)

func TestResolveKnownCode(t *testing.T) {
	s := Default()
	got := s.Resolve(SchemeServicesProducts, "NEWS/ECONOMY")
	want := item.Subject{
		Name:   "NEWS/ECONOMY",
		QCode:  "NEWS/ECONOMY",
		Parent: "NEWS",
		Scheme: SchemeServicesProducts,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %+v", got)
	}
}

func TestResolveUnknownCodePassesThrough(t *testing.T) {
	got := Default().Resolve(SchemeSources, "REUTERS")
	want := item.Subject{Name: "REUTERS", QCode: "REUTERS", Scheme: SchemeSources}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %+v", got)
	}
}

func TestCountryLookup(t *testing.T) {
	// Case-insensitive on the provider side of the key.
	got := Default().Country("RUS")
	if len(got) != 1 {
		t.Fatalf("Country = %+v", got)
	}
	if got[0].Name != "Russian Federation" || got[0].QCode != "country_rus" || got[0].Scheme != SchemeCountry {
		t.Errorf("term = %+v", got[0])
	}
	if got[0].Translations == nil || got[0].Translations.Name["nl"] != "Rusland" {
		t.Errorf("translations = %+v", got[0].Translations)
	}

	if terms := Default().Country("zz"); terms != nil {
		t.Errorf("unknown country = %+v", terms)
	}
}

func TestSubjectNameAndHasSubjectCode(t *testing.T) {
	s := Default()
	if name := s.SubjectName("04000000"); name != "economy, business and finance" {
		t.Errorf("SubjectName = %q", name)
	}
	if s.SubjectName("99999999") != "" {
		t.Error("unknown code should yield empty name")
	}
	if !s.HasSubjectCode("15000000") || s.HasSubjectCode("99999999") {
		t.Error("HasSubjectCode wrong")
	}
}

func TestParseLayersOverDefaults(t *testing.T) {
	s, err := Parse([]byte(`
vocabularies:
  sources:
    - qcode: AFP
      name: AFP
      is_active: true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// The file replaces the sources table wholesale.
	if got := s.Resolve(SchemeSources, "AFP").Name; got != "AFP" {
		t.Errorf("AFP name = %q", got)
	}
	if terms := s.Terms(SchemeSources); len(terms) != 1 {
		t.Errorf("sources = %+v", terms)
	}
	// Schemes the file omits keep their defaults.
	if got := s.Resolve(SchemeDistribution, "default").Name; got != "default" {
		t.Errorf("distribution default = %q", got)
	}
}

func TestCalendarLookup(t *testing.T) {
	s := Default()

	// Known calendars resolve through the table, case-insensitively.
	got, ok := s.Calendar("CULTURE")
	want := item.Calendar{Name: "Culture", QCode: "culture", IsActive: true}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Calendar(CULTURE) = %+v, %v", got, ok)
	}

	// Unknown names pass through so feeds can lead the vocabulary.
	got, ok = s.Calendar("Marathon")
	want = item.Calendar{Name: "Marathon", QCode: "marathon", IsActive: true}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Calendar(Marathon) = %+v, %v", got, ok)
	}

	if _, ok = s.Calendar(""); ok {
		t.Error("empty name should not resolve")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("vocabularies: [")); err == nil {
		t.Error("expected error")
	}
}

func TestTermsFiltersInactive(t *testing.T) {
	s := New(map[string][]Term{
		"x": {
			{QCode: "a", Name: "a", IsActive: true},
			{QCode: "b", Name: "b"},
		},
	})
	terms := s.Terms("x")
	if len(terms) != 1 || terms[0].QCode != "a" {
		t.Errorf("terms = %+v", terms)
	}
	// Inactive terms do not resolve either; the code passes through.
	if got := s.Resolve("x", "b"); got.Name != "b" || got.Scheme != "x" {
		t.Errorf("Resolve = %+v", got)
	}
}
