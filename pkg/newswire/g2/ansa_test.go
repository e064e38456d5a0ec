package g2

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
)

func TestANSAParse(t *testing.T) {
	doc := loadFixture(t, "ansa_belga.xml")
	res, err := NewANSA().Parse(context.Background(), testContext(), feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(res.Items))
	}
	it := res.Items[0]

	if it.GUID != "XAM22192010243_AMZ_X083:1" || it.URI != "XAM22192010243_AMZ_X083" {
		t.Errorf("guid/uri = %q/%q", it.GUID, it.URI)
	}
	if it.Type != "text" || it.Pubstatus != "usable" {
		t.Errorf("type/pubstatus = %q/%q", it.Type, it.Pubstatus)
	}

	// Signal R is routine, the lowest rung.
	if it.Priority != 5 || it.Urgency != 5 {
		t.Errorf("priority/urgency = %d/%d", it.Priority, it.Urgency)
	}

	if got := it.Firstcreated.Format(time.RFC3339); got != "2022-07-11T18:33:00+01:00" {
		t.Errorf("firstcreated = %s", got)
	}
	if !it.Versioncreated.Equal(it.Firstcreated) {
		t.Errorf("versioncreated = %v", it.Versioncreated)
	}

	// The routing marker is stripped from headline and keywords.
	if it.Headline != "Gazprom cuts Italy gas supplies by a third" {
		t.Errorf("headline = %q", it.Headline)
	}
	wantKeywords := []string{"Gazprom cut its flow of gas into Italy"}
	if !reflect.DeepEqual(it.Keywords, wantKeywords) {
		t.Errorf("keywords = %v", it.Keywords)
	}
	if it.Byline != "Situation serious, ready for all scenarios says EC" {
		t.Errorf("byline = %q", it.Byline)
	}

	wantDateline := &item.Dateline{Located: &item.Located{
		City:     "ROME",
		CityCode: "ROME",
		Tz:       "UTC",
		Dateline: "city",
	}}
	if !reflect.DeepEqual(it.Dateline, wantDateline) {
		t.Errorf("dateline = %+v", it.Dateline)
	}

	wantAuthors := []item.Author{
		{ID: []string{"GEE", "AUTHOR"}, Name: "AUTHOR", Role: "AUTHOR", SubLabel: "GEE"},
		{ID: []string{"", "WRITER"}, Name: "WRITER", Role: "WRITER", SubLabel: ""},
	}
	if !reflect.DeepEqual(it.Authors, wantAuthors) {
		t.Errorf("authors = %v", it.Authors)
	}

	if len(it.Subject) != 3 {
		t.Errorf("got %d subject terms, want 3: %v", len(it.Subject), it.Subject)
	}
	iptc := assertSubject(t, it, "iptc_subject_codes", "04000000")
	if iptc.Name != "economy, business and finance" {
		t.Errorf("iptc name = %q", iptc.Name)
	}
	product := assertSubject(t, it, "services-products", "English Media Service")
	if product.Parent != "NEWS" {
		t.Errorf("product parent = %q", product.Parent)
	}
	assertSubject(t, it, "sources", "ANSA")

	if it.Source != "ANSA" || it.WordCount != 9912 || it.Abstract != "" {
		t.Errorf("source/word_count/abstract = %q/%d/%q", it.Source, it.WordCount, it.Abstract)
	}

	wantBody := "<p>(ANSA) - ROME, JUL 11 - Russian energy giant Gazprom on Monday cut its gas supplies to Italy by a third, Italian fuels giant Eni said.</p>"
	if it.BodyHTML != wantBody {
		t.Errorf("body_html = %q", it.BodyHTML)
	}
}
