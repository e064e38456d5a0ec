package newsml

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/belga/newswire/pkg/newswire/feed"
)

func TestKyodoParse(t *testing.T) {
	doc := loadFixture(t, "kyodo_newsml_1_2_belga.xml")
	res, err := NewKyodo().Parse(context.Background(), testContext(), feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(res.Items))
	}
	it := res.Items[0]

	if it.GUID != "urn:newsml:kyodonews.jp:20190723:20161021KW___0003800010:1" {
		t.Errorf("guid = %q", it.GUID)
	}
	if it.ProviderID != "kyodonews.jp" || it.DateID != "20190723" || it.ItemID != "20161021KW___0003800010" {
		t.Errorf("identification = %q %q %q", it.ProviderID, it.DateID, it.ItemID)
	}
	if it.Headline != "Ex-Chinese Premier Li Peng dies aged 90: Xinhua" {
		t.Errorf("headline = %q", it.Headline)
	}
	if it.Priority != 9 || it.Format != "Nitf_v3.0" || it.Type != "text" {
		t.Errorf("priority/format/type = %d/%q/%q", it.Priority, it.Format, it.Type)
	}

	// Kyodo timestamps keep the provider's +09:00 offset.
	if got := it.Firstcreated.Format(time.RFC3339); got != "2019-07-23T20:21:19+09:00" {
		t.Errorf("firstcreated = %s", got)
	}
	if got := it.Versioncreated.Format(time.RFC3339); got != "2019-07-23T20:21:19+09:00" {
		t.Errorf("versioncreated = %s", got)
	}

	if len(it.Subject) != 5 {
		t.Errorf("got %d subject terms, want 5: %v", len(it.Subject), it.Subject)
	}
	country := assertSubject(t, it, "country", "country_fra")
	if country.Name != "France" {
		t.Errorf("country name = %q", country.Name)
	}
	assertSubject(t, it, "services-products", "NEWS/GENERAL")
	assertSubject(t, it, "distribution", "default")
	assertSubject(t, it, "essential", "no")
	assertSubject(t, it, "equivalents_list", "no")

	// The dateline city is lifted from the NITF body head.
	if it.Extra["city"] != "BEIJING" {
		t.Errorf("extra city = %v", it.Extra["city"])
	}

	if !strings.Contains(it.BodyHTML, "==Kyodo") {
		t.Errorf("body_html = %.80q", it.BodyHTML)
	}
	// The fixed-width indentation inside the NITF paragraphs is gone.
	if !strings.HasPrefix(it.BodyHTML, "<p>Former Chinese Premier Li Peng died") {
		t.Errorf("body_html prefix = %.60q", it.BodyHTML)
	}
	if it.BodyHead == "" {
		t.Error("body_head not captured")
	}
	if it.WordCount != 23 {
		t.Errorf("word_count = %d", it.WordCount)
	}
}
