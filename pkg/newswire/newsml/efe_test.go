package newsml

import (
	"context"
	"testing"
	"time"

	"github.com/belga/newswire/pkg/newswire/feed"
)

func TestEFEParse(t *testing.T) {
	doc := loadFixture(t, "efe_newsml_1_2_belga.xml")
	res, err := NewEFE().Parse(context.Background(), testContext(), feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(res.Items))
	}
	it := res.Items[0]

	if it.GUID != "urn:newsml:texto.efeservicios.com:20190121T103600+0000:25413502:1" {
		t.Errorf("guid = %q", it.GUID)
	}
	if it.ProviderID != "texto.efeservicios.com" || it.ItemID != "25413502" {
		t.Errorf("identification = %q %q", it.ProviderID, it.ItemID)
	}
	if it.Urgency != 5 || it.Language != "es-ES" {
		t.Errorf("urgency/language = %d/%q", it.Urgency, it.Language)
	}

	want := time.Date(2019, 1, 21, 10, 36, 0, 0, time.UTC)
	if !it.Versioncreated.Equal(want) {
		t.Errorf("versioncreated = %v", it.Versioncreated)
	}

	if len(it.Subject) != 6 {
		t.Errorf("got %d subject terms, want 6: %v", len(it.Subject), it.Subject)
	}
	media := assertSubject(t, it, "iptc_subject_codes", "01026000")
	if media.Name != "mass media" {
		t.Errorf("media name = %q", media.Name)
	}
	country := assertSubject(t, it, "country", "country_ind")
	if country.Name != "India" || country.Translations == nil || country.Translations.Name["fr"] != "Inde" {
		t.Errorf("country = %+v", country)
	}
	assertSubject(t, it, "news_products", "CULTURE")
	assertSubject(t, it, "sources", "EFE")
	assertSubject(t, it, "services-products", "NEWS/GENERAL")
	assertSubject(t, it, "distribution", "default")

	if it.Extra["how_present"] != "Event" || it.Extra["country"] != "IND" || it.Extra["city"] != "Bombay" {
		t.Errorf("extra = %v", it.Extra)
	}
}

func TestEFEUnknownCategoryFallsBack(t *testing.T) {
	doc := loadFixture(t, "efe_newsml_1_2_belga.xml")
	metaEl := doc.FindElement("NewsML/NewsItem/NewsComponent/ContentItem/DataContent/nitf/head/meta")
	metaEl.CreateAttr("content", "XYZ")

	res, err := NewEFE().Parse(context.Background(), testContext(), feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertSubject(t, res.Items[0], "news_products", "GENERAL")
}
