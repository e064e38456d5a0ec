package newsml

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

func TestAFPParse(t *testing.T) {
	doc := loadFixture(t, "afp_newsml_1_2_belga.xml")
	res, err := NewAFP().Parse(context.Background(), testContext(), feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(res.Items))
	}
	it := res.Items[0]

	if it.GUID != "urn:newsml:afp.com:20190121T104233Z:TX-PAR-RHO61:1" {
		t.Errorf("guid = %q", it.GUID)
	}
	if it.ProviderID != "afp.com" || it.ItemID != "TX-PAR-RHO61" || it.Version != "1" {
		t.Errorf("identification = %q %q %q", it.ProviderID, it.ItemID, it.Version)
	}
	if it.Sequence != "0579" || it.Priority != 4 || it.Urgency != 4 {
		t.Errorf("sequence/priority/urgency = %q/%d/%d", it.Sequence, it.Priority, it.Urgency)
	}
	if it.Language != "fr" {
		t.Errorf("language = %q", it.Language)
	}
	if it.Headline != "Open d'Australie: Nadal en quarts de finale" {
		t.Errorf("headline = %q", it.Headline)
	}

	want := time.Date(2019, 1, 21, 10, 42, 33, 0, time.UTC)
	if !it.Versioncreated.Equal(want) {
		t.Errorf("versioncreated = %v", it.Versioncreated)
	}

	if len(it.Subject) != 4 {
		t.Errorf("got %d subject terms, want 4: %v", len(it.Subject), it.Subject)
	}
	assertSubject(t, it, "iptc_subject_codes", "15000000")
	product := assertSubject(t, it, "services-products", "NEWS/SPORTS")
	if product.Parent != "NEWS" {
		t.Errorf("product parent = %q", product.Parent)
	}
	assertSubject(t, it, "credits", "AFP")
	assertSubject(t, it, "distribution", "default")

	// The name label slug never survives as a subject.
	if _, ok := findSubject(it, vocab.SchemeLabel, "tennis-AUS-Open"); ok {
		t.Errorf("label subject kept: %v", it.Subject)
	}
}

func TestAFPUrgentFlashHeadline(t *testing.T) {
	raw := `<NewsML Version="1.2">
  <NewsItem>
    <Identification>
      <NewsIdentifier>
        <ProviderId>afp.com</ProviderId>
        <NewsItemId>TX-PAR-FLASH1</NewsItemId>
      </NewsIdentifier>
    </Identification>
    <NewsManagement>
      <FirstCreated>20190121T104233Z</FirstCreated>
      <ThisRevisionCreated>20190121T104233Z</ThisRevisionCreated>
      <Urgency FormalName="1"/>
    </NewsManagement>
    <NewsComponent>
      <ContentItem>
        <DataContent>
          <nitf>
            <body>
              <body.content><p>Un séisme de magnitude 7 frappe la côte.</p></body.content>
            </body>
          </nitf>
        </DataContent>
      </ContentItem>
    </NewsComponent>
  </NewsItem>
</NewsML>`
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		t.Fatal(err)
	}
	res, err := NewAFP().Parse(context.Background(), testContext(), feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(res.Items))
	}
	if got := res.Items[0].Headline; got != "URGENT: Un séisme de magnitude 7 frappe la côte." {
		t.Errorf("headline = %q", got)
	}
}
