package newsml

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
)

type stubAttachments struct {
	stored []string
}

func (s *stubAttachments) Store(filename string, r io.Reader) (string, error) {
	io.Copy(io.Discard, r)
	s.stored = append(s.stored, filename)
	return "abc", nil
}

func TestRemoteParse(t *testing.T) {
	doc := loadFixture(t, "belga_remote_newsml_1_2.xml")

	attachments := &stubAttachments{}
	deps := testContext()
	deps.Attachments = attachments
	var opened []string
	deps.Open = func(path string) (io.ReadCloser, error) {
		opened = append(opened, path)
		return io.NopCloser(strings.NewReader("jpeg bytes")), nil
	}

	provider := feed.Provider{Name: "test", Config: feed.Config{Path: "/var/feeds/remote"}}
	res, err := NewRemote().Parse(context.Background(), deps, feed.Payload{XML: doc}, provider)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(res.Items))
	}
	it := res.Items[0]

	if !hexGUID.MatchString(it.GUID) {
		t.Errorf("guid = %q, want a component digest", it.GUID)
	}
	if it.ItemID != "0" || it.Version != "1" || it.PublicIdentifier != "urn:newsml:www.belga.be" {
		t.Errorf("identification = %q %q %q", it.ItemID, it.Version, it.PublicIdentifier)
	}

	want := time.Date(2019, 6, 3, 14, 2, 17, 0, time.UTC)
	if !it.Firstcreated.Equal(want) || !it.Versioncreated.Equal(want) {
		t.Errorf("timestamps = %v / %v", it.Firstcreated, it.Versioncreated)
	}
	if it.Priority != 3 || it.Urgency != 3 {
		t.Errorf("priority/urgency = %d/%d", it.Priority, it.Urgency)
	}

	if len(it.Subject) != 3 {
		t.Errorf("got %d subject terms, want 3: %v", len(it.Subject), it.Subject)
	}
	assertSubject(t, it, "label", "S1")
	assertSubject(t, it, "news_item_types", "NEWS")
	combined := assertSubject(t, it, "services-products", "BIN/ALG")
	if combined.Parent != "BIN" {
		t.Errorf("combined term parent = %q", combined.Parent)
	}

	if it.Role != "Brief" || it.Language != "nl" {
		t.Errorf("role/language = %q/%q", it.Role, it.Language)
	}
	if it.Byline != "BELGA" || it.Copyrightholder != "Belga" || it.Source != "BELGA" {
		t.Errorf("byline/copyright/source = %q/%q/%q", it.Byline, it.Copyrightholder, it.Source)
	}
	wantKeywords := []string{"BELGIUM", "MOBILITEIT", "VERKEER", "INFRASTRUCTUUR", "STEDEN", "BRIEF"}
	if !reflect.DeepEqual(it.Keywords, wantKeywords) {
		t.Errorf("keywords = %v", it.Keywords)
	}
	wantAuthors := []item.Author{{Name: "COR 360", Role: "CORRESPONDENT"}}
	if !reflect.DeepEqual(it.Authors, wantAuthors) {
		t.Errorf("authors = %v", it.Authors)
	}
	if !reflect.DeepEqual(it.Administrative, map[string]string{"foreign_id": "0"}) {
		t.Errorf("administrative = %v", it.Administrative)
	}
	if it.Extra["country"] != "BELGIUM" || it.Extra["city"] != "ANTWERPEN" {
		t.Errorf("extra = %v", it.Extra)
	}

	if it.Headline != "Knooppunt Schijnpoort in Antwerpen hele zomervakantie afgesloten" {
		t.Errorf("headline = %q", it.Headline)
	}
	if !strings.HasPrefix(it.Abstract, "In Antwerpen zal het kruispunt") {
		t.Errorf("abstract = %q", it.Abstract)
	}
	if !strings.HasPrefix(it.BodyHTML, "<p>In Antwerpen zal het kruispunt") ||
		!strings.Contains(it.BodyHTML, "</p><p>Lokaal verkeer") {
		t.Errorf("body_html = %q", it.BodyHTML)
	}

	wantAttachments := []item.Attachment{{Attachment: "abc"}}
	if !reflect.DeepEqual(it.Attachments, wantAttachments) {
		t.Errorf("attachments = %v", it.Attachments)
	}
	if it.EdNote != "The story has 1 attachment(s)" {
		t.Errorf("ednote = %q", it.EdNote)
	}
	if len(opened) != 1 || opened[0] != "/var/feeds/remote/belga_remote_newsml_1_2.jpeg" {
		t.Errorf("opened = %v", opened)
	}
	if len(attachments.stored) != 1 || attachments.stored[0] != "belga_remote_newsml_1_2.jpeg" {
		t.Errorf("stored = %v", attachments.stored)
	}
}

func TestRemoteSkipsWithoutAttachmentService(t *testing.T) {
	doc := loadFixture(t, "belga_remote_newsml_1_2.xml")
	deps := testContext()
	deps.Attachments = nil
	deps.Open = nil

	res, err := NewRemote().Parse(context.Background(), deps, feed.Payload{XML: doc}, feed.Provider{Name: "test"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("got %d items, want the component skipped when attachments cannot be stored", len(res.Items))
	}
}
