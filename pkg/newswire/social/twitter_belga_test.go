package social

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
)

const iframelyHTML = `<div class="iframely-embed"><a href="https://t.co/KBxMrf1zGk"></a></div>` +
	`<script async src="//cdn.iframe.ly/embed.js" charset="utf-8"></script>`

func tweetItems() []item.Item {
	created := time.Date(2019, 8, 14, 3, 6, 3, 0, time.UTC)
	return []item.Item{{
		GUID:     "tag:localhost:5000:2019:73fa4ad84a5fe6aed212563f03cb148d38ab1c6e",
		Type:     item.TypeText,
		Source:   "twitter",
		Headline: "thanhnguyenfs: Hello, I am testing link for facebook\nhttps://t.co/KBxMrf1zGk",
		BodyHTML: "Hello, I am testing link for facebook\nhttps://t.co/KBxMrf1zGk" +
			`<p><a href="https://t.co/KBxMrf1zGk" target="_blank">https://t.co/KBxMrf1zGk</a></p>`,
		Firstcreated:   created,
		Versioncreated: created,
	}}
}

func embedProvider(key string) feed.Provider {
	provider := tweetProvider()
	provider.Config.EmbedTweet = true
	provider.Config.IframelyKey = key
	return provider
}

func TestTwitterBelgaEmbedsLinks(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "9b959025054a1629510c03" {
			t.Errorf("api_key = %q", r.URL.Query().Get("api_key"))
		}
		requested = append(requested, r.URL.Query().Get("url"))
		fmt.Fprintf(w, `{"html": %q}`, iframelyHTML)
	}))
	defer srv.Close()

	now := time.Date(2019, 8, 14, 9, 0, 0, 0, time.UTC)
	deps := feed.NewContext()
	deps.Now = func() time.Time { return now }

	p := NewTwitterBelga()
	p.endpoint = srv.URL

	payload := feed.Payload{Items: tweetItems()}
	if !p.CanParse(payload) {
		t.Fatal("CanParse returned false")
	}
	res, err := p.Parse(context.Background(), deps, payload, embedProvider("9b959025054a1629510c03"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	it := res.Items[0]

	// Enrichment happens on copies; the input payload keeps the
	// pre-embed tweet.
	if got := payload.Items[0]; got.BodyHTML != tweetItems()[0].BodyHTML || !got.Versioncreated.Equal(tweetItems()[0].Versioncreated) {
		t.Errorf("payload mutated: body=%q versioncreated=%v", got.BodyHTML, got.Versioncreated)
	}

	// The link occurs twice in the body but is embedded once.
	if len(requested) != 1 || requested[0] != "https://t.co/KBxMrf1zGk" {
		t.Errorf("requested urls = %v", requested)
	}
	if n := strings.Count(it.BodyHTML, embedStart); n != 1 {
		t.Errorf("embed start markers = %d", n)
	}
	wantBody := tweetItems()[0].BodyHTML + embedStart + iframelyHTML + embedEnd
	if it.BodyHTML != wantBody {
		t.Errorf("body_html = %q", it.BodyHTML)
	}

	if !it.Versioncreated.Equal(now) {
		t.Errorf("versioncreated = %v", it.Versioncreated)
	}
	// The rest of the tweet survives untouched.
	if it.GUID != tweetItems()[0].GUID || !it.Firstcreated.Equal(tweetItems()[0].Firstcreated) {
		t.Errorf("guid/firstcreated = %q/%v", it.GUID, it.Firstcreated)
	}
}

func TestTwitterBelgaInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewTwitterBelga()
	p.endpoint = srv.URL

	_, err := p.Parse(context.Background(), feed.NewContext(), feed.Payload{Items: tweetItems()}, embedProvider("bad"))

	var ingErr *ingesterr.Error
	if !errors.As(err, &ingErr) || ingErr.Code != ingesterr.CodeInvalidIframelyKey {
		t.Fatalf("err = %v", err)
	}
}

func TestTwitterBelgaDeadLinkYieldsEmptyEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusExpectationFailed)
	}))
	defer srv.Close()

	deps := feed.NewContext()
	deps.Logger = nil

	p := NewTwitterBelga()
	p.endpoint = srv.URL

	res, err := p.Parse(context.Background(), deps, feed.Payload{Items: tweetItems()}, embedProvider("key"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(res.Items[0].BodyHTML, embedStart+embedEnd) {
		t.Errorf("body_html = %q", res.Items[0].BodyHTML)
	}
}

func TestTwitterBelgaMissingIframelyKey(t *testing.T) {
	_, err := NewTwitterBelga().Parse(context.Background(), feed.NewContext(), feed.Payload{Items: tweetItems()}, embedProvider(""))

	var ingErr *ingesterr.Error
	if !errors.As(err, &ingErr) || ingErr.Kind != ingesterr.KindConfig {
		t.Fatalf("err = %v", err)
	}
}
