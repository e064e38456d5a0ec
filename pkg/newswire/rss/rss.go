// Package rss parses the Belga RSS/Atom channels with gofeed. The ANP
// channels carry an extension namespace whose fields are copied into
// the typed item equivalents when the entry declares the ANP provider.
package rss

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/extensions"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
)

// Name is the registry name of the Belga RSS parser.
const Name = "rss-belga"

// anpProvider marks entries carrying the ANP extension block.
const anpProvider = "ANP"

// RSSBelga maps feed entries onto normalized items.
type RSSBelga struct {
	fp *gofeed.Parser
}

// New returns the Belga RSS parser.
func New() *RSSBelga {
	return &RSSBelga{fp: gofeed.NewParser()}
}

func (p *RSSBelga) Name() string { return Name }

// CanParse sniffs for a syndication root without a full parse.
func (p *RSSBelga) CanParse(payload feed.Payload) bool {
	if len(payload.Raw) == 0 {
		return false
	}
	head := strings.ToLower(string(payload.Raw[:min(len(payload.Raw), 512)]))
	return strings.Contains(head, "<rss") || strings.Contains(head, "<feed") ||
		strings.Contains(head, "<rdf:rdf")
}

func (p *RSSBelga) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	parsed, err := p.fp.Parse(bytes.NewReader(payload.Raw))
	if err != nil {
		return feed.Result{}, ingesterr.Malformed(Name, err)
	}

	source := provider.Source
	if source == "" {
		source = provider.Name
	}

	var res feed.Result
	for _, entry := range parsed.Items {
		it := baseItem(entry, source)
		if anp := entry.Extensions["anp"]; anpField(anp, "provider") == anpProvider {
			applyANP(deps, &it, entry, anp)
		}
		res.Items = append(res.Items, it)
	}
	return res, nil
}

// baseItem is the provider-independent entry mapping.
func baseItem(entry *gofeed.Item, source string) item.Item {
	it := item.Item{
		GUID:     entry.GUID,
		URI:      entry.Link,
		Type:     item.TypeText,
		Headline: entry.Title,
		Abstract: entry.Description,
		BodyHTML: entry.Content,
		Source:   source,
	}
	if it.GUID == "" {
		it.GUID = entry.Link
	}
	if it.BodyHTML == "" {
		it.BodyHTML = entry.Description
	}
	if entry.PublishedParsed != nil {
		it.Firstcreated = entry.PublishedParsed.UTC()
	}
	if entry.UpdatedParsed != nil {
		it.Versioncreated = entry.UpdatedParsed.UTC()
	} else {
		it.Versioncreated = it.Firstcreated
	}
	it.Keywords = append(it.Keywords, entry.Categories...)
	return it
}

// applyANP copies the ANP namespace fields into their typed slots.
func applyANP(deps *feed.Context, it *item.Item, entry *gofeed.Item, anp map[string][]ext.Extension) {
	it.ProviderID = anpProvider
	it.Language = extract.NormalizeLanguage(anpField(anp, "lang"))
	it.Version = anpField(anp, "version")
	it.CopyrightLine = anpField(anp, "copyright")

	if n, err := strconv.Atoi(anpField(anp, "charcount")); err == nil {
		it.CharCount = n
	}
	if n, err := strconv.Atoi(anpField(anp, "wordcount")); err == nil {
		it.WordCount = n
	}
	if n, err := strconv.Atoi(anpField(anp, "priority")); err == nil {
		it.Priority = n
	}
	if updated := anpField(anp, "updated"); updated != "" {
		if t, err := extract.ParseG2Time(updated); err == nil {
			it.Versioncreated = t
		} else {
			deps.Printf("%s: bad anp updated date %q: %v", Name, updated, err)
		}
	}

	// The keyword slot is single-element even when empty.
	it.Keywords = []string{anpField(anp, "keywords")}
	if codes := anpField(anp, "codes"); codes != "" {
		it.Codes = strings.Fields(codes)
	}

	it.SetExtra("city", anpField(anp, "city"))
	it.SetExtra("country", anpField(anp, "country"))

	if entry.Author != nil && entry.Author.Name != "" {
		it.Authors = []item.Author{{Name: entry.Author.Name}}
	}
}

func anpField(anp map[string][]ext.Extension, key string) string {
	values := anp[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}
