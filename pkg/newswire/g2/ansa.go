package g2

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

// ANSAName is the registry name of the ANSA parser.
const ANSAName = "belga_ansa_newsml"

// ansaPrefix is the routing marker ANSA prepends to headlines and
// keywords.
const ansaPrefix = ">>>ANSA/"

// ansaPriorities maps the single-letter wire priority onto the numeric
// scale.
var ansaPriorities = map[string]int{
	"F": 1, // Flash
	"D": 2, // Delayed
	"B": 3, // Bulletin
	"U": 4, // Urgent
	"R": 5, // Routine
}

// ansaProducts maps the leading product-id fragment onto a wire
// product. Unknown fragments fall back to the English service.
var ansaProducts = map[string]string{
	"NS042": "English Media Service",
}

const ansaDefaultProduct = "English Media Service"

// ANSA parses the Italian ANSA G2 feed. The body arrives as NITF
// paragraphs inside the inline XML; routing markers are stripped from
// the headline and keywords.
type ANSA struct {
	walker Walker
}

// NewANSA returns the ANSA parser.
func NewANSA() *ANSA {
	p := &ANSA{}
	p.walker = Walker{
		ParserName: ANSAName,
		MapSubject: ansaSubject,
		PostItem:   ansaPostItem,
	}
	return p
}

func (p *ANSA) Name() string { return ANSAName }

func (p *ANSA) CanParse(payload feed.Payload) bool { return IsNewsItem(payload) }

func (p *ANSA) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	it, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: []item.Item{it}}, nil
}

// ansaSubject keeps IPTC codes the vocabulary knows and maps product
// ids onto services-products terms. Everything else is dropped.
func ansaSubject(deps *feed.Context, prefix, code, _ string) (item.Subject, bool) {
	switch prefix {
	case "subj":
		if !deps.Vocab.HasSubjectCode(code) {
			return item.Subject{}, false
		}
		return item.Subject{
			Name:   deps.Vocab.SubjectName(code),
			QCode:  code,
			Scheme: vocab.SchemeIPTCSubjects,
		}, true
	case "product":
		product, ok := ansaProducts[firstN(code, 5)]
		if !ok {
			product = ansaDefaultProduct
		}
		return item.Subject{
			Name:   product,
			QCode:  product,
			Parent: "NEWS",
			Scheme: vocab.SchemeServicesProducts,
		}, true
	}
	return item.Subject{}, false
}

func ansaPostItem(_ *feed.Context, it *item.Item, root *etree.Element) {
	it.Headline = strings.TrimPrefix(it.Headline, ansaPrefix)
	for i, keyword := range it.Keywords {
		it.Keywords[i] = strings.TrimPrefix(keyword, ansaPrefix)
	}

	if signalEl := root.FindElement("itemMeta/signal"); signalEl != nil {
		_, letter := splitQCode(signalEl.SelectAttrValue("qcode", ""))
		if n, ok := ansaPriorities[letter]; ok {
			it.Priority = n
			it.Urgency = n
		}
	}

	// The inline XML wraps NITF; the body is its paragraphs alone.
	var paragraphs []string
	for _, el := range root.FindElements("contentSet/inlineXML/nitf/body/body.content/block/p") {
		paragraphs = append(paragraphs, serializeElement(el))
	}
	if len(paragraphs) > 0 {
		it.BodyHTML = strings.TrimSpace(strings.Join(paragraphs, ""))
	}

	if locatedEl := root.FindElement("contentMeta/located/name"); locatedEl != nil {
		it.Dateline = extract.CityDateline(strings.ToUpper(strings.TrimSpace(locatedEl.Text())))
	}

	if !it.HasScheme(vocab.SchemeServicesProducts) {
		it.AddSubject(item.Subject{
			Name:   ansaDefaultProduct,
			QCode:  ansaDefaultProduct,
			Parent: "NEWS",
			Scheme: vocab.SchemeServicesProducts,
		})
	}
	it.AddSubject(item.Subject{Name: "ANSA", QCode: "ANSA", Scheme: vocab.SchemeSources})
	if it.Source == "" {
		it.Source = "ANSA"
	}
	it.Abstract = ""
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
