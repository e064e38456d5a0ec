package newsml

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

// TASSName is the registry name of the TASS wire parser.
const TASSName = "belga_tass_newsml12"

// tassProducts maps keyword fragments onto wire products. Order
// matters: the first fragment found in a keyword wins.
var tassProducts = []struct {
	fragment string
	product  string
}{
	{"POLITICS", "NEWS/POLITICS"},
	{"ECONOMY", "NEWS/ECONOMY"},
}

// TASS parses the Russian TASS NewsML 1.2 feed. TASS sends naive
// timestamps, wraps the story two component levels deep and keeps the
// interesting attributes on the outermost component.
type TASS struct {
	walker Walker
}

// NewTASS returns the TASS parser.
func NewTASS() *TASS {
	p := &TASS{}
	p.walker = Walker{
		ParserName: TASSName,
		NormalizeTimes: func(it *item.Item) {
			// The revision time on the wire is unreliable.
			it.Versioncreated = it.Firstcreated
		},
		ComponentRoot: func(componentEl *etree.Element) *etree.Element {
			return componentEl.FindElement("NewsComponent/NewsComponent")
		},
		PostNewsItem: tassPostItem,
	}
	return p
}

func (p *TASS) Name() string { return TASSName }

func (p *TASS) CanParse(payload feed.Payload) bool {
	if !isNewsML(payload) {
		return false
	}
	return payload.XML.Root().SelectAttrValue("Version", "1.2") == "1.2"
}

func (p *TASS) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	items, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}

func tassPostItem(_ *Walker, _ *feed.Context, it *item.Item, newsItemEl *etree.Element) {
	if outerEl := newsItemEl.SelectElement("NewsComponent"); outerEl != nil {
		if attr := outerEl.SelectAttr("Duid"); attr != nil {
			it.GUID = attr.Value
		}
		if essential := outerEl.SelectAttrValue("Essential", ""); essential != "" {
			it.AddSubject(item.Subject{Name: essential, QCode: essential, Scheme: vocab.SchemeEssential})
		}
		if equivalents := outerEl.SelectAttrValue("EquivalentsList", ""); equivalents != "" {
			it.AddSubject(item.Subject{Name: equivalents, QCode: equivalents, Scheme: vocab.SchemeEquivalentsList})
		}
	}

	if len(it.Keywords) > 0 {
		mapped := false
		for _, keyword := range it.Keywords {
			for _, m := range tassProducts {
				if strings.Contains(keyword, m.fragment) {
					it.AddSubject(item.Subject{
						Name:   m.product,
						QCode:  m.product,
						Parent: "NEWS",
						Scheme: vocab.SchemeServicesProducts,
					})
					mapped = true
					break
				}
			}
			if mapped {
				break
			}
		}
		if !mapped {
			it.AddSubject(item.Subject{
				Name:   "NEWS/GENERAL",
				QCode:  "NEWS/GENERAL",
				Parent: "NEWS",
				Scheme: vocab.SchemeServicesProducts,
			})
		}
	}

	it.AddSubject(item.Subject{Name: "TASS", QCode: "TASS", Scheme: vocab.SchemeSources})
}
