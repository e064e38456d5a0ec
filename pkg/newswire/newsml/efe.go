package newsml

import (
	"context"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

// EFEName is the registry name of the EFE wire parser.
const EFEName = "belga_efe_newsml12"

// EFE parses the Spanish EFE NewsML 1.2 feed. EFE carries its category
// as a meta element inside the NITF head rather than in the
// descriptive block.
type EFE struct {
	walker Walker
}

// NewEFE returns the EFE parser.
func NewEFE() *EFE {
	p := &EFE{}
	p.walker = Walker{
		ParserName: EFEName,
		PostNewsItem: func(_ *Walker, deps *feed.Context, it *item.Item, newsItemEl *etree.Element) {
			name := efeCategory(deps.Vocab, newsItemEl)
			it.AddSubject(item.Subject{Name: name, QCode: name, Scheme: vocab.SchemeNewsProducts})
			it.AddSubject(item.Subject{Name: "EFE", QCode: "EFE", Scheme: vocab.SchemeSources})
		},
	}
	return p
}

func (p *EFE) Name() string { return EFEName }

func (p *EFE) CanParse(payload feed.Payload) bool { return isNewsML(payload) }

func (p *EFE) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	items, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}

// efeCategory reads the categoria meta from the NITF head and maps it
// through the categories vocabulary. Missing or unmapped codes fall
// back to the catch-all category.
func efeCategory(v *vocab.Store, newsItemEl *etree.Element) string {
	code := "GENERAL"
	for _, el := range newsItemEl.FindElements("NewsComponent/ContentItem/DataContent/nitf/head/meta") {
		if el.SelectAttrValue("name", "") != "categoria" {
			continue
		}
		if c := el.SelectAttrValue("content", ""); c != "" {
			code = c
		}
		break
	}
	for _, t := range v.Terms(vocab.SchemeCategories) {
		if t.QCode == code {
			return t.Name
		}
	}
	return "GENERAL"
}
