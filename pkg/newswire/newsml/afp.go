package newsml

import (
	"context"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

// AFPName is the registry name of the AFP wire parser.
const AFPName = "belga_afp_newsml12"

// afpProducts maps the ANPA category letter codes AFP stamps on its
// subject codes onto the product tree. Unmapped categories fall back
// to the catch-all product.
var afpProducts = map[string]string{
	"SPO": "NEWS/SPORTS",
	"POL": "NEWS/POLITICS",
	"ECO": "NEWS/ECONOMY",
}

// AFP parses the French AFP NewsML 1.2 feed. AFP routes stories by the
// ANPA category on the subject codes and leaves urgent flashes without
// a headline.
type AFP struct {
	walker Walker
}

// NewAFP returns the AFP parser.
func NewAFP() *AFP {
	p := &AFP{}
	p.walker = Walker{
		ParserName: AFPName,
		PostNewsItem: func(_ *Walker, deps *feed.Context, it *item.Item, newsItemEl *etree.Element) {
			if product, ok := afpProducts[afpCategory(newsItemEl)]; ok {
				it.AddSubject(deps.Vocab.Resolve(vocab.SchemeServicesProducts, product))
			}
			if it.Headline == "" && (it.Urgency == 1 || it.Urgency == 2) {
				if lead := extract.FirstParagraph(it.BodyHTML); lead != "" {
					it.Headline = "URGENT: " + lead
				}
			}
			// The name label is AFP's internal routing slug, not a
			// subject.
			kept := it.Subject[:0]
			for _, s := range it.Subject {
				if s.Scheme != vocab.SchemeLabel {
					kept = append(kept, s)
				}
			}
			it.Subject = kept
			it.AddSubject(item.Subject{Name: "AFP", QCode: "AFP", Scheme: vocab.SchemeCredits})
		},
	}
	return p
}

func (p *AFP) Name() string { return AFPName }

func (p *AFP) CanParse(payload feed.Payload) bool { return isNewsML(payload) }

func (p *AFP) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	items, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}

// afpCategory returns the first ANPA category attribute found on a
// subject code child.
func afpCategory(newsItemEl *etree.Element) string {
	for _, subjectCodeEl := range newsItemEl.FindElements("NewsComponent/DescriptiveMetadata/SubjectCode") {
		for _, el := range subjectCodeEl.ChildElements() {
			if cat := el.SelectAttrValue("cat", ""); cat != "" {
				return cat
			}
		}
	}
	return ""
}
