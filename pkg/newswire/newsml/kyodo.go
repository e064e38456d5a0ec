package newsml

import (
	"context"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
)

// KyodoName is the registry name of the Kyodo wire parser.
const KyodoName = "belga_kyodo_newsml12"

// kyodoDatelinePath locates the NITF dateline city Kyodo buries in the
// body head.
const kyodoDatelinePath = "NewsML/NewsItem/NewsComponent/ContentItem/DataContent/nitf/body/body.head/dateline/location"

// Kyodo parses the Japanese Kyodo NewsML 1.2 feed. Timestamps keep the
// provider's +09:00 offset; the dateline city comes from the NITF body
// head rather than the descriptive block.
type Kyodo struct {
	walker Walker
}

// NewKyodo returns the Kyodo parser.
func NewKyodo() *Kyodo {
	p := &Kyodo{}
	p.walker = Walker{
		ParserName: KyodoName,
		// Kyodo pads its NITF paragraphs with fixed-width indentation;
		// the body is re-rendered as clean paragraphs.
		PostNewsItem: func(_ *Walker, _ *feed.Context, it *item.Item, _ *etree.Element) {
			if it.BodyHTML == "" {
				return
			}
			if body, err := extract.RewrapParagraphs(it.BodyHTML); err == nil {
				it.BodyHTML = body
			}
			if it.WordCount == 0 {
				it.WordCount = extract.WordCount(it.BodyHTML)
			}
		},
		PostParse: func(items []item.Item, doc *etree.Document) {
			locationEl := doc.FindElement(kyodoDatelinePath)
			if locationEl == nil {
				return
			}
			for i := range items {
				items[i].SetExtra("city", locationEl.Text())
			}
		},
	}
	return p
}

func (p *Kyodo) Name() string { return KyodoName }

func (p *Kyodo) CanParse(payload feed.Payload) bool { return isNewsML(payload) }

func (p *Kyodo) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	items, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}
