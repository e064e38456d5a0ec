package newsml

import (
	"context"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

// ATSName is the registry name of the ATS wire parser.
const ATSName = "belga_ats_newsml12"

// ATS parses the Swiss ATS NewsML 1.2 feed. ATS sends offset
// timestamps and tucks the content item one component level down.
type ATS struct {
	walker Walker
}

// NewATS returns the ATS parser.
func NewATS() *ATS {
	p := &ATS{}
	p.walker = Walker{
		ParserName: ATSName,
		NormalizeTimes: func(it *item.Item) {
			it.Firstcreated = it.Firstcreated.UTC()
			it.Versioncreated = it.Versioncreated.UTC()
		},
		PostNewsItem: func(w *Walker, deps *feed.Context, it *item.Item, newsItemEl *etree.Element) {
			drillSecondComponent(w, deps, it, newsItemEl)
			it.AddSubject(item.Subject{Name: "ATS", QCode: "ATS", Scheme: vocab.SchemeSources})
		},
	}
	return p
}

func (p *ATS) Name() string { return ATSName }

func (p *ATS) CanParse(payload feed.Payload) bool { return isNewsML(payload) }

func (p *ATS) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	items, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}

// drillSecondComponent reads the ContentItem nested inside the second
// NewsComponent level, where ATS puts the story body.
func drillSecondComponent(w *Walker, _ *feed.Context, it *item.Item, newsItemEl *etree.Element) {
	componentEl := newsItemEl.SelectElement("NewsComponent")
	if componentEl == nil {
		return
	}
	second := componentEl.SelectElement("NewsComponent")
	if second == nil {
		return
	}
	if contentEl := second.SelectElement("ContentItem"); contentEl != nil {
		w.walkContentItem(it, contentEl)
	}
}

// isNewsML reports whether the payload is a NewsML 1.2 document.
func isNewsML(payload feed.Payload) bool {
	return payload.XML != nil && payload.XML.Root() != nil && payload.XML.Root().Tag == "NewsML"
}
