package newsml

import (
	"context"

	"github.com/belga/newswire/pkg/newswire/feed"
)

// TipName is the registry name of the belga.be tip parser.
const TipName = "belgatipnewsml12"

// Tip parses the in-house tip feed: very short items, often with the
// body equal to the headline, carrying the internal news_services and
// news_products schemes.
type Tip struct {
	walker internalWalker
}

// NewTip returns the tip parser.
func NewTip() *Tip {
	return &Tip{walker: internalWalker{
		parserName:     TipName,
		supportedRoles: map[string]bool{"TIP": true},
	}}
}

func (p *Tip) Name() string { return TipName }

func (p *Tip) CanParse(payload feed.Payload) bool { return isNewsML(payload) }

func (p *Tip) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	items, err := p.walker.parse(deps, payload.XML, provider)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: items}, nil
}
