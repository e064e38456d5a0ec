package g2

import (
	"context"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
)

// STTName is the registry name of the STT parser.
const STTName = "belga_stt_newsml"

// STT parses the Finnish STT G2 feed. STT abstracts are the editorial
// lede rather than metadata, so a present abstract is folded into the
// top of the body and the field is cleared.
type STT struct {
	walker Walker
}

// NewSTT returns the STT parser.
func NewSTT() *STT {
	p := &STT{}
	p.walker = Walker{
		ParserName: STTName,
		PostItem: func(_ *feed.Context, it *item.Item, _ *etree.Element) {
			if it.Abstract != "" {
				it.BodyHTML = "<p>" + it.Abstract + "</p>" + it.BodyHTML
				it.Abstract = ""
			}
		},
	}
	return p
}

func (p *STT) Name() string { return STTName }

func (p *STT) CanParse(payload feed.Payload) bool { return IsNewsItem(payload) }

func (p *STT) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, _ feed.Provider) (feed.Result, error) {
	it, err := p.walker.Parse(deps, payload.XML)
	if err != nil {
		return feed.Result{}, err
	}
	return feed.Result{Items: []item.Item{it}}, nil
}
