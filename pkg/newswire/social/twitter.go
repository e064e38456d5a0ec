// Package social covers the social-media channels. The host fetches
// and decodes the upstream payloads; the parsers here validate channel
// configuration and enrich the pre-built items.
package social

import (
	"context"
	"errors"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
)

// TwitterName is the registry name of the base twitter parser.
const TwitterName = "twitter"

// Twitter passes through items the host already decoded from the
// twitter API, after checking the channel is usable at all.
type Twitter struct{}

// NewTwitter returns the base twitter parser.
func NewTwitter() *Twitter { return &Twitter{} }

func (p *Twitter) Name() string { return TwitterName }

// CanParse accepts payloads of pre-decoded items.
func (p *Twitter) CanParse(payload feed.Payload) bool {
	return len(payload.Items) > 0
}

func (p *Twitter) Parse(_ context.Context, _ *feed.Context, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	if err := checkConfig(provider); err != nil {
		return feed.Result{}, err
	}
	// The caller's payload stays untouched; downstream enrichment
	// works on this copy.
	return feed.Result{Items: append([]item.Item(nil), payload.Items...)}, nil
}

// checkConfig rejects channels that could never have produced the
// payload: missing credentials or an empty subscription list.
func checkConfig(provider feed.Provider) error {
	cfg := provider.Config
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return ingesterr.TwitterAuth(TwitterName, errors.New("missing consumer credentials"))
	}
	if cfg.AccessTokenKey == "" || cfg.AccessTokenSecret == "" {
		return ingesterr.TwitterAuth(TwitterName, errors.New("missing access token"))
	}
	if len(cfg.ScreenNames) == 0 {
		return ingesterr.TwitterNoScreenNames(TwitterName)
	}
	return nil
}
