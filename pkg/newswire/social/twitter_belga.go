package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
)

// TwitterBelgaName is the registry name of the Belga twitter parser.
const TwitterBelgaName = "twitter_belga"

// iframelyEndpoint is the production oEmbed service.
const iframelyEndpoint = "https://iframe.ly/api/oembed"

// Markers wrapping every appended embed block. The host relies on them
// to find and strip previously appended embeds on re-ingest.
const (
	embedStart = "<!-- EMBED START Twitter -->"
	embedEnd   = "<!-- EMBED END Twitter -->"
)

// TwitterBelga appends iframely embed blocks for every link found in a
// tweet body and restamps versioncreated so the items do not expire
// before an editor sees them.
type TwitterBelga struct {
	base     *Twitter
	endpoint string
}

// NewTwitterBelga returns the Belga twitter parser.
func NewTwitterBelga() *TwitterBelga {
	return &TwitterBelga{base: NewTwitter(), endpoint: iframelyEndpoint}
}

func (p *TwitterBelga) Name() string { return TwitterBelgaName }

func (p *TwitterBelga) CanParse(payload feed.Payload) bool {
	return p.base.CanParse(payload)
}

func (p *TwitterBelga) Parse(ctx context.Context, deps *feed.Context, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	res, err := p.base.Parse(ctx, deps, payload, provider)
	if err != nil {
		return feed.Result{}, err
	}

	cfg := provider.Config
	if cfg.EmbedTweet && cfg.IframelyKey == "" {
		return feed.Result{}, ingesterr.MissingConfig(TwitterBelgaName, "iframely_key")
	}

	for i := range res.Items {
		it := &res.Items[i]
		it.Versioncreated = deps.Now().UTC()
		if !cfg.EmbedTweet {
			continue
		}
		for _, link := range extract.ExtractURLs(it.BodyHTML) {
			html, err := p.embed(ctx, deps, link, cfg.IframelyKey)
			if err != nil {
				return feed.Result{}, err
			}
			it.BodyHTML += embedStart + html + embedEnd
		}
	}
	return res, nil
}

// embed fetches the oEmbed HTML for one link. A 403 means the api key
// is bad and aborts the whole batch; any other failure status yields an
// empty block so one dead link cannot poison the remaining tweets.
func (p *TwitterBelga) embed(ctx context.Context, deps *feed.Context, link, key string) (string, error) {
	query := url.Values{"url": {link}, "api_key": {key}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%s: build iframely request: %w", TwitterBelgaName, err)
	}
	resp, err := deps.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: iframely request: %w", TwitterBelgaName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var body struct {
			HTML string `json:"html"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", ingesterr.Malformed(TwitterBelgaName, fmt.Errorf("iframely response: %w", err))
		}
		return body.HTML, nil
	case resp.StatusCode == http.StatusForbidden:
		return "", ingesterr.InvalidIframelyKey(TwitterBelgaName, fmt.Errorf("iframely returned %s", resp.Status))
	default:
		deps.Printf("%s: iframely returned %s for %s", TwitterBelgaName, resp.Status, link)
		return "", nil
	}
}
