package feed

// Config is the per-provider ingest configuration the host passes
// through untouched. Fields irrelevant to a given parser stay zero.
type Config struct {
	// Path is the spool directory or file the provider drops
	// payloads in, for parsers that resolve sidecar files.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Twitter credentials and subscription list. All four credential
	// fields are required for the channel to authenticate.
	ConsumerKey       string   `json:"consumer_key,omitempty" yaml:"consumer_key,omitempty"`
	ConsumerSecret    string   `json:"consumer_secret,omitempty" yaml:"consumer_secret,omitempty"`
	AccessTokenKey    string   `json:"access_token_key,omitempty" yaml:"access_token_key,omitempty"`
	AccessTokenSecret string   `json:"access_token_secret,omitempty" yaml:"access_token_secret,omitempty"`
	ScreenNames       []string `json:"screen_names,omitempty" yaml:"screen_names,omitempty"`

	// EmbedTweet enables link-to-embed expansion through iframely.
	EmbedTweet  bool   `json:"embed_tweet,omitempty" yaml:"embed_tweet,omitempty"`
	IframelyKey string `json:"iframely_key,omitempty" yaml:"iframely_key,omitempty"`

	// URL is the fetch endpoint for pull-based providers.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Provider is the ingest channel a payload arrived on.
type Provider struct {
	ID     string `json:"_id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Config Config `json:"config,omitempty" yaml:"config,omitempty"`
}
