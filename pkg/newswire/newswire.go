// Package newswire is the facade hosts embed: a parser registry plus
// the dependency context every parse call receives. A host builds one
// Engine at startup, registers the built-in parsers, and routes every
// incoming payload through it.
package newswire

import (
	"context"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/g2"
	"github.com/belga/newswire/pkg/newswire/newsml"
	"github.com/belga/newswire/pkg/newswire/rss"
	"github.com/belga/newswire/pkg/newswire/social"
	"github.com/belga/newswire/pkg/newswire/tabular"
)

// Engine bundles the registry and the shared parser dependencies.
type Engine struct {
	registry *feed.Registry
	deps     *feed.Context
}

// Options configures an Engine.
type Options struct {
	// Context holds the parser dependencies. Nil means production
	// defaults (real clock, real HTTP client, built-in vocabularies).
	Context *feed.Context

	// Registry lets a host share or pre-seed a registry. Nil means a
	// fresh empty one.
	Registry *feed.Registry
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	deps := opts.Context
	if deps == nil {
		deps = feed.NewContext()
	}
	registry := opts.Registry
	if registry == nil {
		registry = feed.NewRegistry()
	}
	return &Engine{registry: registry, deps: deps}
}

// RegisterBuiltins registers every wire parser this module ships, in a
// fixed order so payload sniffing is deterministic. Hosts that only
// want a subset register parsers individually instead.
func (e *Engine) RegisterBuiltins() {
	for _, p := range []feed.Parser{
		newsml.NewAFP(),
		newsml.NewEFE(),
		newsml.NewATS(),
		newsml.NewTASS(),
		newsml.NewKyodo(),
		newsml.NewTip(),
		newsml.NewRemote(),
		g2.NewSTT(),
		g2.NewANSA(),
		tabular.NewSpreadsheet(),
		rss.New(),
		social.NewTwitter(),
		social.NewTwitterBelga(),
	} {
		e.registry.Register(p)
	}
}

// Register adds or replaces one parser.
func (e *Engine) Register(p feed.Parser) {
	e.registry.Register(p)
}

// Parsers returns the registered parser names in registration order.
func (e *Engine) Parsers() []string {
	return e.registry.Names()
}

// FindParser returns the parser registered under name.
func (e *Engine) FindParser(name string) (feed.Parser, error) {
	return e.registry.Get(name)
}

// Parse routes a payload to the named parser, or to the first parser
// accepting it when name is empty.
func (e *Engine) Parse(ctx context.Context, name string, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	var (
		parser feed.Parser
		err    error
	)
	if name == "" {
		parser, err = e.registry.Find(payload)
	} else {
		parser, err = e.registry.Get(name)
	}
	if err != nil {
		return feed.Result{}, err
	}
	return parser.Parse(ctx, e.deps, payload, provider)
}
