// Package feed defines the contract every wire parser implements and
// the registry the host looks parsers up in. A parser receives a
// decoded payload plus its provider record and returns normalized
// items; it never touches provider state and never writes anywhere.
package feed

import (
	"context"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/item"
)

// Payload is the decoded input handed to a parser. Exactly one of the
// fields is populated, matching the transport the payload arrived on.
type Payload struct {
	// XML is set for NewsML, NewsML-G2 and NITF documents.
	XML *etree.Document
	// Rows is set for spreadsheet grids, one slice per sheet row.
	Rows [][]string
	// Items is set for feeds whose fetcher already produced items
	// that only need enrichment.
	Items []item.Item
	// Raw is set when the transport delivers opaque bytes (RSS).
	Raw []byte
}

// Annotation is a per-cell verdict a spreadsheet parse reports back so
// the operator sees which rows imported and which failed.
type Annotation struct {
	Row   int
	Col   int
	Value string
}

// Result is everything a parse produces.
type Result struct {
	Items       []item.Item
	Annotations []Annotation
}

// Parser is one wire-format parser. CanParse must be cheap, free of
// side effects and must return false on anything it is unsure about;
// Parse may assume CanParse returned true for the same payload.
type Parser interface {
	Name() string
	CanParse(p Payload) bool
	Parse(ctx context.Context, deps *Context, p Payload, provider Provider) (Result, error)
}
