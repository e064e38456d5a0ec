// wire-ingest parses one payload file with a named wire parser and
// prints the normalized items as JSON. It stands in for the host's
// ingest loop when developing or debugging a parser.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/belga/newswire/internal/store"
	"github.com/belga/newswire/pkg/newswire"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
)

func main() {
	var (
		parserName = flag.String("parser", "", "Parser name (empty sniffs by payload)")
		provider   = flag.String("provider", "cli", "Provider name")
		source     = flag.String("source", "", "Provider source")
		path       = flag.String("path", "", "Provider spool path (for sidecar files)")
		format     = flag.String("format", "", "Payload format: xml, rows, items, raw (default: by extension)")
		dbPath     = flag.String("db", "", "Optional sink database to record the result in")
		list       = flag.Bool("list", false, "List registered parsers and exit")
	)
	flag.Parse()

	engine := newswire.New(newswire.Options{})
	engine.RegisterBuiltins()

	if *list {
		for _, name := range engine.Parsers() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 1 {
		log.Fatal("usage: wire-ingest [flags] <payload-file>")
	}
	file := flag.Arg(0)

	payload, err := loadPayload(file, *format)
	if err != nil {
		log.Fatal("Failed to load payload: ", err)
	}

	ctx := context.Background()
	res, err := engine.Parse(ctx, *parserName, payload, feed.Provider{
		Name:   *provider,
		Source: *source,
		Config: feed.Config{Path: *path},
	})
	if err != nil {
		log.Fatal("Parse failed: ", err)
	}

	out, err := json.MarshalIndent(res.Items, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode items: ", err)
	}
	fmt.Println(string(out))

	for _, a := range res.Annotations {
		log.Printf("annotation row=%d col=%d value=%q", a.Row, a.Col, a.Value)
	}

	if *dbPath != "" {
		sink, err := store.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open sink: ", err)
		}
		defer sink.Close()
		id, err := sink.Record(ctx, *parserName, feed.Provider{Name: *provider}, res)
		if err != nil {
			log.Fatal("Failed to record attempt: ", err)
		}
		log.Printf("recorded attempt %s (%d items)", id, len(res.Items))
	}
}

// loadPayload reads file into the payload slot matching format, or the
// slot its extension suggests when format is empty.
func loadPayload(file, format string) (feed.Payload, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(file)) {
		case ".xml":
			format = "xml"
		case ".csv":
			format = "rows"
		case ".json":
			format = "items"
		default:
			format = "raw"
		}
	}

	switch format {
	case "xml":
		doc := etree.NewDocument()
		if err := doc.ReadFromFile(file); err != nil {
			return feed.Payload{}, err
		}
		return feed.Payload{XML: doc}, nil
	case "rows":
		f, err := os.Open(file)
		if err != nil {
			return feed.Payload{}, err
		}
		defer f.Close()
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return feed.Payload{}, err
		}
		return feed.Payload{Rows: rows}, nil
	case "items":
		raw, err := os.ReadFile(file)
		if err != nil {
			return feed.Payload{}, err
		}
		var items []item.Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return feed.Payload{}, err
		}
		return feed.Payload{Items: items}, nil
	case "raw":
		raw, err := os.ReadFile(file)
		if err != nil {
			return feed.Payload{}, err
		}
		return feed.Payload{Raw: raw}, nil
	}
	return feed.Payload{}, fmt.Errorf("unknown payload format %q", format)
}
