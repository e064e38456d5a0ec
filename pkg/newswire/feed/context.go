package feed

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/belga/newswire/pkg/newswire/vocab"
)

// AttachmentService stores sidecar files referenced by a wire item and
// returns the identifier the item should carry. Hosts plug in their
// own storage; tests plug in fakes.
type AttachmentService interface {
	Store(filename string, r io.Reader) (id string, err error)
}

// Context carries every external dependency a parser may need. Parsers
// receive it explicitly instead of reaching for process globals, so a
// test can swap any piece.
type Context struct {
	Attachments AttachmentService
	Vocab       *vocab.Store
	HTTP        *http.Client
	Now         func() time.Time
	Logger      *log.Logger
	Open        func(path string) (io.ReadCloser, error)
}

// NewContext returns a context with production defaults. Callers
// overwrite fields as needed before handing it to parsers.
func NewContext() *Context {
	return &Context{
		Vocab:  vocab.Default(),
		HTTP:   &http.Client{Timeout: 30 * time.Second},
		Now:    time.Now,
		Logger: log.New(os.Stderr, "[newswire] ", log.LstdFlags),
		Open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Printf logs through the configured logger, tolerating a nil one.
func (c *Context) Printf(format string, args ...any) {
	if c != nil && c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
