// Package item defines the normalized editorial unit every feed parser
// emits. An Item is the single output type of the ingest core: whatever
// the wire format looks like, downstream routing and packaging only ever
// sees this shape.
package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Content types an item can carry.
const (
	TypeText      = "text"
	TypePicture   = "picture"
	TypeVideo     = "video"
	TypeAudio     = "audio"
	TypeComposite = "composite"
	TypeEvent     = "event"
)

// Publication statuses.
const (
	StatusUsable   = "usable"
	StatusWithheld = "withheld"
	StatusCanceled = "canceled"
)

// StateDraft is the workflow state stamped on freshly ingested events.
const StateDraft = "draft"

// Translations holds the bilingual names a controlled-vocabulary term
// may carry.
type Translations struct {
	Name map[string]string `json:"name,omitempty" yaml:"name"`
}

// Subject is a controlled-vocabulary term attached to an item. Every
// term carries a scheme; terms sharing (scheme, qcode) are duplicates.
type Subject struct {
	Name         string        `json:"name"`
	QCode        string        `json:"qcode"`
	Parent       string        `json:"parent,omitempty"`
	Scheme       string        `json:"scheme"`
	Translations *Translations `json:"translations,omitempty"`
}

// Author is a contributor record. ID mirrors the provider-native
// composite identifier when one exists.
type Author struct {
	ID       []string `json:"_id,omitempty"`
	Name     string   `json:"name"`
	Role     string   `json:"role,omitempty"`
	SubLabel string   `json:"sub_label,omitempty"`
	URI      *string  `json:"uri"`
	Parent   *string  `json:"parent"`
	JobTitle *string  `json:"jobtitle"`
}

// Located pins a dateline to a place.
type Located struct {
	City     string `json:"city,omitempty"`
	CityCode string `json:"city_code,omitempty"`
	Country  string `json:"country,omitempty"`
	Tz       string `json:"tz,omitempty"`
	Dateline string `json:"dateline,omitempty"`
}

// Dateline is the place-and-time prefix printed with a wire story.
type Dateline struct {
	Text    string    `json:"text,omitempty"`
	Located *Located  `json:"located,omitempty"`
	Date    time.Time `json:"date,omitempty"`
}

// Attachment references a binary stored through the host attachment
// service.
type Attachment struct {
	Attachment string `json:"attachment"`
}

// Rendition is a size/format variant of a binary asset.
type Rendition struct {
	Href   string `json:"href"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// EventDates is the date range of an event item. Tz is the zone the
// range was authored in; Start and End are UTC.
type EventDates struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Tz    string    `json:"tz"`
}

// Calendar is an event calendar reference.
type Calendar struct {
	Name     string `json:"name"`
	QCode    string `json:"qcode"`
	IsActive bool   `json:"is_active"`
}

// Address locates an event venue.
type Address struct {
	Line     []string `json:"line,omitempty"`
	Locality string   `json:"locality,omitempty"`
	Area     string   `json:"area,omitempty"`
	Country  string   `json:"country,omitempty"`
}

// Location is an event venue.
type Location struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// Phone is a contact phone record.
type Phone struct {
	Number string `json:"number"`
	Public bool   `json:"public"`
	Usage  string `json:"usage,omitempty"`
}

// Contact is an event contact block.
type Contact struct {
	Honorific    string   `json:"honorific,omitempty"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	Organisation string   `json:"organisation,omitempty"`
	Email        []string `json:"contact_email,omitempty"`
	Phone        []Phone  `json:"contact_phone,omitempty"`
}

// OccurStatus qualifies how certain an event occurrence is.
type OccurStatus struct {
	QCode string `json:"qcode"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Genre is a provider genre reference kept outside the subject list.
type Genre struct {
	QCode string `json:"qcode"`
	Name  string `json:"name"`
}

// Item is the normalized unit emitted by every parser. Zero values mean
// "absent": an absent urgency is 0 and is never serialized, which keeps
// it distinct from any valid value in [1,9].
type Item struct {
	GUID             string `json:"guid"`
	URI              string `json:"uri,omitempty"`
	Version          string `json:"version,omitempty"`
	Type             string `json:"type"`
	Pubstatus        string `json:"pubstatus,omitempty"`
	Language         string `json:"language,omitempty"`
	Headline         string `json:"headline,omitempty"`
	Slugline         string `json:"slugline,omitempty"`
	Abstract         string `json:"abstract,omitempty"`
	BodyHTML         string `json:"body_html,omitempty"`
	PublicIdentifier string `json:"public_identifier,omitempty"`
	ProviderID       string `json:"provider_id,omitempty"`
	DateID           string `json:"date_id,omitempty"`
	ItemID           string `json:"item_id,omitempty"`

	Firstcreated   time.Time `json:"firstcreated,omitempty"`
	Versioncreated time.Time `json:"versioncreated,omitempty"`
	Firstpublished time.Time `json:"firstpublished,omitempty"`

	Urgency  int `json:"urgency,omitempty"`
	Priority int `json:"priority,omitempty"`

	Source          string `json:"source,omitempty"`
	Creditline      string `json:"creditline,omitempty"`
	Copyrightholder string `json:"copyrightholder,omitempty"`
	CopyrightLine   string `json:"copyright_line,omitempty"`
	Byline          string `json:"byline,omitempty"`
	EdNote          string `json:"ednote,omitempty"`

	Duid          string `json:"duid,omitempty"`
	SubHeadline   string `json:"sub_head_line,omitempty"`
	KeywordLine   string `json:"keyword_line,omitempty"`
	HeaderContent string `json:"header_content,omitempty"`
	BodyHead      string `json:"body_head,omitempty"`

	Dateline *Dateline `json:"dateline,omitempty"`
	Subject  []Subject `json:"subject,omitempty"`
	Keywords []string  `json:"keywords,omitempty"`
	Authors  []Author  `json:"authors,omitempty"`
	Genre    []Genre   `json:"genre,omitempty"`

	Extra          map[string]any       `json:"extra,omitempty"`
	Attachments    []Attachment         `json:"attachments,omitempty"`
	Administrative map[string]string    `json:"administrative,omitempty"`
	Renditions     map[string]Rendition `json:"renditions,omitempty"`

	LineType        string            `json:"line_type,omitempty"`
	LineText        string            `json:"line_text,omitempty"`
	Role            string            `json:"role,omitempty"`
	Format          string            `json:"format,omitempty"`
	Mimetype        string            `json:"mimetype,omitempty"`
	Characteristics map[string]string `json:"characteristics,omitempty"`
	WordCount       int               `json:"word_count,omitempty"`
	CharCount       int               `json:"char_count,omitempty"`
	Codes           []string          `json:"codes,omitempty"`
	Sequence        string            `json:"ingest_provider_sequence,omitempty"`
	State           string            `json:"state,omitempty"`
	Status          string            `json:"status,omitempty"`

	// Event fields (Type == "event").
	Name            string       `json:"name,omitempty"`
	Dates           *EventDates  `json:"dates,omitempty"`
	DefinitionShort string       `json:"definition_short,omitempty"`
	DefinitionLong  string       `json:"definition_long,omitempty"`
	InternalNote    string       `json:"internal_note,omitempty"`
	Links           []string     `json:"links,omitempty"`
	Calendars       []Calendar   `json:"calendars,omitempty"`
	Location        []Location   `json:"location,omitempty"`
	Contact         *Contact     `json:"contact,omitempty"`
	OccurStatus     *OccurStatus `json:"occur_status,omitempty"`
}

// AddSubject appends terms without deduplicating; callers run
// DedupSubjects once the item is assembled.
func (it *Item) AddSubject(terms ...Subject) {
	it.Subject = append(it.Subject, terms...)
}

// HasScheme reports whether any subject term belongs to the scheme.
func (it *Item) HasScheme(scheme string) bool {
	for _, s := range it.Subject {
		if s.Scheme == scheme {
			return true
		}
	}
	return false
}

// SetExtra lazily initializes the provider escape hatch.
func (it *Item) SetExtra(key string, value any) {
	if it.Extra == nil {
		it.Extra = make(map[string]any)
	}
	it.Extra[key] = value
}

// SetAdministrative lazily initializes the bookkeeping map.
func (it *Item) SetAdministrative(key, value string) {
	if it.Administrative == nil {
		it.Administrative = make(map[string]string)
	}
	it.Administrative[key] = value
}

// DedupSubjects removes terms sharing (scheme, qcode), keeping the
// first occurrence and the document order of survivors.
func (it *Item) DedupSubjects() {
	if len(it.Subject) < 2 {
		return
	}
	type key struct{ scheme, qcode string }
	seen := make(map[key]struct{}, len(it.Subject))
	out := it.Subject[:0]
	for _, s := range it.Subject {
		k := key{s.Scheme, s.QCode}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	it.Subject = out
}

// Validation failures.
var (
	ErrNoGUID      = errors.New("item has no guid")
	ErrNoScheme    = errors.New("subject term has no scheme")
	ErrTimeOrder   = errors.New("firstcreated is after versioncreated")
	ErrBadRange    = errors.New("urgency or priority outside [1,9]")
	ErrBadBodyHTML = errors.New("body_html is not a parseable fragment")
)

// Validate checks the contract every emitted item must satisfy.
func (it *Item) Validate() error {
	if it.GUID == "" {
		return ErrNoGUID
	}
	for _, s := range it.Subject {
		if s.Scheme == "" {
			return fmt.Errorf("%w: qcode %q", ErrNoScheme, s.QCode)
		}
	}
	if !it.Firstcreated.IsZero() && !it.Versioncreated.IsZero() &&
		it.Firstcreated.After(it.Versioncreated) {
		return ErrTimeOrder
	}
	if (it.Urgency != 0 && (it.Urgency < 1 || it.Urgency > 9)) ||
		(it.Priority != 0 && (it.Priority < 1 || it.Priority > 9)) {
		return ErrBadRange
	}
	if it.BodyHTML != "" && !validFragment(it.BodyHTML) {
		return ErrBadBodyHTML
	}
	return nil
}

// validFragment reports whether s parses as an HTML fragment. Multiple
// top-level elements are fine; what we reject is input the tolerant
// html5 parser cannot consume at all.
func validFragment(s string) bool {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	_, err := html.ParseFragment(strings.NewReader(s), body)
	return err == nil
}
