// Package tabular parses the events spreadsheet feed. The payload is a
// two-dimensional cell grid whose first row must match a fixed column
// schema; every later non-empty row becomes one event item. Row-level
// validation failures do not abort the sheet: they come back as cell
// annotations the host writes into the status columns.
package tabular

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
)

// SpreadsheetName is the registry name of the events spreadsheet parser.
const SpreadsheetName = "belgaspreadsheets"

// titles is the required header schema, in sheet order.
var titles = []string{
	"Start date", "Start time", "End date", "End time", "All day", "Timezone", "Slugline", "Event name",
	"Description", "Occurence status", "Calendars", "Location Name", "Location Address", "Location City/Town",
	"Location State/Province/Region", "Location Country", "Contact Honorific", "Contact First name",
	"Contact Last name", "Contact Organisation", "Contact Point of Contact", "Contact Email",
	"Contact Phone Number", "Contact Phone Usage", "Contact Phone Public", "Long description", "Internal note",
	"Ed note", "External links",
}

// statusColumns are the host-maintained bookkeeping columns. They are
// optional in the header; annotations are only emitted when present.
var statusColumns = []string{"_STATUS", "_ERR_MESSAGE", "_GUID"}

var occurStatuses = map[string]string{
	"Unplanned event":                      "eocstat:eos0",
	"Planned, occurrence planned only":     "eocstat:eos1",
	"Planned, occurrence highly uncertain": "eocstat:eos2",
	"Planned, May occur":                   "eocstat:eos3",
	"Planned, occurrence highly likely":    "eocstat:eos4",
	"Planned, occurs certainly":            "eocstat:eos5",
}

// requiredFields name the item fields a row must fill to be emitted.
var requiredFields = []struct {
	label string
	get   func(it *item.Item) string
}{
	{"slugline", func(it *item.Item) string { return it.Slugline }},
	{"calendars", func(it *item.Item) string {
		if len(it.Calendars) == 0 {
			return ""
		}
		return it.Calendars[0].Name
	}},
	{"name", func(it *item.Item) string { return it.Name }},
}

var errBadHeader = errors.New("header row does not match the events schema")

// Spreadsheet parses event rows from the fixed 31-column sheet.
type Spreadsheet struct{}

// NewSpreadsheet returns the events spreadsheet parser.
func NewSpreadsheet() *Spreadsheet { return &Spreadsheet{} }

func (p *Spreadsheet) Name() string { return SpreadsheetName }

func (p *Spreadsheet) CanParse(payload feed.Payload) bool {
	if len(payload.Rows) == 0 {
		return false
	}
	_, err := parseTitles(payload.Rows[0])
	return err == nil
}

// Parse walks the data rows. Rows the host already processed (a
// _STATUS other than UPDATED or ERROR) are left alone; failed rows are
// annotated in place of being emitted.
func (p *Spreadsheet) Parse(_ context.Context, deps *feed.Context, payload feed.Payload, provider feed.Provider) (feed.Result, error) {
	if len(payload.Rows) == 0 {
		return feed.Result{}, ingesterr.Malformed(SpreadsheetName, errBadHeader)
	}
	index, err := parseTitles(payload.Rows[0])
	if err != nil {
		return feed.Result{}, ingesterr.Malformed(SpreadsheetName, err)
	}

	var res feed.Result
	// The first two rows are header rows; sheet rows are 1-based.
	for i := 2; i < len(payload.Rows); i++ {
		row := i + 1
		values := payload.Rows[i]
		if blankRow(values) {
			continue
		}

		status := strings.ToUpper(strings.TrimSpace(cell(values, index, "_STATUS")))
		if status != "" && status != "UPDATED" && status != "ERROR" {
			continue
		}

		it, rowErr := p.parseRow(deps, values, index)
		if rowErr != nil {
			deps.Printf("%s: provider %s row %d: %v", SpreadsheetName, provider.Name, row, rowErr)
			res.Annotations = append(res.Annotations,
				annotate(index, row, "_STATUS", "ERROR"),
				annotate(index, row, "_ERR_MESSAGE", annotationText(rowErr)),
			)
			continue
		}
		it.Status = cell(values, index, "_STATUS")
		res.Annotations = append(res.Annotations,
			annotate(index, row, "_STATUS", "DONE"),
			annotate(index, row, "_ERR_MESSAGE", ""),
			annotate(index, row, "_GUID", it.GUID),
		)
		res.Items = append(res.Items, it)
	}
	return res, nil
}

func (p *Spreadsheet) parseRow(deps *feed.Context, values []string, index map[string]int) (item.Item, error) {
	get := func(title string) string { return cell(values, index, title) }

	tz := get("Timezone")
	if tz == "" || tz == "none" {
		tz = "UTC"
	}

	var start, end time.Time
	var err error
	if get("All day") == "TRUE" {
		if start, err = extract.ParseDate(get("Start date")); err == nil {
			if end, err = extract.ParseDate(get("End date")); err == nil {
				end = extract.EndOfDay(end)
			}
		}
	} else {
		if start, err = extract.ParseDateTime(get("Start date"), get("Start time")); err == nil {
			end, err = extract.ParseDateTime(get("End date"), get("End time"))
		}
	}
	if err != nil {
		return item.Item{}, err
	}

	startUTC, err := extract.LocalToUTC(tz, start)
	if err != nil {
		return item.Item{}, ingesterr.UnknownTimezone(SpreadsheetName, tz)
	}
	endUTC, err := extract.LocalToUTC(tz, end)
	if err != nil {
		return item.Item{}, ingesterr.UnknownTimezone(SpreadsheetName, tz)
	}

	guid := get("_GUID")
	if guid == "" {
		guid = "urn:newsml:" + uuid.NewString()
	}

	it := item.Item{
		GUID:            guid,
		Type:            item.TypeEvent,
		State:           item.StateDraft,
		Name:            get("Event name"),
		Slugline:        get("Slugline"),
		DefinitionShort: get("Description"),
		DefinitionLong:  get("Long description"),
		InternalNote:    get("Internal note"),
		EdNote:          get("Ed note"),
		Dates:           &item.EventDates{Start: startUTC, End: endUTC, Tz: tz},
	}
	if links := get("External links"); links != "" {
		it.Links = []string{links}
	}

	if name := get("Occurence status"); name != "" {
		if qcode, ok := occurStatuses[name]; ok {
			it.OccurStatus = &item.OccurStatus{
				QCode: qcode,
				Name:  name,
				Label: strings.ToLower(name),
			}
		}
	}

	if cal, ok := deps.Vocab.Calendar(get("Calendars")); ok {
		it.Calendars = []item.Calendar{cal}
	}

	if get("Location Name") != "" && get("Location Address") != "" && get("Location Country") != "" {
		it.Location = []item.Location{{
			Name: get("Location Name"),
			Address: item.Address{
				Line:     strings.Split(get("Location Address"), "\n"),
				Locality: get("Location City/Town"),
				Area:     get("Location State/Province/Region"),
				Country:  get("Location Country"),
			},
		}}
	}

	hasName := get("Contact First name") != "" && get("Contact Last name") != ""
	if get("Contact Email") != "" && get("Contact Phone Number") != "" &&
		(hasName || get("Contact Organisation") != "") {
		usage := get("Contact Phone Usage")
		public := get("Contact Phone Public") == "TRUE"
		if usage == "Confidential" {
			public = false
		}
		it.Contact = &item.Contact{
			Honorific:    get("Contact Honorific"),
			FirstName:    get("Contact First name"),
			LastName:     get("Contact Last name"),
			Organisation: get("Contact Organisation"),
			Email:        []string{get("Contact Email")},
			Phone:        []item.Phone{{Number: get("Contact Phone Number"), Public: public, Usage: usage}},
		}
	}

	var missing []string
	for _, f := range requiredFields {
		if f.get(&it) == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return item.Item{}, fmt.Errorf("Missing %s fields", strings.Join(missing, ", "))
	}
	return it, nil
}

// annotationText is the operator-visible cell text for a row failure.
func annotationText(err error) string {
	var ingErr *ingesterr.Error
	if errors.As(err, &ingErr) && ingErr.Kind == ingesterr.KindTimezone {
		return "Invalid timezone"
	}
	if errors.Is(err, extract.ErrNoDate) {
		return extract.ErrNoDate.Error()
	}
	return err.Error()
}

// parseTitles validates the header row and maps column titles to their
// indexes. Matching is case-insensitive and whitespace-tolerant.
func parseTitles(header []string) (map[string]int, error) {
	seen := make(map[string]int, len(header))
	for i, title := range header {
		seen[strings.ToLower(strings.TrimSpace(title))] = i
	}
	index := make(map[string]int, len(titles)+len(statusColumns))
	for _, title := range titles {
		i, ok := seen[strings.ToLower(title)]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", errBadHeader, title)
		}
		index[title] = i
	}
	for _, title := range statusColumns {
		if i, ok := seen[strings.ToLower(title)]; ok {
			index[title] = i
		}
	}
	return index, nil
}

// annotate builds one status-cell annotation. Sheets without the
// bookkeeping columns get a zero column, which the host ignores.
func annotate(index map[string]int, row int, title, value string) feed.Annotation {
	col := 0
	if i, ok := index[title]; ok {
		col = i + 1
	}
	return feed.Annotation{Row: row, Col: col, Value: value}
}

func cell(values []string, index map[string]int, title string) string {
	i, ok := index[title]
	if !ok || i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

func blankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
