// Package newsml parses the NewsML 1.2 wire family. A shared walker
// covers the envelope, identification, management, component and
// descriptive blocks; the per-agency parsers configure it with the
// quirks their feed actually ships.
package newsml

import (
	"errors"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

var errNotNewsML = errors.New("document root is not NewsML")

// Walker is the configurable NewsML 1.2 document walk. The zero value
// walks the standard layout; agency parsers set the hook fields.
type Walker struct {
	ParserName string

	// NormalizeTimes adjusts firstcreated and versioncreated after
	// the management block is read. nil keeps the wire values.
	NormalizeTimes func(it *item.Item)

	// ComponentRoot picks the NewsComponent the shared walk descends
	// into, given the NewsItem's top-level component. nil walks the
	// top-level component itself.
	ComponentRoot func(componentEl *etree.Element) *etree.Element

	// PostNewsItem runs agency logic after the shared walk of one
	// NewsItem, before batch-level defaults are applied.
	PostNewsItem func(w *Walker, deps *feed.Context, it *item.Item, newsItemEl *etree.Element)

	// PostParse runs once over the finished batch.
	PostParse func(items []item.Item, doc *etree.Document)
}

// Parse walks a NewsML document into normalized items. Items that an
// agency hook rejects are skipped; the rest of the batch survives.
func (w *Walker) Parse(deps *feed.Context, doc *etree.Document) ([]item.Item, error) {
	root := doc.Root()
	if root == nil || root.Tag != "NewsML" {
		return nil, ingesterr.Malformed(w.ParserName, errNotNewsML)
	}

	seed := item.Item{}
	walkEnvelope(&seed, root.SelectElement("NewsEnvelope"))

	items := make([]item.Item, 0)
	for _, newsItemEl := range root.SelectElements("NewsItem") {
		it := seed
		if err := w.walkNewsItem(deps, &it, newsItemEl); err != nil {
			deps.Printf("%s: skipping news item: %v", w.ParserName, err)
			continue
		}
		if w.PostNewsItem != nil {
			w.PostNewsItem(w, deps, &it, newsItemEl)
		}
		applyDefaults(deps.Vocab, &it)
		items = append(items, it)
	}
	if w.PostParse != nil {
		w.PostParse(items, doc)
	}
	return items, nil
}

// applyDefaults is the batch-level normalization every agency gets:
// the catch-all product when none was mapped, the default
// distribution, a cleared slugline and keyword list, and subject
// deduplication.
func applyDefaults(v *vocab.Store, it *item.Item) {
	if !it.HasScheme(vocab.SchemeServicesProducts) {
		it.AddSubject(item.Subject{
			Name:   "NEWS/GENERAL",
			QCode:  "NEWS/GENERAL",
			Parent: "NEWS",
			Scheme: vocab.SchemeServicesProducts,
		})
	}
	it.AddSubject(v.Resolve(vocab.SchemeDistribution, "default"))
	it.Slugline = ""
	it.Keywords = nil
	it.DedupSubjects()
}

func walkEnvelope(it *item.Item, envelopeEl *etree.Element) {
	if envelopeEl == nil {
		return
	}
	if el := envelopeEl.SelectElement("TransmissionId"); el != nil {
		it.Sequence = el.Text()
	}
	if el := envelopeEl.SelectElement("Priority"); el != nil {
		if n, err := strconv.Atoi(el.SelectAttrValue("FormalName", "")); err == nil {
			it.Priority = n
		}
	}
}

func (w *Walker) walkNewsItem(deps *feed.Context, it *item.Item, newsItemEl *etree.Element) error {
	if duid := newsItemEl.SelectAttrValue("Duid", ""); duid != "" {
		it.Duid = duid
	}
	if linkType := newsItemEl.SelectAttrValue("LinkType", ""); linkType != "" {
		it.AddSubject(item.Subject{Name: linkType, QCode: linkType, Scheme: vocab.SchemeLinkType})
	}

	w.walkIdentification(it, newsItemEl.SelectElement("Identification"))
	if err := w.walkNewsManagement(it, newsItemEl.SelectElement("NewsManagement")); err != nil {
		return err
	}
	if w.NormalizeTimes != nil {
		w.NormalizeTimes(it)
	}

	componentEl := newsItemEl.SelectElement("NewsComponent")
	if componentEl != nil {
		target := componentEl
		if w.ComponentRoot != nil {
			target = w.ComponentRoot(componentEl)
		}
		if target != nil {
			w.walkNewsComponent(deps, it, target)
		}
	}
	return nil
}

func (w *Walker) walkIdentification(it *item.Item, identEl *etree.Element) {
	if identEl == nil {
		return
	}
	if newsIdentEl := identEl.SelectElement("NewsIdentifier"); newsIdentEl != nil {
		if el := newsIdentEl.SelectElement("ProviderId"); el != nil {
			it.ProviderID = el.Text()
		}
		if el := newsIdentEl.SelectElement("DateId"); el != nil {
			it.DateID = el.Text()
		}
		if el := newsIdentEl.SelectElement("NewsItemId"); el != nil {
			it.GUID = el.Text()
			it.ItemID = el.Text()
		}
		if el := newsIdentEl.SelectElement("RevisionId"); el != nil {
			it.Version = el.Text()
		}
		if el := newsIdentEl.SelectElement("PublicIdentifier"); el != nil {
			it.GUID = el.Text()
		}
	}
	if el := identEl.SelectElement("NameLabel"); el != nil && el.Text() != "" {
		it.AddSubject(item.Subject{Name: el.Text(), QCode: el.Text(), Scheme: vocab.SchemeLabel})
	}
}

func (w *Walker) walkNewsManagement(it *item.Item, manageEl *etree.Element) error {
	if manageEl == nil {
		return nil
	}
	if el := manageEl.SelectElement("FirstCreated"); el != nil {
		t, err := extract.ParseWireTime(el.Text())
		if err != nil {
			return err
		}
		it.Firstcreated = t
	}
	if el := manageEl.SelectElement("ThisRevisionCreated"); el != nil {
		t, err := extract.ParseWireTime(el.Text())
		if err != nil {
			return err
		}
		it.Versioncreated = t
	}
	if el := manageEl.SelectElement("Status"); el != nil {
		it.Pubstatus = strings.ToLower(el.SelectAttrValue("FormalName", ""))
	}
	if el := manageEl.SelectElement("Urgency"); el != nil {
		raw := el.SelectAttrValue("FormalName", "")
		if raw == "" {
			raw = el.Text()
		}
		if n, err := strconv.Atoi(raw); err == nil {
			it.Urgency = n
		}
	}
	return nil
}

func (w *Walker) walkNewsComponent(deps *feed.Context, it *item.Item, componentEl *etree.Element) {
	if duid := componentEl.SelectAttrValue("Duid", ""); duid != "" && it.GUID == "" {
		it.GUID = duid
	}
	if essential := componentEl.SelectAttrValue("Essential", ""); essential != "" {
		it.AddSubject(item.Subject{Name: essential, QCode: essential, Scheme: vocab.SchemeEssential})
	}
	if equivalents := componentEl.SelectAttrValue("EquivalentsList", ""); equivalents != "" {
		it.AddSubject(item.Subject{Name: equivalents, QCode: equivalents, Scheme: vocab.SchemeEquivalentsList})
	}
	if roleEl := componentEl.SelectElement("Role"); roleEl != nil {
		if role := roleEl.SelectAttrValue("FormalName", ""); role != "" {
			it.Role = role
		}
	}

	if newsLinesEl := componentEl.SelectElement("NewsLines"); newsLinesEl != nil {
		w.walkNewsLines(it, newsLinesEl)
	}

	if adminEl := componentEl.SelectElement("AdministrativeMetadata"); adminEl != nil {
		if el := adminEl.FindElement("Provider/Party"); el != nil {
			it.SetAdministrative("provider", el.SelectAttrValue("FormalName", ""))
		}
		if el := adminEl.FindElement("Creator/Party"); el != nil {
			it.SetAdministrative("creator", el.SelectAttrValue("FormalName", ""))
		}
		if el := adminEl.FindElement("Source/Party"); el != nil {
			it.SetAdministrative("source", el.SelectAttrValue("FormalName", ""))
		}
	}

	descriptiveEl := componentEl.SelectElement("DescriptiveMetadata")
	if descriptiveEl == nil {
		// Some agencies truncate the tag name.
		descriptiveEl = componentEl.SelectElement("DescriptiveMetada")
	}
	w.walkDescriptiveMetadata(deps, it, descriptiveEl)

	w.walkContentItem(it, componentEl.SelectElement("ContentItem"))

	if keywordsEl := componentEl.SelectElement("item_keywords"); keywordsEl != nil {
		for _, el := range keywordsEl.SelectElements("item_keyword") {
			if el.Text() != "" {
				it.Keywords = append(it.Keywords, el.Text())
			}
		}
	}
}

func (w *Walker) walkNewsLines(it *item.Item, newsLinesEl *etree.Element) {
	if el := newsLinesEl.SelectElement("DateLine"); el != nil {
		if it.Dateline == nil {
			it.Dateline = &item.Dateline{}
		}
		it.Dateline.Text = el.Text()
	}
	if el := newsLinesEl.SelectElement("HeadLine"); el != nil {
		it.Headline = el.Text()
	}
	if el := newsLinesEl.FindElement("NewsLine/NewsLineType"); el != nil {
		it.LineType = el.SelectAttrValue("FormalName", "")
	}
	if el := newsLinesEl.FindElement("NewsLine/NewsLineText"); el != nil {
		it.LineText = el.Text()
	}
	if el := newsLinesEl.SelectElement("SubHeadLine"); el != nil {
		it.SubHeadline = el.Text()
	}
	if el := newsLinesEl.SelectElement("ByLine"); el != nil {
		it.Byline = el.Text()
	}
	if el := newsLinesEl.SelectElement("CopyrightLine"); el != nil {
		it.CopyrightLine = el.Text()
	}
	if el := newsLinesEl.SelectElement("SlugLine"); el != nil {
		it.Slugline = el.Text()
	}
	if el := newsLinesEl.SelectElement("KeywordLine"); el != nil {
		it.KeywordLine = el.Text()
	}
}

func (w *Walker) walkDescriptiveMetadata(deps *feed.Context, it *item.Item, descriptiveEl *etree.Element) {
	if descriptiveEl == nil {
		return
	}
	if el := descriptiveEl.SelectElement("Language"); el != nil {
		it.Language = el.SelectAttrValue("FormalName", "")
	}
	for _, el := range descriptiveEl.SelectElements("Genre") {
		if name := el.SelectAttrValue("FormalName", ""); name != "" {
			it.AddSubject(item.Subject{Name: name, QCode: name, Scheme: vocab.SchemeGenre})
		}
	}

	var subjectEls []*etree.Element
	subjectEls = append(subjectEls, descriptiveEl.FindElements("SubjectCode/SubjectDetail")...)
	subjectEls = append(subjectEls, descriptiveEl.FindElements("SubjectCode/SubjectMatter")...)
	subjectEls = append(subjectEls, descriptiveEl.FindElements("SubjectCode/Subject")...)
	it.AddSubject(formatSubjects(deps.Vocab, subjectEls)...)

	for _, el := range descriptiveEl.SelectElements("OfInterestTo") {
		if name := el.SelectAttrValue("FormalName", ""); name != "" {
			it.AddSubject(item.Subject{Name: name, QCode: name, Scheme: vocab.SchemeOfInterestTo})
		}
	}

	if el := descriptiveEl.SelectElement("DateLineDate"); el != nil {
		if t, err := extract.ParseWireTime(el.Text()); err == nil {
			if it.Dateline == nil {
				it.Dateline = &item.Dateline{}
			}
			it.Dateline.Date = t
		}
	}

	if locationEl := descriptiveEl.SelectElement("Location"); locationEl != nil {
		it.SetExtra("how_present", locationEl.SelectAttrValue("HowPresent", ""))
		for _, el := range locationEl.SelectElements("Property") {
			value := el.SelectAttrValue("Value", "")
			switch el.SelectAttrValue("FormalName", "") {
			case "Country":
				it.SetExtra("country", value)
				it.AddSubject(deps.Vocab.Country(value)...)
			case "City":
				it.SetExtra("city", value)
			case "CountryArea":
				it.SetExtra("country_area", value)
			}
		}
	}

	for _, el := range descriptiveEl.SelectElements("Property") {
		if el.SelectAttrValue("FormalName", "") == "Keyword" {
			it.Keywords = append(it.Keywords, el.SelectAttrValue("Value", ""))
		}
	}
}

// formatSubjects maps wire subject codes onto the IPTC vocabulary,
// dropping codes the vocabulary does not carry and duplicates within
// the document.
func formatSubjects(v *vocab.Store, subjectEls []*etree.Element) []item.Subject {
	var out []item.Subject
	seen := make(map[string]struct{})
	for _, el := range subjectEls {
		code := el.SelectAttrValue("FormalName", "")
		if code == "" || !v.HasSubjectCode(code) {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, item.Subject{
			Name:   v.SubjectName(code),
			QCode:  code,
			Scheme: vocab.SchemeIPTCSubjects,
		})
	}
	return out
}

func (w *Walker) walkContentItem(it *item.Item, contentEl *etree.Element) {
	if contentEl == nil {
		return
	}
	if el := contentEl.SelectElement("MediaType"); el != nil {
		it.Type = strings.ToLower(el.SelectAttrValue("FormalName", ""))
	}
	if el := contentEl.SelectElement("MimeType"); el != nil {
		it.Mimetype = el.SelectAttrValue("FormalName", "")
	}
	if el := contentEl.SelectElement("Format"); el != nil {
		it.Format = el.SelectAttrValue("FormalName", "")
	}

	if charEl := contentEl.SelectElement("Characteristics"); charEl != nil {
		setChar := func(key, value string) {
			if it.Characteristics == nil {
				it.Characteristics = make(map[string]string)
			}
			it.Characteristics[key] = value
		}
		if el := charEl.SelectElement("SizeInBytes"); el != nil {
			setChar("size_bytes", el.Text())
		}
		for _, el := range charEl.SelectElements("Property") {
			value := el.SelectAttrValue("Value", "")
			switch el.SelectAttrValue("FormalName", "") {
			case "Words":
				setChar("word_count", value)
			case "SizeInBytes":
				setChar("size_bytes", value)
			case "Creator":
				setChar("creator", value)
			case "Characters":
				setChar("characters", value)
			case "FormatVersion":
				setChar("format_version", value)
			}
		}
	}

	if el := contentEl.FindElement("DataContent/nitf/body/body.content"); el != nil {
		it.BodyHTML = innerXML(el)
	}
	if el := contentEl.FindElement("DataContent/nitf/head"); el != nil {
		it.HeaderContent = serializeElement(el)
	}
	if el := contentEl.FindElement("DataContent/nitf/body/body.head"); el != nil {
		it.BodyHead = serializeElement(el)
	}
}

func serializeElement(el *etree.Element) string {
	d := etree.NewDocument()
	d.AddChild(el.Copy())
	s, err := d.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

// innerXML serializes an element's children without the element's own
// tags, the shape body_html wants.
func innerXML(el *etree.Element) string {
	var sb strings.Builder
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.Element:
			sb.WriteString(serializeElement(c))
		case *etree.CharData:
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
