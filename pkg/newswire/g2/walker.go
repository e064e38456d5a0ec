// Package g2 parses the NewsML-G2 news-item family. Unlike the 1.2
// wire, a G2 payload is a single newsItem whose metadata lives in
// itemMeta and contentMeta and whose content arrives either as inline
// XML or as preformatted inline text.
package g2

import (
	"errors"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
)

var errNotNewsItem = errors.New("document root is not a newsItem")

// Walker is the configurable G2 document walk. The zero value walks
// the standard layout; agency parsers set the hook fields.
type Walker struct {
	ParserName string

	// MapSubject turns one qualified subject code into a vocabulary
	// term. nil keeps the wire scheme prefix as the scheme.
	MapSubject func(deps *feed.Context, prefix, code, name string) (item.Subject, bool)

	// PostItem runs agency logic after the shared walk.
	PostItem func(deps *feed.Context, it *item.Item, root *etree.Element)
}

// IsNewsItem reports whether the payload is a G2 news item. Providers
// prefix the root tag, so only the suffix is checked.
func IsNewsItem(payload feed.Payload) bool {
	if payload.XML == nil {
		return false
	}
	root := payload.XML.Root()
	return root != nil && strings.HasSuffix(root.Tag, "newsItem")
}

// Parse walks a G2 document into one normalized item.
func (w *Walker) Parse(deps *feed.Context, doc *etree.Document) (item.Item, error) {
	root := doc.Root()
	if root == nil || !strings.HasSuffix(root.Tag, "newsItem") {
		return item.Item{}, ingesterr.Malformed(w.ParserName, errNotNewsItem)
	}

	it := item.Item{
		URI:     root.SelectAttrValue("guid", ""),
		Version: root.SelectAttrValue("version", "1"),
	}
	it.GUID = it.URI + ":" + it.Version

	if err := w.walkItemMeta(&it, root.SelectElement("itemMeta")); err != nil {
		return item.Item{}, err
	}
	w.walkContentMeta(deps, &it, root.SelectElement("contentMeta"))
	w.walkContentSet(&it, root.SelectElement("contentSet"))

	if w.PostItem != nil {
		w.PostItem(deps, &it, root)
	}
	it.DedupSubjects()
	return it, nil
}

func (w *Walker) walkItemMeta(it *item.Item, metaEl *etree.Element) error {
	if metaEl == nil {
		return nil
	}
	if el := metaEl.SelectElement("itemClass"); el != nil {
		_, it.Type = splitQCode(el.SelectAttrValue("qcode", ""))
	}
	if el := metaEl.SelectElement("firstCreated"); el != nil {
		t, err := extract.ParseG2Time(el.Text())
		if err != nil {
			return ingesterr.BadDate(w.ParserName, err)
		}
		it.Firstcreated = t
	}
	if el := metaEl.SelectElement("versionCreated"); el != nil {
		t, err := extract.ParseG2Time(el.Text())
		if err != nil {
			return ingesterr.BadDate(w.ParserName, err)
		}
		it.Versioncreated = t
	}
	if it.Firstcreated.IsZero() {
		it.Firstcreated = it.Versioncreated
	}
	if el := metaEl.SelectElement("firstPublished"); el != nil {
		if t, err := extract.ParseG2Time(el.Text()); err == nil {
			it.Firstpublished = t
		}
	}
	if el := metaEl.SelectElement("pubStatus"); el != nil {
		_, it.Pubstatus = splitQCode(el.SelectAttrValue("qcode", ""))
	}
	if el := metaEl.SelectElement("edNote"); el != nil {
		it.EdNote = strings.TrimSpace(el.Text())
	}
	return nil
}

func (w *Walker) walkContentMeta(deps *feed.Context, it *item.Item, metaEl *etree.Element) {
	if metaEl == nil {
		return
	}
	if el := metaEl.SelectElement("urgency"); el != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(el.Text())); err == nil {
			it.Urgency = n
		}
	}
	if el := metaEl.SelectElement("headline"); el != nil {
		it.Headline = strings.TrimSpace(el.Text())
	}
	if el := metaEl.SelectElement("slugline"); el != nil {
		it.Slugline = strings.TrimSpace(el.Text())
	}
	if el := metaEl.SelectElement("language"); el != nil {
		it.Language = el.SelectAttrValue("tag", "")
	}
	if el := metaEl.SelectElement("creditline"); el != nil {
		it.Creditline = strings.TrimSpace(el.Text())
	}
	if el := metaEl.SelectElement("infoSource"); el != nil {
		it.Source = el.SelectAttrValue("literal", "")
	}
	if el := metaEl.SelectElement("by"); el != nil {
		it.Byline = strings.TrimSpace(el.Text())
	}

	for _, el := range metaEl.SelectElements("description") {
		if strings.HasSuffix(el.SelectAttrValue("role", ""), "summary") {
			it.Abstract = strings.TrimSpace(el.Text())
		}
	}

	for _, el := range metaEl.SelectElements("keyword") {
		if text := strings.TrimSpace(el.Text()); text != "" {
			it.Keywords = append(it.Keywords, text)
		}
	}

	for _, el := range metaEl.SelectElements("subject") {
		prefix, code := splitQCode(el.SelectAttrValue("qcode", ""))
		if code == "" {
			continue
		}
		name := ""
		if nameEl := el.SelectElement("name"); nameEl != nil {
			name = strings.TrimSpace(nameEl.Text())
		}
		term := item.Subject{Name: name, QCode: code, Scheme: prefix}
		ok := true
		if w.MapSubject != nil {
			term, ok = w.MapSubject(deps, prefix, code, name)
		}
		if ok {
			it.AddSubject(term)
		}
	}

	for _, el := range metaEl.SelectElements("genre") {
		_, code := splitQCode(el.SelectAttrValue("qcode", ""))
		name := ""
		if nameEl := el.SelectElement("name"); nameEl != nil {
			name = strings.TrimSpace(nameEl.Text())
		}
		it.Genre = append(it.Genre, item.Genre{QCode: code, Name: name})
	}

	for _, el := range metaEl.SelectElements("contributor") {
		name := el.SelectAttrValue("literal", "")
		if nameEl := el.SelectElement("name"); nameEl != nil {
			name = strings.TrimSpace(nameEl.Text())
		}
		_, role := splitQCode(el.SelectAttrValue("role", ""))
		role = strings.ToUpper(role)
		it.Authors = append(it.Authors, item.Author{
			ID:       []string{name, role},
			Name:     role,
			Role:     role,
			SubLabel: name,
		})
	}
}

func (w *Walker) walkContentSet(it *item.Item, contentSetEl *etree.Element) {
	if contentSetEl == nil {
		return
	}
	if el := contentSetEl.SelectElement("inlineData"); el != nil {
		it.BodyHTML = extract.PreformattedBody(strings.TrimSpace(el.Text()))
		if wc := el.SelectAttrValue("wordcount", ""); wc != "" {
			if n, err := strconv.Atoi(wc); err == nil {
				it.WordCount = n
			}
		}
		return
	}
	if el := contentSetEl.SelectElement("inlineXML"); el != nil {
		it.BodyHTML = innerXML(el)
		if wc := el.SelectAttrValue("wordcount", ""); wc != "" {
			if n, err := strconv.Atoi(wc); err == nil {
				it.WordCount = n
			}
		}
	}
}

// splitQCode splits a "scheme:code" qualified code. Codes without a
// scheme prefix come back with an empty prefix.
func splitQCode(qcode string) (prefix, code string) {
	if i := strings.Index(qcode, ":"); i >= 0 {
		return qcode[:i], qcode[i+1:]
	}
	return "", qcode
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
