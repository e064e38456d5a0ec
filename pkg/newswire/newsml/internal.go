package newsml

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/belga/newswire/pkg/newswire/extract"
	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/ingesterr"
	"github.com/belga/newswire/pkg/newswire/item"
	"github.com/belga/newswire/pkg/newswire/vocab"
)

// errSkipComponent aborts one second-level component without failing
// the rest of the document.
var errSkipComponent = errors.New("unsupported component")

// internalWalker parses the belga.be in-house NewsML 1.2 dialect. It
// differs from the agency layout in two ways: every second-level
// NewsComponent is a separate item whose guid is a digest of the
// component, and the body, title and lead live in third-level
// components selected by Role.
type internalWalker struct {
	parserName string

	// supportedRoles is the second-level Role whitelist. Components
	// with any other role are skipped.
	supportedRoles map[string]bool

	// combineServices folds the NewsService/NewsProduct pair into a
	// single services-products term instead of two separate terms.
	combineServices bool

	// storeAttachments resolves sidecar components through the host
	// attachment service.
	storeAttachments bool
}

func (w *internalWalker) parse(deps *feed.Context, doc *etree.Document, provider feed.Provider) ([]item.Item, error) {
	root := doc.Root()
	if root == nil || root.Tag != "NewsML" {
		return nil, ingesterr.Malformed(w.parserName, errNotNewsML)
	}

	seed := item.Item{Type: item.TypeText}
	walkEnvelope(&seed, root.SelectElement("NewsEnvelope"))

	items := make([]item.Item, 0)
	for _, newsItemEl := range root.SelectElements("NewsItem") {
		perItem := seed
		w.walkIdentification(&perItem, newsItemEl.SelectElement("Identification"))
		if err := w.walkManagement(&perItem, newsItemEl.SelectElement("NewsManagement")); err != nil {
			deps.Printf("%s: skipping news item: %v", w.parserName, err)
			continue
		}

		firstLevel := newsItemEl.SelectElement("NewsComponent")
		if firstLevel == nil {
			continue
		}
		for _, el := range firstLevel.FindElements("DescriptiveMetadata/Genre") {
			if name := el.SelectAttrValue("FormalName", ""); name != "" {
				perItem.AddSubject(item.Subject{Name: name, QCode: name, Scheme: vocab.SchemeGenre})
			}
		}

		// Each second-level component is its own story. The struct copy
		// shares the seed's slice backing arrays, so those are cloned
		// before the component appends to them.
		for _, componentEl := range firstLevel.SelectElements("NewsComponent") {
			it := perItem
			it.Subject = append([]item.Subject(nil), perItem.Subject...)
			it.Keywords = append([]string(nil), perItem.Keywords...)
			it.Authors = append([]item.Author(nil), perItem.Authors...)
			it.GUID = componentDigest(componentEl)
			if err := w.walkComponent(deps, &it, componentEl, provider); err != nil {
				deps.Printf("%s: skipping component %q: %v", w.parserName, it.GUID, err)
				continue
			}
			it.DedupSubjects()
			items = append(items, it)
		}
	}
	return items, nil
}

// componentDigest derives the item guid from the serialized component,
// so re-ingesting the same payload yields the same guid.
func componentDigest(el *etree.Element) string {
	sum := md5.Sum([]byte(serializeElement(el)))
	return hex.EncodeToString(sum[:])
}

func (w *internalWalker) walkIdentification(it *item.Item, identEl *etree.Element) {
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
			it.ItemID = el.Text()
		}
		if el := newsIdentEl.SelectElement("RevisionId"); el != nil {
			it.Version = el.Text()
		}
		if el := newsIdentEl.SelectElement("PublicIdentifier"); el != nil {
			it.PublicIdentifier = el.Text()
		}
	}
	if el := identEl.SelectElement("NameLabel"); el != nil && el.Text() != "" {
		it.AddSubject(item.Subject{Name: el.Text(), QCode: el.Text(), Scheme: vocab.SchemeLabel})
	}
}

func (w *internalWalker) walkManagement(it *item.Item, manageEl *etree.Element) error {
	if manageEl == nil {
		return nil
	}
	if el := manageEl.SelectElement("NewsItemType"); el != nil {
		if name := el.SelectAttrValue("FormalName", ""); name != "" {
			it.AddSubject(item.Subject{Name: name, QCode: name, Scheme: vocab.SchemeNewsItemTypes})
		}
	}
	if el := manageEl.SelectElement("FirstCreated"); el != nil {
		t, err := extract.ParseWireTime(el.Text())
		if err != nil {
			return err
		}
		it.Firstcreated = t.UTC()
	}
	if el := manageEl.SelectElement("ThisRevisionCreated"); el != nil {
		t, err := extract.ParseWireTime(el.Text())
		if err != nil {
			return err
		}
		it.Versioncreated = t.UTC()
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

func (w *internalWalker) walkComponent(deps *feed.Context, it *item.Item, componentEl *etree.Element, provider feed.Provider) error {
	roleEl := componentEl.SelectElement("Role")
	if roleEl == nil {
		return errSkipComponent
	}
	role := roleEl.SelectAttrValue("FormalName", "")
	if !w.supportedRoles[strings.ToUpper(role)] {
		return fmt.Errorf("%w: role %q", errSkipComponent, role)
	}
	it.Role = role

	it.Language = componentEl.SelectAttrValue("xml:lang", "")

	if newsLinesEl := componentEl.SelectElement("NewsLines"); newsLinesEl != nil {
		if el := newsLinesEl.SelectElement("HeadLine"); el != nil {
			it.Headline = el.Text()
		}
		if el := newsLinesEl.SelectElement("CreditLine"); el != nil {
			it.Byline = el.Text()
		}
		if el := newsLinesEl.SelectElement("CopyrightLine"); el != nil {
			it.Copyrightholder = el.Text()
		}
		if el := newsLinesEl.FindElement("NewsLine/NewsLineType"); el != nil {
			it.LineType = el.SelectAttrValue("FormalName", "")
		}
		if el := newsLinesEl.SelectElement("KeywordLine"); el != nil {
			it.Keywords = strings.Fields(el.Text())
		}
	}

	if adminEl := componentEl.SelectElement("AdministrativeMetadata"); adminEl != nil {
		if el := adminEl.FindElement("Provider/Party"); el != nil {
			it.SetAdministrative("provider", el.SelectAttrValue("FormalName", ""))
		}
		if el := adminEl.FindElement("Source/Party"); el != nil {
			it.Source = el.SelectAttrValue("FormalName", "")
		}
		if el := adminEl.FindElement("Creator/Party"); el != nil {
			name := el.SelectAttrValue("FormalName", "")
			if name != "" {
				it.Authors = append(it.Authors, item.Author{
					Name: name,
					Role: el.SelectAttrValue("Topic", ""),
				})
			}
		}
		for _, el := range adminEl.SelectElements("Property") {
			if el.SelectAttrValue("FormalName", "") == "ForeignId" {
				it.SetAdministrative("foreign_id", el.SelectAttrValue("Value", ""))
			}
		}
	}

	w.walkDescriptive(it, componentEl.SelectElement("DescriptiveMetadata"))

	if err := w.walkThirdLevel(it, componentEl); err != nil {
		return err
	}
	if it.BodyHTML == "" {
		it.BodyHTML = it.Headline
	}

	if w.storeAttachments {
		if err := w.collectAttachments(deps, it, componentEl, provider); err != nil {
			return err
		}
	}
	return nil
}

func (w *internalWalker) walkDescriptive(it *item.Item, descriptiveEl *etree.Element) {
	if descriptiveEl == nil {
		return
	}
	var service, product string
	if el := descriptiveEl.SelectElement("NewsService"); el != nil {
		service = el.SelectAttrValue("FormalName", "")
	}
	if el := descriptiveEl.SelectElement("NewsProduct"); el != nil {
		product = el.SelectAttrValue("FormalName", "")
	}
	if w.combineServices {
		if service != "" && product != "" {
			combined := service + "/" + product
			it.AddSubject(item.Subject{
				Name:   combined,
				QCode:  combined,
				Parent: service,
				Scheme: vocab.SchemeServicesProducts,
			})
		}
	} else {
		if service != "" {
			it.AddSubject(item.Subject{Name: service, QCode: service, Scheme: vocab.SchemeNewsServices})
		}
		if product != "" {
			it.AddSubject(item.Subject{Name: product, QCode: product, Scheme: vocab.SchemeNewsProducts})
		}
	}

	if locationEl := descriptiveEl.SelectElement("Location"); locationEl != nil {
		for _, el := range locationEl.SelectElements("Property") {
			value := el.SelectAttrValue("Value", "")
			switch el.SelectAttrValue("FormalName", "") {
			case "Country":
				it.SetExtra("country", value)
			case "City":
				it.SetExtra("city", value)
			}
		}
	}
}

// walkThirdLevel fills body, headline and abstract from the role-tagged
// inner components.
func (w *internalWalker) walkThirdLevel(it *item.Item, componentEl *etree.Element) error {
	targets := []struct {
		role string
		set  func(string)
	}{
		{"Body", func(s string) { it.BodyHTML = extract.PlainToHTML(s) }},
		{"Title", func(s string) { it.Headline = s }},
		{"Lead", func(s string) { it.Abstract = s }},
	}
	for _, target := range targets {
		for _, innerEl := range componentEl.SelectElements("NewsComponent") {
			roleEl := innerEl.SelectElement("Role")
			if roleEl == nil || roleEl.SelectAttrValue("FormalName", "") != target.role {
				continue
			}
			dataEl := innerEl.FindElement("ContentItem/DataContent")
			formatEl := innerEl.FindElement("ContentItem/Format")
			if dataEl == nil || formatEl == nil {
				return fmt.Errorf("%w: %s component without content", errSkipComponent, target.role)
			}
			if text := strings.TrimSpace(dataEl.Text()); text != "" {
				target.set(text)
			}
			break
		}
	}
	return nil
}

// collectAttachments stores sidecar components through the host
// attachment service and stamps the resulting count into ednote.
func (w *internalWalker) collectAttachments(deps *feed.Context, it *item.Item, componentEl *etree.Element, provider feed.Provider) error {
	for _, innerEl := range componentEl.SelectElements("NewsComponent") {
		roleEl := innerEl.SelectElement("Role")
		if roleEl == nil {
			continue
		}
		switch roleEl.SelectAttrValue("FormalName", "") {
		case "Body", "Title", "Lead":
			continue
		}
		contentEl := innerEl.SelectElement("ContentItem")
		if contentEl == nil {
			continue
		}
		href := contentEl.SelectAttrValue("Href", "")
		if href == "" {
			continue
		}
		if deps.Attachments == nil || deps.Open == nil {
			return ingesterr.MissingConfig(w.parserName, "attachments")
		}
		f, err := deps.Open(filepath.Join(provider.Config.Path, href))
		if err != nil {
			return fmt.Errorf("open attachment %q: %w", href, err)
		}
		id, err := deps.Attachments.Store(href, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("store attachment %q: %w", href, err)
		}
		it.Attachments = append(it.Attachments, item.Attachment{Attachment: id})
	}
	if n := len(it.Attachments); n > 0 {
		it.EdNote = fmt.Sprintf("The story has %d attachment(s)", n)
	}
	return nil
}
