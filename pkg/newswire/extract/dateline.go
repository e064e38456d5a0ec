package extract

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/belga/newswire/pkg/newswire/item"
)

// CityDateline builds the dateline a city-only wire slug carries. The
// zone defaults to UTC because the wire never sends one.
func CityDateline(city string) *item.Dateline {
	if city == "" {
		return nil
	}
	return &item.Dateline{
		Located: &item.Located{
			City:     city,
			CityCode: city,
			Tz:       "UTC",
			Dateline: "city",
		},
	}
}

// NormalizeLanguage canonicalizes a provider language code to its
// lowercase BCP 47 base form. Unknown codes are lowercased as-is so
// downstream matching stays case-insensitive.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, conf := tag.Base()
	if conf == language.No {
		return strings.ToLower(code)
	}
	return base.String()
}
