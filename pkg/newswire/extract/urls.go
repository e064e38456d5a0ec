package extract

import "regexp"

// urlPattern is deliberately permissive: wire text routinely carries
// shortened links with punctuation that stricter patterns reject.
var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z0-9$-;\[\]?@_~]|%[0-9a-fA-F]{2})+`)

// ExtractURLs returns every http(s) URL in text, deduplicated while
// keeping first-occurrence order.
func ExtractURLs(text string) []string {
	return UniqueStrings(urlPattern.FindAllString(text, -1))
}

// UniqueStrings removes duplicates from in, preserving the order in
// which each value first appears.
func UniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
