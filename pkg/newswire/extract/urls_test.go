package extract

import (
	"reflect"
	"testing"
)

func TestExtractURLsFindsShortLinks(t *testing.T) {
	text := "Story here https://t.co/KBxMrf1zGk and again https://t.co/KBxMrf1zGk plus http://example.com/a%20b."
	got := ExtractURLs(text)
	want := []string{"https://t.co/KBxMrf1zGk", "http://example.com/a%20b."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractURLsNone(t *testing.T) {
	if got := ExtractURLs("no links at all"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestUniqueStringsKeepsOrder(t *testing.T) {
	got := UniqueStrings([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
