package ingesterr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNumberedErrors(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
		kind Kind
		text string
	}{
		{TwitterAuth("twitter", errors.New("bad token")), CodeTwitterAuth, KindAuth, "6100"},
		{TwitterNoScreenNames("twitter"), CodeTwitterNoScreens, KindConfig, "6200"},
		{InvalidIframelyKey("twitter_belga", errors.New("403")), CodeInvalidIframelyKey, KindRemote, "6300"},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.code || tc.err.Kind != tc.kind {
			t.Errorf("%v: code/kind = %d/%s", tc.err, tc.err.Code, tc.err.Kind)
		}
		if !strings.Contains(tc.err.Error(), tc.text) {
			t.Errorf("Error() = %q, missing %s", tc.err.Error(), tc.text)
		}
		if !strings.Contains(tc.err.Error(), Description(tc.code)) {
			t.Errorf("Error() = %q, missing description", tc.err.Error())
		}
	}
}

func TestDescription(t *testing.T) {
	if Description(CodeInvalidIframelyKey) != "Invalid iframely api key" {
		t.Errorf("Description = %q", Description(CodeInvalidIframelyKey))
	}
	if Description(1234) != "" {
		t.Error("unknown code should have no description")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := fmt.Errorf("context: %w", Malformed("tass", cause))

	var ingErr *Error
	if !errors.As(wrapped, &ingErr) || ingErr.Kind != KindMalformed {
		t.Fatalf("errors.As failed on %v", wrapped)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestKindOnlyErrors(t *testing.T) {
	if err := UnknownTimezone("sheet", "Europe/Bruss"); err.Code != 0 ||
		!strings.Contains(err.Error(), `unknown timezone "Europe/Bruss"`) {
		t.Errorf("UnknownTimezone = %v", err)
	}
	if err := MissingConfig("twitter_belga", "iframely_key"); err.Kind != KindConfig ||
		!strings.Contains(err.Error(), "iframely_key") {
		t.Errorf("MissingConfig = %v", err)
	}
	if err := BadDate("stt", errors.New("bad")); err.Kind != KindDate {
		t.Errorf("BadDate = %v", err)
	}
}
