// Package ingesterr is the error taxonomy shared by all feed parsers.
// Operator-visible failures carry a stable numeric code; everything
// else is classified by kind so the host can log and move on to the
// next payload.
package ingesterr

import "fmt"

// Kind classifies a parser failure.
type Kind string

const (
	KindAuth      Kind = "authentication"
	KindConfig    Kind = "configuration"
	KindRemote    Kind = "remote"
	KindMalformed Kind = "malformed"
	KindDate      Kind = "date"
	KindTimezone  Kind = "timezone"
)

// Stable operator-visible codes. These numbers appear in the host UI
// and must never be reused for a different failure.
const (
	CodeTwitterAuth        = 6100
	CodeTwitterNoScreens   = 6200
	CodeInvalidIframelyKey = 6300
)

var descriptions = map[int]string{
	CodeTwitterAuth:        "Twitter authentication failure",
	CodeTwitterNoScreens:   "No Twitter screen names specified",
	CodeInvalidIframelyKey: "Invalid iframely api key",
}

// Description returns the operator text for a numbered code, or the
// empty string for codes without one.
func Description(code int) string {
	return descriptions[code]
}

// Error is a typed ingest failure. Code is zero unless the failure has
// an operator-visible number.
type Error struct {
	Code     int
	Kind     Kind
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = descriptions[e.Code]
	}
	switch {
	case e.Code != 0 && e.Err != nil:
		return fmt.Sprintf("ingest error %d (%s): %s: %v", e.Code, e.Kind, msg, e.Err)
	case e.Code != 0:
		return fmt.Sprintf("ingest error %d (%s): %s", e.Code, e.Kind, msg)
	case e.Err != nil:
		return fmt.Sprintf("ingest error (%s): %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("ingest error (%s): %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// TwitterAuth reports invalid or missing twitter credentials (6100).
func TwitterAuth(provider string, err error) *Error {
	return &Error{Code: CodeTwitterAuth, Kind: KindAuth, Provider: provider, Err: err}
}

// TwitterNoScreenNames reports an empty screen-name list (6200).
func TwitterNoScreenNames(provider string) *Error {
	return &Error{Code: CodeTwitterNoScreens, Kind: KindConfig, Provider: provider}
}

// InvalidIframelyKey reports an iframely 403 (6300).
func InvalidIframelyKey(provider string, err error) *Error {
	return &Error{Code: CodeInvalidIframelyKey, Kind: KindRemote, Provider: provider, Err: err}
}

// Malformed reports a recognized but unparseable payload.
func Malformed(provider string, err error) *Error {
	return &Error{Kind: KindMalformed, Provider: provider, Message: "malformed payload", Err: err}
}

// BadDate reports an unparseable date or time value.
func BadDate(provider string, err error) *Error {
	return &Error{Kind: KindDate, Provider: provider, Message: "malformed date", Err: err}
}

// UnknownTimezone reports a zone name missing from the timezone database.
func UnknownTimezone(provider, zone string) *Error {
	return &Error{Kind: KindTimezone, Provider: provider, Message: fmt.Sprintf("unknown timezone %q", zone)}
}

// MissingConfig reports absent required provider configuration.
func MissingConfig(provider, field string) *Error {
	return &Error{Kind: KindConfig, Provider: provider, Message: fmt.Sprintf("missing config %q", field)}
}
