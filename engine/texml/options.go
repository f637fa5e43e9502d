package texml

import (
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/texml/core"
	"golang.org/x/text/unicode/norm"
)

// Configuration keys read by FromConfig.
const (
	ConfigNewlineHints = "texml.nlhints"   // bool, default true
	ConfigNormalize    = "texml.normalize" // NFC, NFD, NFKC, NFKD or empty
)

// Option configures a Converter.
type Option func(*Converter)

// NewlineHints switches support for the nl1/nl2 attributes of commands.
// With hints enabled, a command with nl1 set starts on a new line and a command
// with nl2 set is followed by a newline. Hints are enabled by default.
func NewlineHints(on bool) Option {
	return func(c *Converter) {
		c.nlhints = on
	}
}

// Normalize applies Unicode normalization form f to text payloads before they
// are escaped. Verbatim text is normalized, too.
func Normalize(f norm.Form) Option {
	return func(c *Converter) {
		c.normalize = true
		c.form = f
	}
}

// ParseForm returns the normalization form for one of the names NFC, NFD,
// NFKC or NFKD (case-insensitive). The empty string and "none" are valid and
// denote no normalization (ok == false).
func ParseForm(name string) (f norm.Form, ok bool, err error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "NONE":
		return norm.NFC, false, nil
	case "NFC":
		return norm.NFC, true, nil
	case "NFD":
		return norm.NFD, true, nil
	case "NFKC":
		return norm.NFKC, true, nil
	case "NFKD":
		return norm.NFKD, true, nil
	}
	return norm.NFC, false, core.Error(core.EARGUMENT, "unknown normalization form %q", name)
}

// FromConfig creates options from a schuko configuration, reading the keys
// ConfigNewlineHints and ConfigNormalize. Unset keys keep the defaults.
func FromConfig(conf schuko.Configuration) ([]Option, error) {
	var opts []Option
	if conf == nil {
		return opts, nil
	}
	if conf.IsSet(ConfigNewlineHints) {
		opts = append(opts, NewlineHints(conf.GetBool(ConfigNewlineHints)))
	}
	if conf.IsSet(ConfigNormalize) {
		f, ok, err := ParseForm(conf.GetString(ConfigNormalize))
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, Normalize(f))
		}
	}
	return opts, nil
}
