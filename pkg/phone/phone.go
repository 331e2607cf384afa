// Package phone turns free-form contact numbers into dial and messaging links.
//
// Stored numbers are never rewritten; normalisation happens only when a link
// is rendered.
package phone

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ttacon/libphonenumber"

	dErrors "coldcheck/pkg/domain-errors"
)

const DefaultRegion = "MY"

// Formatter normalises numbers against one home region.
type Formatter struct {
	region      string
	countryCode string
}

// Links are the renderable forms of one contact number.
type Links struct {
	Tel      string `json:"tel"`
	WhatsApp string `json:"whatsapp"`
	E164     string `json:"e164,omitempty"`
	Valid    bool   `json:"valid"`
}

// New returns a Formatter for region (ISO 3166 alpha-2, e.g. "MY").
func New(region string) (*Formatter, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	cc := libphonenumber.GetCountryCodeForRegion(region)
	if cc == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown phone region %q", region))
	}
	return &Formatter{region: region, countryCode: strconv.Itoa(cc)}, nil
}

// Region reports the configured home region.
func (f *Formatter) Region() string { return f.region }

// Normalize applies the home-region prefix rules without validating:
//   - separators are stripped
//   - "+<cc>..." is kept
//   - a leading trunk "0" becomes "+<cc>"
//   - "+<first cc digit>..." missing the rest of the code is repaired
//   - anything else gets "+<cc>" prepended
func (f *Formatter) Normalize(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' || r == '.' {
			return -1
		}
		return r
	}, raw)

	prefix := "+" + f.countryCode
	switch {
	case strings.HasPrefix(cleaned, prefix):
		return cleaned
	case strings.HasPrefix(cleaned, "0"):
		return prefix + cleaned[1:]
	case len(f.countryCode) > 1 && strings.HasPrefix(cleaned, "+"+f.countryCode[:1]):
		return prefix + cleaned[2:]
	default:
		return prefix + cleaned
	}
}

// E164 normalises raw and returns it in E.164 form when libphonenumber
// accepts it as a valid number.
func (f *Formatter) E164(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", dErrors.New(dErrors.CodeValidation, "phone number is required")
	}
	num, err := libphonenumber.Parse(f.Normalize(raw), f.region)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeValidation, "phone number cannot be parsed")
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", dErrors.New(dErrors.CodeValidation, "phone number is not valid")
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// Links renders the tel: link from the number as entered and the WhatsApp
// link from its normalised form. Valid reports whether libphonenumber accepted
// the number; links are still produced when it did not.
func (f *Formatter) Links(raw string) Links {
	links := Links{Tel: "tel:" + strings.TrimSpace(raw)}
	normalized := f.Normalize(raw)
	if e164, err := f.E164(raw); err == nil {
		normalized = e164
		links.E164 = e164
		links.Valid = true
	}
	links.WhatsApp = "https://wa.me/" + strings.TrimPrefix(normalized, "+")
	return links
}
