package address

import (
	"strings"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/logx"
)

// Parser turns raw geocoder output into an Address. It is stateless
// apart from the diagnostics channel, so a single instance is shared
// across requests.
type Parser struct {
	log logx.Logger
}

// NewParser creates a Parser reporting low-confidence parses to log.
// A nil log disables diagnostics.
func NewParser(log logx.Logger) *Parser {
	if log == nil {
		log = logx.NewNop()
	}
	return &Parser{log: log}
}

// Parse decomposes a free-text address into structured fields.
//
// The country is resolved by scanning every comma-separated segment
// against the country table with whole-word matching, first hit wins.
// When no segment matches, a two-letter last segment is accepted as a
// country code candidate; anything else leaves the country explicitly
// empty with a diagnostic warning instead of a guessed default.
//
// The city is the second-to-last segment, shifted one segment earlier
// when that slot holds a postal code or a country token. A city that
// cannot be determined falls back to the first segment, so Line1 and
// City are never empty on success.
//
// Empty or whitespace-only input fails with InvalidAddressError.
func (p *Parser) Parse(raw string) (Address, error) {
	if strings.TrimSpace(raw) == "" {
		return Address{}, errs.NewInvalidAddressError("raw", "address text is empty or whitespace-only")
	}

	segments := splitSegments(raw)
	if len(segments) == 0 {
		return Address{}, errs.NewInvalidAddressError("raw", "address text contains no usable segments")
	}

	countryCode, countryIdx, countryGuessed := p.resolveCountry(raw, segments)

	var postalCode string
	cityIdx := len(segments) - 2
	if cityIdx >= 0 && isNumeric(segments[cityIdx]) {
		postalCode = segments[cityIdx]
		cityIdx--
	}
	if cityIdx >= 0 && kernel.IsCountryToken(segments[cityIdx]) {
		// Guards two-segment "Street, Country" addresses against
		// misreading the country as the city.
		cityIdx--
	}

	var city string
	if cityIdx >= 0 {
		city = segments[cityIdx]
	}

	if postalCode == "" {
		for _, seg := range segments {
			if isNumeric(seg) && len(seg) >= 5 {
				postalCode = seg
				break
			}
		}
	}

	line1 := segments[0]

	var line2 string
	if len(segments) >= 2 {
		candidate := segments[1]
		if candidate != city && candidate != postalCode && countryIdx != 1 && !kernel.IsCountryToken(candidate) {
			line2 = candidate
		}
	}

	if city == "" {
		city = line1
		p.log.Warnf("address parser: city not determined, falling back to first segment: %q", raw)
	}

	return Address{
		Line1:          line1,
		Line2:          line2,
		City:           city,
		CountryCode:    countryCode,
		PostalCode:     postalCode,
		CountryGuessed: countryGuessed,
	}, nil
}

// resolveCountry returns the resolved country code, the index of the
// segment it came from ("", -1 when unknown), and whether the code is
// a low-confidence fallback rather than a table hit.
func (p *Parser) resolveCountry(raw string, segments []string) (string, int, bool) {
	for i, seg := range segments {
		if code, ok := kernel.MatchCountrySegment(seg); ok {
			return code, i, false
		}
	}

	if len(segments) >= 2 {
		last := segments[len(segments)-1]
		if len(last) == 2 && isLetters(last) {
			p.log.Debugf("address parser: treating last segment %q as country code candidate: %q", last, raw)
			return strings.ToUpper(last), len(segments) - 1, true
		}
	}

	p.log.Warnf("address parser: country not recognized, leaving code empty: %q", raw)
	return "", -1, false
}

func splitSegments(raw string) []string {
	parts := strings.Split(raw, ",")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		lower := r | 0x20
		if lower < 'a' || lower > 'z' {
			return false
		}
	}
	return true
}
