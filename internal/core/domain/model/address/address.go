package address

import "regexp"

var isoCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Address is a parsed, carrier-facing address. CountryCode is either a
// two-uppercase-letter code or empty, meaning explicitly unknown; Line1
// and City are never empty on a parser-produced value. CountryGuessed
// marks a country code that came from the two-letter last-segment
// fallback rather than the country table, so callers can disclose the
// reduced confidence.
type Address struct {
	Line1          string
	Line2          string
	City           string
	CountryCode    string
	PostalCode     string
	StateCode      string
	CountryGuessed bool
}

// IsValid reports whether the address can be sent to a carrier:
// non-empty street line, non-empty city, and a syntactically valid
// two-letter country code. Callers must check this before any carrier
// call; a low-confidence fallback country code that does not satisfy
// the pattern fails here rather than reaching a carrier.
func (a Address) IsValid() bool {
	return a.Line1 != "" && a.City != "" && isoCodePattern.MatchString(a.CountryCode)
}
