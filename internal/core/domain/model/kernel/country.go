package kernel

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinCountryNames maps diacritic-folded, lowercased country names and
// their common aliases to ISO-3166 alpha-2 codes. Lookup keys must
// already be folded with foldLatin.
var latinCountryNames = map[string]string{
	"saudi arabia":                "SA",
	"kingdom of saudi arabia":     "SA",
	"ksa":                         "SA",
	"united arab emirates":        "AE",
	"uae":                         "AE",
	"emirates":                    "AE",
	"kuwait":                      "KW",
	"bahrain":                     "BH",
	"qatar":                       "QA",
	"oman":                        "OM",
	"yemen":                       "YE",
	"jordan":                      "JO",
	"lebanon":                     "LB",
	"iraq":                        "IQ",
	"syria":                       "SY",
	"egypt":                       "EG",
	"sudan":                       "SD",
	"south sudan":                 "SS",
	"morocco":                     "MA",
	"algeria":                     "DZ",
	"tunisia":                     "TN",
	"libya":                       "LY",
	"turkey":                      "TR",
	"turkiye":                     "TR",
	"iran":                        "IR",
	"israel":                      "IL",
	"palestine":                   "PS",
	"india":                       "IN",
	"pakistan":                    "PK",
	"bangladesh":                  "BD",
	"sri lanka":                   "LK",
	"nepal":                       "NP",
	"philippines":                 "PH",
	"indonesia":                   "ID",
	"malaysia":                    "MY",
	"singapore":                   "SG",
	"thailand":                    "TH",
	"vietnam":                     "VN",
	"china":                       "CN",
	"japan":                       "JP",
	"south korea":                 "KR",
	"korea":                       "KR",
	"united states":               "US",
	"united states of america":    "US",
	"usa":                         "US",
	"canada":                      "CA",
	"mexico":                      "MX",
	"brazil":                      "BR",
	"argentina":                   "AR",
	"united kingdom":              "GB",
	"great britain":               "GB",
	"england":                     "GB",
	"ireland":                     "IE",
	"france":                      "FR",
	"germany":                     "DE",
	"spain":                       "ES",
	"espana":                      "ES",
	"portugal":                    "PT",
	"italy":                       "IT",
	"italia":                      "IT",
	"netherlands":                 "NL",
	"belgium":                     "BE",
	"switzerland":                 "CH",
	"austria":                     "AT",
	"sweden":                      "SE",
	"norway":                      "NO",
	"denmark":                     "DK",
	"finland":                     "FI",
	"poland":                      "PL",
	"czech republic":              "CZ",
	"greece":                      "GR",
	"romania":                     "RO",
	"russia":                      "RU",
	"ukraine":                     "UA",
	"niger":                       "NE",
	"nigeria":                     "NG",
	"kenya":                       "KE",
	"ethiopia":                    "ET",
	"south africa":                "ZA",
	"australia":                   "AU",
	"new zealand":                 "NZ",
}

// arabicCountryNames maps non-Latin aliases to ISO codes. These are
// matched by exact string equality; case folding is not meaningful here.
var arabicCountryNames = map[string]string{
	"السعودية":                  "SA",
	"المملكة العربية السعودية":  "SA",
	"الإمارات":                  "AE",
	"الإمارات العربية المتحدة":  "AE",
	"الكويت":                    "KW",
	"البحرين":                   "BH",
	"قطر":                       "QA",
	"عمان":                      "OM",
	"سلطنة عمان":                "OM",
	"اليمن":                     "YE",
	"الأردن":                    "JO",
	"لبنان":                     "LB",
	"العراق":                    "IQ",
	"سوريا":                     "SY",
	"مصر":                       "EG",
	"السودان":                   "SD",
	"المغرب":                    "MA",
	"الجزائر":                   "DZ",
	"تونس":                      "TN",
	"ليبيا":                     "LY",
	"تركيا":                     "TR",
	"فلسطين":                    "PS",
}

// knownCodes is the set of ISO codes the table can produce. Built once
// from both name tables.
var knownCodes = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, code := range latinCountryNames {
		set[code] = struct{}{}
	}
	for _, code := range arabicCountryNames {
		set[code] = struct{}{}
	}
	return set
}()

// countryEntry pairs a lookup name with its code, pre-sorted so that
// longer names win before their substrings (e.g. "south sudan" before
// "sudan") during whole-word scanning.
type countryEntry struct {
	name string
	code string
}

var sortedCountryEntries = func() []countryEntry {
	entries := make([]countryEntry, 0, len(latinCountryNames)+len(arabicCountryNames))
	for name, code := range latinCountryNames {
		entries = append(entries, countryEntry{name: name, code: code})
	}
	for name, code := range arabicCountryNames {
		entries = append(entries, countryEntry{name: name, code: code})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].name) != len(entries[j].name) {
			return len(entries[i].name) > len(entries[j].name)
		}
		return entries[i].name < entries[j].name
	})
	return entries
}()

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldLatin lowercases text and strips combining diacritical marks, so
// that "España" and "espana" hit the same table entry.
func foldLatin(s string) string {
	folded, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// NormalizeCountry resolves free-text country input to an ISO-3166
// alpha-2 code. Latin entries match case-insensitively and tolerate
// diacritics; non-Latin entries match by exact equality. Already-valid
// codes pass through unchanged, so the function is idempotent over its
// own output.
//
// When nothing matches, the first two characters of the uppercased
// input are returned as a last-resort code. That result is low
// confidence by construction: callers must not treat it as
// authoritative without the two-uppercase-letter validity check on the
// parsed address.
func NormalizeCountry(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	if code, ok := arabicCountryNames[trimmed]; ok {
		return code
	}

	folded := foldLatin(trimmed)
	if code, ok := latinCountryNames[folded]; ok {
		return code
	}

	if len(folded) == 2 && isASCIILetters(folded) {
		if code := strings.ToUpper(folded); IsKnownCountryCode(code) {
			return code
		}
	}

	upper := []rune(strings.ToUpper(trimmed))
	if len(upper) < 2 {
		return string(upper)
	}
	return string(upper[:2])
}

// IsKnownCountryCode reports whether code is an ISO code the country
// table can produce.
func IsKnownCountryCode(code string) bool {
	_, ok := knownCodes[code]
	return ok
}

// MatchCountrySegment scans one address segment for a known country
// name using whole-word matching: the name must appear bounded by
// non-letter runes (or the segment edges), never as part of a longer
// word. Longer names are tried first so a country whose name contains
// another's does not lose the match.
func MatchCountrySegment(segment string) (string, bool) {
	trimmed := strings.TrimSpace(segment)
	if trimmed == "" {
		return "", false
	}

	folded := foldLatin(trimmed)
	for _, entry := range sortedCountryEntries {
		if containsWholeWord(folded, entry.name) || containsWholeWord(trimmed, entry.name) {
			return entry.code, true
		}
	}

	return "", false
}

// IsCountryToken reports whether a segment is a recognized country
// name or a known two-letter country code. The parser uses this to
// keep country segments out of the city and line2 slots.
func IsCountryToken(segment string) bool {
	if _, ok := MatchCountrySegment(segment); ok {
		return true
	}

	trimmed := strings.TrimSpace(segment)
	return len(trimmed) == 2 && isASCIILetters(strings.ToLower(trimmed)) &&
		IsKnownCountryCode(strings.ToUpper(trimmed))
}

func isASCIILetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(s) > 0
}

// containsWholeWord reports whether needle appears in haystack bounded
// by non-letter runes on both sides.
func containsWholeWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}

	offset := 0
	for {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return false
		}

		start := offset + i
		end := start + len(needle)

		startOK := start == 0
		if !startOK {
			r, _ := utf8.DecodeLastRuneInString(haystack[:start])
			startOK = !unicode.IsLetter(r)
		}

		endOK := end == len(haystack)
		if !endOK {
			r, _ := utf8.DecodeRuneInString(haystack[end:])
			endOK = !unicode.IsLetter(r)
		}

		if startOK && endOK {
			return true
		}

		offset = start + 1
	}
}
