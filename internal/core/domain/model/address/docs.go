// Package address decomposes the free-text address strings produced by
// the geocoding collaborator into the structured fields carrier rate
// APIs require. Parsing is best-effort: unresolvable fields degrade to
// documented fallbacks with a diagnostic warning instead of guessing
// silently, and IsValid gates whether the result may be used in a
// carrier call.
package address
