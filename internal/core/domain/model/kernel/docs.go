// Package kernel contains the shared primitives of the rating domain:
// the country lookup table with its normalization rules, geographic
// coordinates with great-circle distance, and money rounding.
package kernel
