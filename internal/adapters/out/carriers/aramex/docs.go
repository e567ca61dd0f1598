// Package aramex integrates the Aramex rate calculator API as a
// ports.RateProvider: service code mapping, the live rate call with
// its typed failures, and the deterministic local estimate used when
// the live call is unavailable.
package aramex
