// Package rating holds the pricing value objects exchanged between the
// carrier clients and the rate aggregator: carrier service codes,
// raw carrier quotes, margin policies, and the caller-facing shipping
// options produced from them.
package rating
