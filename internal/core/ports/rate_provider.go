// Package ports defines the outbound contracts of the rating core:
// the carrier rate capability implemented by each integration and the
// persistence contract for orders.
package ports

import (
	"context"

	"shipquote/internal/core/domain/model/address"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/model/shipment"
)

// QuoteRequest carries everything one carrier needs to price a
// shipment. Origin and Destination must satisfy address.IsValid before
// the call. OriginPoint and DestinationPoint are optional coordinates
// from the geocoding collaborator; distance-rated carriers require
// both and fail the live call without them.
type QuoteRequest struct {
	Origin           address.Address
	Destination      address.Address
	OriginPoint      *kernel.GeoPoint
	DestinationPoint *kernel.GeoPoint
	Spec             shipment.Spec
	Service          rating.ServiceCode
}

// RateProvider is the capability every carrier integration implements.
// Adding a carrier means adding one implementation; the aggregator
// never branches on carrier identity.
//
// Implementations are stateless per call and must not mutate shared
// state; the only shared input is their configuration, read-only after
// construction.
type RateProvider interface {
	// ID returns the stable carrier identifier, e.g. "aramex".
	ID() string

	// DisplayName returns the human-readable carrier name.
	DisplayName() string

	// Currency returns the currency estimates are denominated in.
	Currency() string

	// MapService derives the carrier-specific service code for a
	// shipment and lane. Pure and deterministic.
	MapService(spec shipment.Spec, lane shipment.TradeLane) (rating.ServiceCode, error)

	// Quote performs one live rate call under the caller-supplied
	// context deadline. Failures are typed: NotConfiguredError,
	// InvalidAddressError, UpstreamTimeoutError, UpstreamRejectedError
	// or InvalidQuoteError.
	Quote(ctx context.Context, req QuoteRequest) (rating.CarrierQuote, error)

	// Estimate computes the deterministic local fallback price for a
	// shipment. Pure and stateless; used only when the live call is
	// unavailable or failed.
	Estimate(spec shipment.Spec) float64
}
