// Package services contains the domain services of the rating core.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"shipquote/internal/core/domain/model/address"
	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/model/shipment"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/logx"
)

const (
	// DefaultCarrierTimeout bounds one live carrier call when the
	// binding does not override it.
	DefaultCarrierTimeout = 30 * time.Second

	// aggregateSlack is added on top of the largest per-carrier
	// timeout to form the outer deadline of the whole request.
	aggregateSlack = 5 * time.Second
)

// CarrierBinding attaches the per-carrier configuration to a provider:
// the enabled flag, the margin policy, and the call timeout. Bindings
// are read-only after construction and shared safely across requests.
type CarrierBinding struct {
	Provider ports.RateProvider
	Enabled  bool
	Margin   rating.MarginPolicy
	Timeout  time.Duration
}

func (b CarrierBinding) timeout() time.Duration {
	if b.Timeout > 0 {
		return b.Timeout
	}
	return DefaultCarrierTimeout
}

// CarrierError records one carrier's failure for diagnostics. It never
// surfaces as a request failure while at least one option exists.
type CarrierError struct {
	CarrierID string
	Err       error
}

// Request is one aggregate quote request: the raw geocoded address
// strings, optional endpoint coordinates, the shipment spec, and an
// optional carrier filter (empty means all bound carriers).
type Request struct {
	OriginRaw        string
	DestinationRaw   string
	OriginPoint      *kernel.GeoPoint
	DestinationPoint *kernel.GeoPoint
	Spec             shipment.Spec
	CarrierIDs       []string
}

// Result is the outcome of one aggregate quote request. Options holds
// exactly one entry per dispatched carrier, in binding order; Errors
// holds the per-carrier failures that were converted into estimates.
// AllEstimated advises the caller that no live quote succeeded.
type Result struct {
	Options      []rating.ShippingOption
	Errors       []CarrierError
	AllEstimated bool
}

// RateAggregator orchestrates the quote flow: address parsing and
// validation, lane derivation, concurrent fan-out to the carrier
// providers, margin application, and fallback estimation.
//
// Failure domains are isolated per carrier: one carrier's timeout or
// rejection converts into an estimated option plus a diagnostic entry
// and never aborts another carrier's attempt.
type RateAggregator struct {
	parser   *address.Parser
	bindings []CarrierBinding
	log      logx.Logger
}

// NewRateAggregator creates a RateAggregator over the given carrier
// bindings. A nil log disables diagnostics.
func NewRateAggregator(parser *address.Parser, bindings []CarrierBinding, log logx.Logger) *RateAggregator {
	if log == nil {
		log = logx.NewNop()
	}
	return &RateAggregator{parser: parser, bindings: bindings, log: log}
}

// AggregateQuotes produces one shipping option per carrier for a
// shipment between two raw addresses.
//
// The whole request fails only in two cases: an unusable address on
// either side (InvalidAddressError naming the side, before any carrier
// is called) or no enabled carrier at all (NoCarriersEnabledError).
// Option ordering follows binding order and is stable across repeated
// calls with identical input.
func (a *RateAggregator) AggregateQuotes(ctx context.Context, req Request) (Result, error) {
	origin, err := a.parseSide("origin", req.OriginRaw)
	if err != nil {
		return Result{}, err
	}

	destination, err := a.parseSide("destination", req.DestinationRaw)
	if err != nil {
		return Result{}, err
	}

	lane := shipment.LaneBetween(origin.CountryCode, destination.CountryCode)

	// Providers and estimates classify the lane through the spec, so
	// the parsed codes are authoritative over whatever the caller set.
	spec := req.Spec
	spec.OriginCountry = origin.CountryCode
	spec.DestinationCountry = destination.CountryCode

	candidates, unknown := a.selectBindings(req.CarrierIDs)
	if !anyEnabled(a.bindings) || len(candidates) == 0 {
		return Result{}, errs.NewNoCarriersEnabledError(req.CarrierIDs)
	}

	outerCtx, cancel := context.WithTimeout(ctx, maxTimeout(candidates)+aggregateSlack)
	defer cancel()

	outcomes := make([]carrierOutcome, len(candidates))
	var wg sync.WaitGroup
	for i, binding := range candidates {
		wg.Add(1)
		go func(i int, binding CarrierBinding) {
			defer wg.Done()
			outcomes[i] = a.quoteOne(outerCtx, binding, origin, destination, spec, lane, req)
		}(i, binding)
	}
	wg.Wait()

	result := Result{}
	for _, id := range unknown {
		result.Errors = append(result.Errors, CarrierError{
			CarrierID: id,
			Err:       errs.NewObjectNotFoundError("carrier", id),
		})
	}
	for _, outcome := range outcomes {
		result.Options = append(result.Options, outcome.option)
		if outcome.err != nil {
			result.Errors = append(result.Errors, *outcome.err)
		}
	}

	result.AllEstimated = allEstimated(result.Options)
	return result, nil
}

type carrierOutcome struct {
	option rating.ShippingOption
	err    *CarrierError
}

// quoteOne prices the shipment with one carrier. Any failure converts
// into the carrier's local estimate; the original failure is kept for
// diagnostics.
func (a *RateAggregator) quoteOne(
	ctx context.Context,
	binding CarrierBinding,
	origin, destination address.Address,
	spec shipment.Spec,
	lane shipment.TradeLane,
	req Request,
) carrierOutcome {
	provider := binding.Provider

	if !binding.Enabled {
		cause := errs.NewNotConfiguredError(provider.ID(), []string{"enabled"})
		return a.estimated(binding, spec, serviceLabel(provider, spec, lane), cause)
	}

	service, err := provider.MapService(spec, lane)
	if err != nil {
		a.log.Warnf("rate aggregator: %s service mapping failed, estimating: %v", provider.ID(), err)
		return a.estimated(binding, spec, laneLabel(lane), err)
	}

	callCtx, cancel := context.WithTimeout(ctx, binding.timeout())
	defer cancel()

	quote, err := provider.Quote(callCtx, ports.QuoteRequest{
		Origin:           origin,
		Destination:      destination,
		OriginPoint:      req.OriginPoint,
		DestinationPoint: req.DestinationPoint,
		Spec:             spec,
		Service:          service,
	})
	if err == nil {
		err = quote.Validate()
	}
	if err != nil {
		a.log.Warnf("rate aggregator: %s live quote failed, estimating: %v", provider.ID(), err)
		return a.estimated(binding, spec, service.Label(), err)
	}

	return carrierOutcome{option: rating.ShippingOption{
		CarrierID:    provider.ID(),
		DisplayName:  provider.DisplayName(),
		FinalPrice:   binding.Margin.Apply(quote.BaseAmount),
		Currency:     quote.Currency,
		ServiceLabel: service.Label(),
		IsEstimated:  quote.IsEstimated,
	}}
}

// estimated builds the fallback option for a carrier whose live path
// was unavailable, keeping the "always produce some number" guarantee.
func (a *RateAggregator) estimated(
	binding CarrierBinding,
	spec shipment.Spec,
	serviceLabel string,
	cause error,
) carrierOutcome {
	provider := binding.Provider
	base := provider.Estimate(spec)

	return carrierOutcome{
		option: rating.ShippingOption{
			CarrierID:    provider.ID(),
			DisplayName:  provider.DisplayName(),
			FinalPrice:   binding.Margin.Apply(base),
			Currency:     provider.Currency(),
			ServiceLabel: serviceLabel,
			IsEstimated:  true,
		},
		err: &CarrierError{CarrierID: provider.ID(), Err: cause},
	}
}

// parseSide parses and validates one address, naming the failing side
// in any error so the caller knows whether origin or destination is
// unusable.
func (a *RateAggregator) parseSide(side, raw string) (address.Address, error) {
	parsed, err := a.parser.Parse(raw)
	if err != nil {
		return address.Address{}, errs.NewInvalidAddressErrorWithCause(side, "could not parse raw address", err)
	}

	if !parsed.IsValid() {
		return address.Address{}, errs.NewInvalidAddressError(side, fmt.Sprintf(
			"parsed address is not carrier-valid (line1=%q, city=%q, country=%q)",
			parsed.Line1, parsed.City, parsed.CountryCode))
	}

	return parsed, nil
}

// selectBindings filters bindings by the requested carrier IDs,
// preserving binding order. Requested IDs with no binding are returned
// separately so they surface as diagnostics instead of vanishing.
func (a *RateAggregator) selectBindings(carrierIDs []string) ([]CarrierBinding, []string) {
	if len(carrierIDs) == 0 {
		return a.bindings, nil
	}

	requested := make(map[string]bool, len(carrierIDs))
	for _, id := range carrierIDs {
		requested[id] = false
	}

	var selected []CarrierBinding
	for _, binding := range a.bindings {
		id := binding.Provider.ID()
		if _, ok := requested[id]; ok {
			selected = append(selected, binding)
			requested[id] = true
		}
	}

	var unknown []string
	for _, id := range carrierIDs {
		if !requested[id] {
			unknown = append(unknown, id)
		}
	}

	return selected, unknown
}

// serviceLabel derives the label an estimated option should carry:
// the carrier's own service code when the mapping succeeds, the lane
// name otherwise. Estimated options never carry an internal sentinel.
func serviceLabel(provider ports.RateProvider, spec shipment.Spec, lane shipment.TradeLane) string {
	if service, err := provider.MapService(spec, lane); err == nil {
		return service.Label()
	}
	return laneLabel(lane)
}

func laneLabel(lane shipment.TradeLane) string {
	return strings.ToUpper(lane.String())
}

func anyEnabled(bindings []CarrierBinding) bool {
	for _, binding := range bindings {
		if binding.Enabled {
			return true
		}
	}
	return false
}

func maxTimeout(bindings []CarrierBinding) time.Duration {
	var longest time.Duration
	for _, binding := range bindings {
		if t := binding.timeout(); t > longest {
			longest = t
		}
	}
	return longest
}

func allEstimated(options []rating.ShippingOption) bool {
	if len(options) == 0 {
		return false
	}
	for _, option := range options {
		if !option.IsEstimated {
			return false
		}
	}
	return true
}
