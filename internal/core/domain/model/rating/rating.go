package rating

import (
	"strings"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/errs"
)

// ServiceCode is a carrier-specific product selection: the product
// group and type identify the carrier's service, ExtraServices carries
// additional flags such as guaranteed before-noon delivery.
type ServiceCode struct {
	ProductGroup  string
	ProductType   string
	ExtraServices []string
}

// Label renders the code for display, e.g. "EXP/PPX+NOON".
func (c ServiceCode) Label() string {
	label := c.ProductGroup + "/" + c.ProductType
	if len(c.ExtraServices) > 0 {
		label += "+" + strings.Join(c.ExtraServices, "+")
	}
	return label
}

// CarrierQuote is the raw pricing answer of one carrier, before margin
// application. IsEstimated marks locally computed fallback prices.
type CarrierQuote struct {
	CarrierID      string
	BaseAmount     float64
	Currency       string
	IsEstimated    bool
	RawDiagnostics string
}

// Validate enforces the quote invariant: a non-positive or missing
// amount is a carrier failure, never a valid quote.
func (q CarrierQuote) Validate() error {
	if q.BaseAmount <= 0 {
		return errs.NewInvalidQuoteError(q.CarrierID, q.BaseAmount)
	}
	return nil
}

// MarginMode selects how a carrier's margin is applied.
type MarginMode int

const (
	// MarginPercent multiplies the base amount by (1 + rate).
	MarginPercent MarginMode = iota
	// MarginFlat adds a fixed amount on top of the base amount.
	MarginFlat
)

// MarginPolicy is the per-carrier markup configuration. The margin is
// configuration, not global state: every carrier binding carries its
// own policy.
type MarginPolicy struct {
	Mode   MarginMode
	Rate   float64
	Amount float64
}

// PercentMargin creates a percentage margin policy, e.g. 0.07 for 7%.
func PercentMargin(rate float64) MarginPolicy {
	return MarginPolicy{Mode: MarginPercent, Rate: rate}
}

// FlatMargin creates a flat-amount margin policy.
func FlatMargin(amount float64) MarginPolicy {
	return MarginPolicy{Mode: MarginFlat, Amount: amount}
}

// Apply computes the final price for a base amount, rounded to two
// decimals.
func (m MarginPolicy) Apply(baseAmount float64) float64 {
	switch m.Mode {
	case MarginFlat:
		return kernel.Round2(baseAmount + m.Amount)
	default:
		return kernel.Round2(baseAmount * (1 + m.Rate))
	}
}

// ShippingOption is one caller-facing quote line: a carrier, its final
// marked-up price, and whether the price is a live quote or a local
// estimate.
type ShippingOption struct {
	CarrierID    string
	DisplayName  string
	FinalPrice   float64
	Currency     string
	ServiceLabel string
	IsEstimated  bool
}
