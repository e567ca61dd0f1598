package shipment

import (
	"errors"
	"fmt"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/errs"
)

// Type classifies what is being shipped.
type Type int

const (
	// TypeUnknown represents an invalid or undefined shipment type.
	TypeUnknown Type = iota
	// TypeDocument is paper documents; several carriers price these on
	// dedicated document products.
	TypeDocument
	// TypePackage is a regular parcel.
	TypePackage
	// TypeFragile is a parcel requiring careful handling.
	TypeFragile
	// TypeHeavy is a parcel above regular handling weight.
	TypeHeavy
)

var typeStrings = map[Type]string{
	TypeDocument: "document",
	TypePackage:  "package",
	TypeFragile:  "fragile",
	TypeHeavy:    "heavy",
}

// String returns the wire name of the type, or "unknown".
func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the type is one of the defined values.
func (t Type) Validate() error {
	if _, ok := typeStrings[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment type", fmt.Errorf("%d is not a valid type", t))
	}
	return nil
}

// ParseType resolves a wire name to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeStrings {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("shipment type", fmt.Errorf("%q is not a valid type", s))
}

// DeliveryMethod is the requested delivery speed.
type DeliveryMethod int

const (
	// MethodUnknown represents an invalid or undefined delivery method.
	MethodUnknown DeliveryMethod = iota
	// MethodStandard is regular delivery.
	MethodStandard
	// MethodExpress is priority delivery.
	MethodExpress
	// MethodSameDay is same-day delivery; carriers map this to their
	// standard lane product plus a before-noon service flag.
	MethodSameDay
)

var methodStrings = map[DeliveryMethod]string{
	MethodStandard: "standard",
	MethodExpress:  "express",
	MethodSameDay:  "same-day",
}

// String returns the wire name of the method, or "unknown".
func (m DeliveryMethod) String() string {
	if s, ok := methodStrings[m]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the method is one of the defined values.
func (m DeliveryMethod) Validate() error {
	if _, ok := methodStrings[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery method", fmt.Errorf("%d is not a valid method", m))
	}
	return nil
}

// ParseDeliveryMethod resolves a wire name to a DeliveryMethod.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	for m, name := range methodStrings {
		if name == s {
			return m, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("delivery method", fmt.Errorf("%q is not a valid method", s))
}

// TradeLane classifies a shipment as domestic or international based
// on its origin and destination countries.
type TradeLane int

const (
	// LaneDomestic means origin and destination share a country.
	LaneDomestic TradeLane = iota
	// LaneInternational means the shipment crosses a border. Unknown
	// endpoints classify as international, the conservative choice for
	// pricing.
	LaneInternational
)

// String returns "domestic" or "international".
func (l TradeLane) String() string {
	if l == LaneDomestic {
		return "domestic"
	}
	return "international"
}

// LaneBetween derives the trade lane from two country inputs. Both
// sides are normalized first, so free-text names classify the same way
// as ISO codes.
func LaneBetween(origin, destination string) TradeLane {
	o := kernel.NormalizeCountry(origin)
	d := kernel.NormalizeCountry(destination)
	if o != "" && o == d {
		return LaneDomestic
	}
	return LaneInternational
}

// Spec describes one shipment for rating purposes.
type Spec struct {
	Type               Type
	DeliveryMethod     DeliveryMethod
	WeightKg           float64
	OriginCountry      string
	DestinationCountry string
}

// NewSpec creates a validated Spec. WeightKg must be strictly positive
// and both enums must hold defined values.
func NewSpec(t Type, method DeliveryMethod, weightKg float64) (Spec, error) {
	if err := errors.Join(
		t.Validate(),
		method.Validate(),
		validateWeight(weightKg),
	); err != nil {
		return Spec{}, err
	}

	return Spec{Type: t, DeliveryMethod: method, WeightKg: weightKg}, nil
}

// Lane derives the trade lane from the spec's own country fields.
func (s Spec) Lane() TradeLane {
	return LaneBetween(s.OriginCountry, s.DestinationCountry)
}

func validateWeight(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%v is not greater than 0", weightKg))
	}
	return nil
}
