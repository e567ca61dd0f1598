package aramex

import (
	"errors"

	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/model/shipment"
)

// Aramex product codes.
const (
	groupDomestic      = "DOM"
	groupInternational = "EXP"

	typeOvernightDocument = "OND"
	typeOvernightParcel   = "ONP"
	typeGroundDocument    = "GDX"
	typeEconomyParcel     = "EPX"
	typePriorityDocument  = "PDX"
	typePriorityParcel    = "PPX"

	// serviceNoon is the guaranteed before-noon delivery flag attached
	// to same-day shipments.
	serviceNoon = "NOON"
)

// MapService derives the Aramex product selection for a shipment.
// Pure table lookup, in priority order:
//
//  1. express + international selects the priority product, document
//     or parcel depending on the shipment type
//  2. same-day selects the lane's standard product plus the NOON flag
//  3. everything else selects the lane's standard product
func (c *Client) MapService(spec shipment.Spec, lane shipment.TradeLane) (rating.ServiceCode, error) {
	if err := errors.Join(spec.Type.Validate(), spec.DeliveryMethod.Validate()); err != nil {
		return rating.ServiceCode{}, err
	}

	switch {
	case spec.DeliveryMethod == shipment.MethodExpress && lane == shipment.LaneInternational:
		return rating.ServiceCode{
			ProductGroup: groupInternational,
			ProductType:  pick(spec.Type == shipment.TypeDocument, typePriorityDocument, typePriorityParcel),
		}, nil

	case spec.DeliveryMethod == shipment.MethodSameDay:
		code := c.standardCode(spec, lane)
		code.ExtraServices = append(code.ExtraServices, serviceNoon)
		return code, nil

	default:
		return c.standardCode(spec, lane), nil
	}
}

func (c *Client) standardCode(spec shipment.Spec, lane shipment.TradeLane) rating.ServiceCode {
	if lane == shipment.LaneDomestic {
		return rating.ServiceCode{
			ProductGroup: groupDomestic,
			ProductType:  pick(spec.Type == shipment.TypeDocument, typeOvernightDocument, typeOvernightParcel),
		}
	}
	return rating.ServiceCode{
		ProductGroup: groupInternational,
		ProductType:  pick(spec.Type == shipment.TypeDocument, typeGroundDocument, typeEconomyParcel),
	}
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
