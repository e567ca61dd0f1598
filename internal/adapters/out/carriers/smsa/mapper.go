package smsa

import (
	"errors"

	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/model/shipment"
)

// SMSA product codes.
const (
	groupDomestic      = "DOM"
	groupInternational = "INTL"

	typeDomesticDelivery      = "DLV"
	typeInternationalDelivery = "IDL"
	typeInternationalDocument = "IDX"
	typeInternationalParcel   = "IPX"

	// serviceSameDay is the before-end-of-day commitment SMSA sells as
	// an add-on rather than a separate product.
	serviceSameDay = "AMDLV"
)

// MapService derives the SMSA product selection for a shipment. SMSA
// has a single domestic product; express only changes the product on
// the international lane, and same-day rides on the standard product
// as an add-on.
func (c *Client) MapService(spec shipment.Spec, lane shipment.TradeLane) (rating.ServiceCode, error) {
	if err := errors.Join(spec.Type.Validate(), spec.DeliveryMethod.Validate()); err != nil {
		return rating.ServiceCode{}, err
	}

	code := c.standardCode(spec, lane)
	if spec.DeliveryMethod == shipment.MethodSameDay {
		code.ExtraServices = append(code.ExtraServices, serviceSameDay)
	}
	return code, nil
}

func (c *Client) standardCode(spec shipment.Spec, lane shipment.TradeLane) rating.ServiceCode {
	if lane == shipment.LaneDomestic {
		return rating.ServiceCode{ProductGroup: groupDomestic, ProductType: typeDomesticDelivery}
	}
	if spec.DeliveryMethod == shipment.MethodExpress {
		productType := typeInternationalParcel
		if spec.Type == shipment.TypeDocument {
			productType = typeInternationalDocument
		}
		return rating.ServiceCode{ProductGroup: groupInternational, ProductType: productType}
	}
	return rating.ServiceCode{ProductGroup: groupInternational, ProductType: typeInternationalDelivery}
}
