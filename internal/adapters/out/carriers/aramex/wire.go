package aramex

import (
	"fmt"
	"strings"

	"shipquote/internal/core/domain/model/address"
	"shipquote/internal/core/ports"
)

// Wire types for the Aramex rate calculator JSON contract.

type rateRequest struct {
	ClientInfo         clientInfo      `json:"ClientInfo"`
	Transaction        transaction     `json:"Transaction"`
	OriginAddress      wireAddress     `json:"OriginAddress"`
	DestinationAddress wireAddress     `json:"DestinationAddress"`
	ShipmentDetails    shipmentDetails `json:"ShipmentDetails"`
}

type clientInfo struct {
	UserName           string `json:"UserName"`
	Password           string `json:"Password"`
	Version            string `json:"Version"`
	AccountNumber      string `json:"AccountNumber"`
	AccountPin         string `json:"AccountPin"`
	AccountEntity      string `json:"AccountEntity"`
	AccountCountryCode string `json:"AccountCountryCode"`
}

type transaction struct {
	Reference1 string `json:"Reference1"`
}

type wireAddress struct {
	Line1               string `json:"Line1"`
	Line2               string `json:"Line2,omitempty"`
	City                string `json:"City"`
	StateOrProvinceCode string `json:"StateOrProvinceCode,omitempty"`
	PostCode            string `json:"PostCode,omitempty"`
	CountryCode         string `json:"CountryCode"`
}

type shipmentDetails struct {
	PaymentType    string `json:"PaymentType"`
	ProductGroup   string `json:"ProductGroup"`
	ProductType    string `json:"ProductType"`
	Services       string `json:"Services"`
	NumberOfPieces int    `json:"NumberOfPieces"`
	ActualWeight   weight `json:"ActualWeight"`
}

type weight struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit"`
}

type rateResponse struct {
	Transaction   transaction    `json:"Transaction"`
	Notifications []notification `json:"Notifications"`
	HasErrors     bool           `json:"HasErrors"`
	TotalAmount   totalAmount    `json:"TotalAmount"`
}

type notification struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

type totalAmount struct {
	CurrencyCode string  `json:"CurrencyCode"`
	Value        float64 `json:"Value"`
}

// notificationText joins the carrier's own notifications into one
// line, preserved verbatim in rejection errors and diagnostics.
func (r *rateResponse) notificationText() string {
	if len(r.Notifications) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Notifications))
	for _, n := range r.Notifications {
		parts = append(parts, fmt.Sprintf("%s: %s", n.Code, n.Message))
	}
	return strings.Join(parts, "; ")
}

func (c *Client) buildRateRequest(req ports.QuoteRequest) rateRequest {
	return rateRequest{
		ClientInfo: clientInfo{
			UserName:           c.cfg.Username,
			Password:           c.cfg.Password,
			Version:            "v1.0",
			AccountNumber:      c.cfg.AccountNumber,
			AccountPin:         c.cfg.AccountPin,
			AccountEntity:      c.cfg.AccountEntity,
			AccountCountryCode: c.cfg.AccountCountryCode,
		},
		OriginAddress:      toWireAddress(req.Origin),
		DestinationAddress: toWireAddress(req.Destination),
		ShipmentDetails: shipmentDetails{
			PaymentType:    "P",
			ProductGroup:   req.Service.ProductGroup,
			ProductType:    req.Service.ProductType,
			Services:       strings.Join(req.Service.ExtraServices, ","),
			NumberOfPieces: 1,
			ActualWeight:   weight{Value: req.Spec.WeightKg, Unit: "KG"},
		},
	}
}

func toWireAddress(a address.Address) wireAddress {
	return wireAddress{
		Line1:               a.Line1,
		Line2:               a.Line2,
		City:                a.City,
		StateOrProvinceCode: a.StateCode,
		PostCode:            a.PostalCode,
		CountryCode:         a.CountryCode,
	}
}
