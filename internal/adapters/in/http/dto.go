package http

import (
	"time"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/services"
)

// QuoteRequest is the inbound body of POST /api/v1/quotes.
type QuoteRequest struct {
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	OriginPoint      *GeoPoint `json:"originPoint,omitempty"`
	DestinationPoint *GeoPoint `json:"destinationPoint,omitempty"`
	ShipmentType     string    `json:"shipmentType"`
	DeliveryMethod   string    `json:"deliveryMethod"`
	WeightKg         float64   `json:"weightKg"`
	Carriers         []string  `json:"carriers,omitempty"`
}

// GeoPoint is the wire shape of an endpoint coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p *GeoPoint) toDomain() *kernel.GeoPoint {
	if p == nil {
		return nil
	}
	return &kernel.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

// QuoteResponse is the outbound body of POST /api/v1/quotes.
type QuoteResponse struct {
	Options      []ShippingOption `json:"options"`
	Warnings     []CarrierWarning `json:"warnings,omitempty"`
	AllEstimated bool             `json:"allEstimated"`
}

// ShippingOption is the wire shape of one priced carrier option.
type ShippingOption struct {
	CarrierID    string  `json:"carrierId"`
	DisplayName  string  `json:"displayName"`
	FinalPrice   float64 `json:"finalPrice"`
	Currency     string  `json:"currency"`
	ServiceLabel string  `json:"serviceLabel"`
	IsEstimated  bool    `json:"isEstimated"`
}

// CarrierWarning surfaces one carrier's failure that was converted
// into an estimate, so the portal can explain degraded pricing.
type CarrierWarning struct {
	CarrierID string `json:"carrierId"`
	Message   string `json:"message"`
}

func toQuoteResponse(result services.Result) QuoteResponse {
	response := QuoteResponse{
		Options:      make([]ShippingOption, 0, len(result.Options)),
		AllEstimated: result.AllEstimated,
	}
	for _, option := range result.Options {
		response.Options = append(response.Options, toShippingOption(option))
	}
	for _, carrierErr := range result.Errors {
		response.Warnings = append(response.Warnings, CarrierWarning{
			CarrierID: carrierErr.CarrierID,
			Message:   carrierErr.Err.Error(),
		})
	}
	return response
}

func toShippingOption(option rating.ShippingOption) ShippingOption {
	return ShippingOption{
		CarrierID:    option.CarrierID,
		DisplayName:  option.DisplayName,
		FinalPrice:   option.FinalPrice,
		Currency:     option.Currency,
		ServiceLabel: option.ServiceLabel,
		IsEstimated:  option.IsEstimated,
	}
}

// CreateOrderRequest is the inbound body of POST /api/v1/orders: the
// shipping option the shipper accepted.
type CreateOrderRequest struct {
	CarrierID  string  `json:"carrierId"`
	FinalPrice float64 `json:"finalPrice"`
	Currency   string  `json:"currency"`
}

// TransitionRequest is the inbound body of POST /api/v1/orders/:id/transitions.
type TransitionRequest struct {
	Target string `json:"target"`
}

// OrderResponse is the wire shape of an order aggregate.
type OrderResponse struct {
	ID          string     `json:"id"`
	TrackingNo  string     `json:"trackingNo"`
	Status      string     `json:"status"`
	Price       float64    `json:"price"`
	CreatedAt   time.Time  `json:"createdAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

func toOrderResponse(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:          aggregate.ID().String(),
		TrackingNo:  aggregate.TrackingNo(),
		Status:      aggregate.Status().String(),
		Price:       aggregate.Price(),
		CreatedAt:   aggregate.CreatedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
	}
}

// Error is the uniform error body of every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
