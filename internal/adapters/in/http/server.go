// Package http exposes the rating core over a JSON API. The server
// depends on narrow local interfaces so handlers stay testable without
// live carriers or a database.
package http

import (
	"context"
	"errors"
	"net/http"

	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/core/domain/model/shipment"
	"shipquote/internal/core/domain/services"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// QuoteService is the slice of the rate aggregator the server needs.
type QuoteService interface {
	AggregateQuotes(ctx context.Context, req services.Request) (services.Result, error)
}

// Server wires the HTTP handlers to the quote service and the order
// repository.
type Server struct {
	quotes QuoteService
	orders ports.OrderRepository
}

// NewServer creates a new HTTP server.
func NewServer(quotes QuoteService, orders ports.OrderRepository) *Server {
	return &Server{quotes: quotes, orders: orders}
}

// Register mounts all routes on the given echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/quotes", s.CreateQuote)
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders/track/:trackingNo", s.GetOrder)
	e.POST("/api/v1/orders/:id/transitions", s.TransitionOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateQuote handles POST /api/v1/quotes: prices a shipment between
// two raw addresses across the configured carriers.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var body QuoteRequest
	if err := ctx.Bind(&body); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}

	shipmentType, err := shipment.ParseType(body.ShipmentType)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}
	method, err := shipment.ParseDeliveryMethod(body.DeliveryMethod)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}
	spec, err := shipment.NewSpec(shipmentType, method, body.WeightKg)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.quotes.AggregateQuotes(ctx.Request().Context(), services.Request{
		OriginRaw:        body.Origin,
		DestinationRaw:   body.Destination,
		OriginPoint:      body.OriginPoint.toDomain(),
		DestinationPoint: body.DestinationPoint.toDomain(),
		Spec:             spec,
		CarrierIDs:       body.Carriers,
	})
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toQuoteResponse(result))
}

// CreateOrder handles POST /api/v1/orders: turns an accepted shipping
// option into an order in status new.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}

	aggregate, err := order.NewOrder(body.FinalPrice)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	if err := s.orders.Add(ctx.Request().Context(), aggregate); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(aggregate))
}

// GetOrder handles GET /api/v1/orders/:trackingNo.
func (s *Server) GetOrder(ctx echo.Context) error {
	aggregate, err := s.orders.GetByTrackingNo(ctx.Request().Context(), ctx.Param("trackingNo"))
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions: drives
// the order state machine one step.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid order id")
	}

	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "invalid request body")
	}

	target, err := order.ParseStatus(body.Target)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	}

	requestCtx := ctx.Request().Context()
	aggregate, err := s.orders.Get(requestCtx, id)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	if err := aggregate.TransitionTo(target); err != nil {
		return mapDomainError(ctx, err)
	}

	if err := s.orders.Update(requestCtx, aggregate); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(aggregate))
}

// mapDomainError translates the typed domain failures into HTTP
// statuses. Unrecognized errors are internal failures and never leak
// their message to the client.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrInvalidAddress),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return jsonError(ctx, http.StatusBadRequest, err.Error())

	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, errs.ErrInvalidTransition):
		return jsonError(ctx, http.StatusConflict, err.Error())

	case errors.Is(err, errs.ErrNoCarriersEnabled):
		return jsonError(ctx, http.StatusServiceUnavailable, err.Error())

	default:
		return jsonError(ctx, http.StatusInternalServerError, "internal error")
	}
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
