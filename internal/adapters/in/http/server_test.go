package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapter "shipquote/internal/adapters/in/http"
	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/services"
	"shipquote/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoteService struct {
	lastRequest services.Request
	result      services.Result
	err         error
}

func (f *fakeQuoteService) AggregateQuotes(_ context.Context, req services.Request) (services.Result, error) {
	f.lastRequest = req
	return f.result, f.err
}

type fakeOrderRepository struct {
	byID       map[uuid.UUID]*order.Order
	byTracking map[string]*order.Order
	updated    []*order.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		byID:       map[uuid.UUID]*order.Order{},
		byTracking: map[string]*order.Order{},
	}
}

func (f *fakeOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	f.byID[aggregate.ID()] = aggregate
	f.byTracking[aggregate.TrackingNo()] = aggregate
	return nil
}

func (f *fakeOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if _, ok := f.byID[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	f.updated = append(f.updated, aggregate)
	return nil
}

func (f *fakeOrderRepository) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	aggregate, ok := f.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return aggregate, nil
}

func (f *fakeOrderRepository) GetByTrackingNo(_ context.Context, trackingNo string) (*order.Order, error) {
	aggregate, ok := f.byTracking[trackingNo]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", trackingNo)
	}
	return aggregate, nil
}

func perform(server *adapter.Server, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	server.Register(e)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_CreateQuote(t *testing.T) {
	quoteBody := `{
		"origin": "King Fahd Road, Riyadh, Saudi Arabia",
		"destination": "Corniche Road, Jeddah, Saudi Arabia",
		"shipmentType": "package",
		"deliveryMethod": "standard",
		"weightKg": 2.5,
		"carriers": ["aramex"]
	}`

	t.Run("returns the aggregated options", func(t *testing.T) {
		quotes := &fakeQuoteService{result: services.Result{
			Options: []rating.ShippingOption{{
				CarrierID: "aramex", DisplayName: "Aramex",
				FinalPrice: 107.00, Currency: "SAR", ServiceLabel: "DOM/ONP",
			}},
			Errors: []services.CarrierError{
				{CarrierID: "smsa", Err: errs.NewNotConfiguredError("smsa", []string{"passKey"})},
			},
		}}
		server := adapter.NewServer(quotes, newFakeOrderRepository())

		rec := perform(server, http.MethodPost, "/api/v1/quotes", quoteBody)
		require.Equal(t, http.StatusOK, rec.Code)

		var response adapter.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Options, 1)
		assert.Equal(t, "aramex", response.Options[0].CarrierID)
		assert.InDelta(t, 107.00, response.Options[0].FinalPrice, 1e-9)
		require.Len(t, response.Warnings, 1)
		assert.Equal(t, "smsa", response.Warnings[0].CarrierID)
		assert.False(t, response.AllEstimated)

		assert.Equal(t, []string{"aramex"}, quotes.lastRequest.CarrierIDs)
		assert.InDelta(t, 2.5, quotes.lastRequest.Spec.WeightKg, 1e-9)
	})

	t.Run("forwards optional coordinates", func(t *testing.T) {
		quotes := &fakeQuoteService{}
		server := adapter.NewServer(quotes, newFakeOrderRepository())

		rec := perform(server, http.MethodPost, "/api/v1/quotes", `{
			"origin": "Riyadh, Saudi Arabia",
			"destination": "Jeddah, Saudi Arabia",
			"originPoint": {"lat": 24.7136, "lng": 46.6753},
			"destinationPoint": {"lat": 21.4858, "lng": 39.1925},
			"shipmentType": "document",
			"deliveryMethod": "express",
			"weightKg": 0.5
		}`)
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, quotes.lastRequest.OriginPoint)
		require.NotNil(t, quotes.lastRequest.DestinationPoint)
		assert.InDelta(t, 24.7136, quotes.lastRequest.OriginPoint.Lat, 1e-9)
	})

	t.Run("rejects an unknown shipment type", func(t *testing.T) {
		server := adapter.NewServer(&fakeQuoteService{}, newFakeOrderRepository())
		rec := perform(server, http.MethodPost, "/api/v1/quotes", `{
			"origin": "a", "destination": "b",
			"shipmentType": "livestock", "deliveryMethod": "standard", "weightKg": 1
		}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps an unusable address to 400", func(t *testing.T) {
		quotes := &fakeQuoteService{err: errs.NewInvalidAddressError("origin", "could not parse raw address")}
		server := adapter.NewServer(quotes, newFakeOrderRepository())

		rec := perform(server, http.MethodPost, "/api/v1/quotes", quoteBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "origin")
	})

	t.Run("maps no enabled carriers to 503", func(t *testing.T) {
		quotes := &fakeQuoteService{err: errs.NewNoCarriersEnabledError(nil)}
		server := adapter.NewServer(quotes, newFakeOrderRepository())

		rec := perform(server, http.MethodPost, "/api/v1/quotes", quoteBody)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_Orders(t *testing.T) {
	t.Run("creates an order from an accepted option", func(t *testing.T) {
		repo := newFakeOrderRepository()
		server := adapter.NewServer(&fakeQuoteService{}, repo)

		rec := perform(server, http.MethodPost, "/api/v1/orders",
			`{"carrierId": "aramex", "finalPrice": 107.00, "currency": "SAR"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var response adapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "new", response.Status)
		assert.True(t, strings.HasPrefix(response.TrackingNo, "SHP-"))
		assert.InDelta(t, 107.00, response.Price, 1e-9)
		assert.Len(t, repo.byID, 1)
	})

	t.Run("rejects a non-positive price", func(t *testing.T) {
		server := adapter.NewServer(&fakeQuoteService{}, newFakeOrderRepository())
		rec := perform(server, http.MethodPost, "/api/v1/orders", `{"finalPrice": 0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("looks an order up by tracking number", func(t *testing.T) {
		repo := newFakeOrderRepository()
		aggregate, err := order.NewOrder(33.50)
		require.NoError(t, err)
		require.NoError(t, repo.Add(context.Background(), aggregate))

		server := adapter.NewServer(&fakeQuoteService{}, repo)
		rec := perform(server, http.MethodGet, "/api/v1/orders/track/"+aggregate.TrackingNo(), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var response adapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, aggregate.ID().String(), response.ID)
	})

	t.Run("unknown tracking number is 404", func(t *testing.T) {
		server := adapter.NewServer(&fakeQuoteService{}, newFakeOrderRepository())
		rec := perform(server, http.MethodGet, "/api/v1/orders/track/SHP-MISSING", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_TransitionOrder(t *testing.T) {
	setup := func(t *testing.T) (*adapter.Server, *fakeOrderRepository, *order.Order) {
		t.Helper()
		repo := newFakeOrderRepository()
		aggregate, err := order.NewOrder(50)
		require.NoError(t, err)
		require.NoError(t, repo.Add(context.Background(), aggregate))
		return adapter.NewServer(&fakeQuoteService{}, repo), repo, aggregate
	}

	t.Run("advances the state machine and persists", func(t *testing.T) {
		server, repo, aggregate := setup(t)

		rec := perform(server, http.MethodPost,
			"/api/v1/orders/"+aggregate.ID().String()+"/transitions", `{"target": "in_progress"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var response adapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "in_progress", response.Status)
		require.Len(t, repo.updated, 1)
		assert.Equal(t, order.StatusInProgress, repo.updated[0].Status())
	})

	t.Run("delivery stamps the timestamp", func(t *testing.T) {
		server, _, aggregate := setup(t)
		require.NoError(t, aggregate.TransitionTo(order.StatusInProgress))

		rec := perform(server, http.MethodPost,
			"/api/v1/orders/"+aggregate.ID().String()+"/transitions", `{"target": "delivered"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var response adapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.NotNil(t, response.DeliveredAt)
	})

	t.Run("disallowed transition is 409", func(t *testing.T) {
		server, _, aggregate := setup(t)

		rec := perform(server, http.MethodPost,
			"/api/v1/orders/"+aggregate.ID().String()+"/transitions", `{"target": "delivered"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown target status is 400", func(t *testing.T) {
		server, _, aggregate := setup(t)

		rec := perform(server, http.MethodPost,
			"/api/v1/orders/"+aggregate.ID().String()+"/transitions", `{"target": "vanished"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		server, _, _ := setup(t)

		rec := perform(server, http.MethodPost,
			"/api/v1/orders/"+uuid.NewString()+"/transitions", `{"target": "in_progress"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed order id is 400", func(t *testing.T) {
		server, _, _ := setup(t)

		rec := perform(server, http.MethodPost,
			"/api/v1/orders/not-a-uuid/transitions", `{"target": "in_progress"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Health(t *testing.T) {
	server := adapter.NewServer(&fakeQuoteService{}, newFakeOrderRepository())
	rec := perform(server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
