package aramex_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipquote/internal/adapters/out/carriers/aramex"
	"shipquote/internal/core/domain/model/address"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/model/shipment"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(baseURL string) aramex.Config {
	return aramex.Config{
		AccountNumber:      "20016",
		AccountPin:         "331421",
		AccountEntity:      "RUH",
		AccountCountryCode: "SA",
		Username:           "ops@example.com",
		Password:           "secret",
		BaseURL:            baseURL,
	}
}

func quoteRequest(t *testing.T) ports.QuoteRequest {
	t.Helper()
	spec, err := shipment.NewSpec(shipment.TypePackage, shipment.MethodStandard, 2.0)
	require.NoError(t, err)
	spec.OriginCountry = "SA"
	spec.DestinationCountry = "SA"

	return ports.QuoteRequest{
		Origin:      address.Address{Line1: "King Fahd Road", City: "Riyadh", CountryCode: "SA"},
		Destination: address.Address{Line1: "Downtown", City: "Jeddah", CountryCode: "SA"},
		Spec:        spec,
		Service:     rating.ServiceCode{ProductGroup: "DOM", ProductType: "ONP"},
	}
}

func TestClient_Quote(t *testing.T) {
	t.Run("successful live quote", func(t *testing.T) {
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"HasErrors":   false,
				"TotalAmount": map[string]any{"CurrencyCode": "SAR", "Value": 95.5},
			})
		}))
		defer server.Close()

		client := aramex.NewClient(validConfig(server.URL), nil, nil)
		quote, err := client.Quote(context.Background(), quoteRequest(t))
		require.NoError(t, err)

		assert.Equal(t, "aramex", quote.CarrierID)
		assert.InDelta(t, 95.5, quote.BaseAmount, 1e-9)
		assert.Equal(t, "SAR", quote.Currency)
		assert.False(t, quote.IsEstimated)

		clientInfo, ok := captured["ClientInfo"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ops@example.com", clientInfo["UserName"])
		details, ok := captured["ShipmentDetails"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "DOM", details["ProductGroup"])
		assert.Equal(t, "ONP", details["ProductType"])
	})

	t.Run("carrier rejection carries the carrier's own message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"HasErrors": true,
				"Notifications": []map[string]any{
					{"Code": "ERR52", "Message": "destination country not served"},
				},
			})
		}))
		defer server.Close()

		client := aramex.NewClient(validConfig(server.URL), nil, nil)
		_, err := client.Quote(context.Background(), quoteRequest(t))

		require.ErrorIs(t, err, errs.ErrUpstreamRejected)
		assert.Contains(t, err.Error(), "ERR52: destination country not served")
	})

	t.Run("non-positive amount is an invalid quote", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"HasErrors":   false,
				"TotalAmount": map[string]any{"CurrencyCode": "SAR", "Value": 0},
			})
		}))
		defer server.Close()

		client := aramex.NewClient(validConfig(server.URL), nil, nil)
		_, err := client.Quote(context.Background(), quoteRequest(t))
		require.ErrorIs(t, err, errs.ErrInvalidQuote)
	})

	t.Run("missing credentials are enumerated", func(t *testing.T) {
		client := aramex.NewClient(aramex.Config{Username: "ops@example.com"}, nil, nil)
		_, err := client.Quote(context.Background(), quoteRequest(t))

		require.ErrorIs(t, err, errs.ErrNotConfigured)
		var notConfigured *errs.NotConfiguredError
		require.ErrorAs(t, err, &notConfigured)
		assert.ElementsMatch(t,
			[]string{"accountNumber", "accountPin", "accountEntity", "accountCountryCode", "password"},
			notConfigured.Missing)
	})

	t.Run("deadline exceeded maps to an upstream timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		client := aramex.NewClient(validConfig(server.URL), nil, nil)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err := client.Quote(ctx, quoteRequest(t))
		require.ErrorIs(t, err, errs.ErrUpstreamTimeout)
	})

	t.Run("unexpected status is a rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		client := aramex.NewClient(validConfig(server.URL), nil, nil)
		_, err := client.Quote(context.Background(), quoteRequest(t))
		require.ErrorIs(t, err, errs.ErrUpstreamRejected)
	})

	t.Run("invalid addresses are refused before the network call", func(t *testing.T) {
		client := aramex.NewClient(validConfig("http://127.0.0.1:0"), nil, nil)
		req := quoteRequest(t)
		req.Origin = address.Address{}

		_, err := client.Quote(context.Background(), req)
		require.ErrorIs(t, err, errs.ErrInvalidAddress)
	})
}

func TestClient_Estimate(t *testing.T) {
	client := aramex.NewClient(aramex.Config{}, nil, nil)

	domestic := func(weight float64) shipment.Spec {
		return shipment.Spec{
			Type: shipment.TypePackage, DeliveryMethod: shipment.MethodStandard,
			WeightKg: weight, OriginCountry: "SA", DestinationCountry: "SA",
		}
	}
	international := func(weight float64) shipment.Spec {
		return shipment.Spec{
			Type: shipment.TypePackage, DeliveryMethod: shipment.MethodStandard,
			WeightKg: weight, OriginCountry: "SA", DestinationCountry: "AE",
		}
	}

	t.Run("domestic under the free threshold is the base charge", func(t *testing.T) {
		assert.InDelta(t, 17.00, client.Estimate(domestic(2)), 1e-9)
		assert.InDelta(t, 17.00, client.Estimate(domestic(3)), 1e-9)
	})

	t.Run("domestic above the free threshold adds per-kilogram", func(t *testing.T) {
		assert.InDelta(t, 26.00, client.Estimate(domestic(5)), 1e-9)
	})

	t.Run("international uses its own base and rate", func(t *testing.T) {
		assert.InDelta(t, 96.25, client.Estimate(international(2)), 1e-9)
	})

	t.Run("estimate is deterministic", func(t *testing.T) {
		assert.Equal(t, client.Estimate(domestic(4.2)), client.Estimate(domestic(4.2)))
	})
}
