// Package smsa integrates the SMSA Express retail rate API as a
// ports.RateProvider. SMSA rates are distance-aware: the live call
// requires coordinates for both endpoints and is skipped in favor of
// the local estimate when either is missing.
package smsa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
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
	// CarrierID is the stable identifier of this integration.
	CarrierID = "smsa"

	displayName = "SMSA Express"
	currency    = "SAR"

	defaultBaseURL = "https://track.smsaexpress.com/secom"
	ratePath       = "/rates"
)

// Estimate formula constants, per lane.
const (
	domesticEstimateBase      = 14.00
	domesticEstimateFreeKg    = 2.0
	domesticEstimatePerKg     = 3.25
	internationalEstimateBase = 70.00
	internationalEstFreeKg    = 1.0
	internationalEstPerKg     = 9.50
)

// Config is the SMSA credential bundle.
type Config struct {
	PassKey string
	BaseURL string
}

// Client implements ports.RateProvider against the SMSA retail rate
// endpoint. Stateless per call; safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logx.Logger
}

// NewClient creates an SMSA client. A nil httpClient falls back to a
// plain http.Client; per-call deadlines come from the caller's context.
func NewClient(cfg Config, httpClient *http.Client, log logx.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logx.NewNop()
	}
	return &Client{cfg: cfg, httpClient: httpClient, log: log}
}

// ID implements ports.RateProvider.
func (c *Client) ID() string { return CarrierID }

// DisplayName implements ports.RateProvider.
func (c *Client) DisplayName() string { return displayName }

// Currency implements ports.RateProvider.
func (c *Client) Currency() string { return currency }

type rateRequest struct {
	PassKey     string       `json:"passKey"`
	Origin      wireEndpoint `json:"origin"`
	Destination wireEndpoint `json:"destination"`
	ServiceType string       `json:"serviceType"`
	Extras      []string     `json:"extras,omitempty"`
	WeightKg    float64      `json:"weightKg"`
	DistanceKm  float64      `json:"distanceKm"`
}

type wireEndpoint struct {
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
	PostalCode  string `json:"postalCode,omitempty"`
}

type rateResponse struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Error    string  `json:"error"`
}

// Quote performs one live rate call. Both endpoints must carry
// coordinates; without them the live path is unavailable and the
// caller falls back to Estimate.
func (c *Client) Quote(ctx context.Context, req ports.QuoteRequest) (rating.CarrierQuote, error) {
	if strings.TrimSpace(c.cfg.PassKey) == "" {
		return rating.CarrierQuote{}, errs.NewNotConfiguredError(CarrierID, []string{"passKey"})
	}

	if !req.Origin.IsValid() {
		return rating.CarrierQuote{}, errs.NewInvalidAddressError("origin", "address is not carrier-valid")
	}
	if !req.Destination.IsValid() {
		return rating.CarrierQuote{}, errs.NewInvalidAddressError("destination", "address is not carrier-valid")
	}

	if req.OriginPoint == nil || req.DestinationPoint == nil {
		return rating.CarrierQuote{}, errs.NewInvalidAddressError("coordinates",
			"distance-rated carrier requires coordinates for both endpoints")
	}
	distanceKm := req.OriginPoint.DistanceKm(*req.DestinationPoint)
	c.log.Debugf("smsa: rating %s over %.1f km", req.Service.Label(), distanceKm)

	payload := rateRequest{
		PassKey:     c.cfg.PassKey,
		Origin:      toWireEndpoint(req.Origin),
		Destination: toWireEndpoint(req.Destination),
		ServiceType: req.Service.ProductType,
		Extras:      req.Service.ExtraServices,
		WeightKg:    req.Spec.WeightKg,
		DistanceKm:  kernel.Round2(distanceKm),
	}

	response, err := c.post(ctx, payload)
	if err != nil {
		return rating.CarrierQuote{}, err
	}

	if response.Error != "" {
		return rating.CarrierQuote{}, errs.NewUpstreamRejectedError(CarrierID, response.Error)
	}

	quote := rating.CarrierQuote{
		CarrierID:      CarrierID,
		BaseAmount:     response.Price,
		Currency:       response.Currency,
		RawDiagnostics: fmt.Sprintf("service=%s distanceKm=%.2f", req.Service.Label(), distanceKm),
	}
	if err := quote.Validate(); err != nil {
		return rating.CarrierQuote{}, err
	}
	if quote.Currency == "" {
		quote.Currency = currency
	}

	return quote, nil
}

// Estimate implements the deterministic fallback formula, per lane.
func (c *Client) Estimate(spec shipment.Spec) float64 {
	if spec.Lane() == shipment.LaneDomestic {
		return kernel.Round2(domesticEstimateBase + domesticEstimatePerKg*excessKg(spec.WeightKg, domesticEstimateFreeKg))
	}
	return kernel.Round2(internationalEstimateBase + internationalEstPerKg*excessKg(spec.WeightKg, internationalEstFreeKg))
}

func excessKg(weightKg, freeKg float64) float64 {
	if weightKg <= freeKg {
		return 0
	}
	return weightKg - freeKg
}

func toWireEndpoint(a address.Address) wireEndpoint {
	return wireEndpoint{
		City:        a.City,
		CountryCode: a.CountryCode,
		PostalCode:  a.PostalCode,
	}
}

func (c *Client) post(ctx context.Context, payload rateRequest) (*rateResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewUpstreamRejectedErrorWithCause(CarrierID, "could not encode rate request", err)
	}

	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+ratePath, bytes.NewReader(body))
	if err != nil {
		return nil, errs.NewUpstreamRejectedErrorWithCause(CarrierID, "could not build rate request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errs.NewUpstreamTimeoutError(CarrierID, deadlineIn(ctx), err)
		}
		return nil, errs.NewUpstreamRejectedErrorWithCause(CarrierID, "transport failure", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewUpstreamRejectedErrorWithCause(CarrierID, "could not read rate response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewUpstreamRejectedError(CarrierID,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var decoded rateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errs.NewUpstreamRejectedErrorWithCause(CarrierID, "could not decode rate response", err)
	}

	return &decoded, nil
}

func deadlineIn(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline).Round(time.Millisecond)
}
