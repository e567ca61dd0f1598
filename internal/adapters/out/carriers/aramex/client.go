package aramex

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

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/model/shipment"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/errs"
	"shipquote/internal/pkg/logx"
)

const (
	// CarrierID is the stable identifier of this integration.
	CarrierID = "aramex"

	displayName = "Aramex"
	currency    = "SAR"

	defaultBaseURL = "https://ws.aramex.net/ShippingAPI.V2/RateCalculator/Service_1_0.svc/json"
	ratePath       = "/CalculateRate"
)

// Estimate formula constants: a fixed base charge plus a per-kilogram
// increment above a free weight threshold, per lane.
const (
	domesticEstimateBase      = 17.00
	domesticEstimateFreeKg    = 3.0
	domesticEstimatePerKg     = 4.50
	internationalEstimateBase = 85.00
	internationalEstFreeKg    = 1.0
	internationalEstPerKg     = 11.25
)

// Config is the Aramex credential bundle supplied by the configuration
// collaborator. Incomplete credentials are a per-carrier failure mode
// at call time, never a process-level fatal.
type Config struct {
	AccountNumber      string
	AccountPin         string
	AccountEntity      string
	AccountCountryCode string
	Username           string
	Password           string
	BaseURL            string
}

// missingFields enumerates exactly which required credentials are absent.
func (c Config) missingFields() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"accountNumber", c.AccountNumber},
		{"accountPin", c.AccountPin},
		{"accountEntity", c.AccountEntity},
		{"accountCountryCode", c.AccountCountryCode},
		{"username", c.Username},
		{"password", c.Password},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Client implements ports.RateProvider against the Aramex rate
// calculator. Stateless per call; safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logx.Logger
}

// NewClient creates an Aramex client. A nil httpClient falls back to a
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

// Quote performs one live rate call. See ports.RateProvider for the
// failure taxonomy.
func (c *Client) Quote(ctx context.Context, req ports.QuoteRequest) (rating.CarrierQuote, error) {
	if missing := c.cfg.missingFields(); len(missing) > 0 {
		return rating.CarrierQuote{}, errs.NewNotConfiguredError(CarrierID, missing)
	}

	if !req.Origin.IsValid() {
		return rating.CarrierQuote{}, errs.NewInvalidAddressError("origin", "address is not carrier-valid")
	}
	if !req.Destination.IsValid() {
		return rating.CarrierQuote{}, errs.NewInvalidAddressError("destination", "address is not carrier-valid")
	}

	c.log.Debugf("aramex: rating %s %s -> %s", req.Service.Label(), req.Origin.CountryCode, req.Destination.CountryCode)

	payload := c.buildRateRequest(req)
	response, err := c.post(ctx, payload)
	if err != nil {
		return rating.CarrierQuote{}, err
	}

	if response.HasErrors {
		return rating.CarrierQuote{}, errs.NewUpstreamRejectedError(CarrierID, response.notificationText())
	}

	quote := rating.CarrierQuote{
		CarrierID:  CarrierID,
		BaseAmount: response.TotalAmount.Value,
		Currency:   response.TotalAmount.CurrencyCode,
		RawDiagnostics: fmt.Sprintf("service=%s transaction=%s notifications=%s",
			req.Service.Label(), response.Transaction.Reference1, response.notificationText()),
	}
	if err := quote.Validate(); err != nil {
		return rating.CarrierQuote{}, err
	}
	if quote.Currency == "" {
		quote.Currency = currency
	}

	return quote, nil
}

// Estimate implements the deterministic fallback formula: a base
// charge plus a per-kilogram increment above the free threshold, per
// lane.
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

// deadlineIn reports the remaining context budget for error messages;
// zero when the context carries no deadline.
func deadlineIn(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline).Round(time.Millisecond)
}
