package cmd

import (
	adapterhttp "shipquote/internal/adapters/in/http"
	"shipquote/internal/adapters/out/carriers/aramex"
	"shipquote/internal/adapters/out/carriers/smsa"
	"shipquote/internal/adapters/out/postgres/orderrepo"
	"shipquote/internal/core/domain/model/address"
	"shipquote/internal/core/domain/model/rating"
	"shipquote/internal/core/domain/services"
	"shipquote/internal/core/ports"
	"shipquote/internal/pkg/logx"

	"gorm.io/gorm"
)

// CompositionRoot assembles the object graph: carrier clients, the
// rate aggregator, the order repository, and the HTTP server.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	log    logx.Logger
}

// NewCompositionRoot creates the composition root.
func NewCompositionRoot(config Config, gormDB *gorm.DB, log logx.Logger) CompositionRoot {
	if log == nil {
		log = logx.NewNop()
	}
	return CompositionRoot{config: config, gormDB: gormDB, log: log}
}

// CreateHTTPServer builds the fully wired HTTP server.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(c.CreateRateAggregator(), c.CreateOrderRepository())
}

// CreateRateAggregator builds the aggregator over all configured
// carrier bindings.
func (c *CompositionRoot) CreateRateAggregator() *services.RateAggregator {
	parser := address.NewParser(c.log)
	bindings := []services.CarrierBinding{
		c.aramexBinding(),
		c.smsaBinding(),
	}
	return services.NewRateAggregator(parser, bindings, c.log)
}

// CreateOrderRepository builds the postgres order repository.
func (c *CompositionRoot) CreateOrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB)
}

func (c *CompositionRoot) aramexBinding() services.CarrierBinding {
	creds := c.config.Aramex.Credentials
	client := aramex.NewClient(aramex.Config{
		AccountNumber:      creds["accountNumber"],
		AccountPin:         creds["accountPin"],
		AccountEntity:      creds["accountEntity"],
		AccountCountryCode: creds["accountCountryCode"],
		Username:           creds["username"],
		Password:           creds["password"],
		BaseURL:            creds["baseURL"],
	}, nil, c.log)

	return services.CarrierBinding{
		Provider: client,
		Enabled:  c.config.Aramex.Enabled,
		Margin:   marginPolicy(c.config.Aramex),
		Timeout:  c.config.Aramex.Timeout,
	}
}

func (c *CompositionRoot) smsaBinding() services.CarrierBinding {
	creds := c.config.SMSA.Credentials
	client := smsa.NewClient(smsa.Config{
		PassKey: creds["passKey"],
		BaseURL: creds["baseURL"],
	}, nil, c.log)

	return services.CarrierBinding{
		Provider: client,
		Enabled:  c.config.SMSA.Enabled,
		Margin:   marginPolicy(c.config.SMSA),
		Timeout:  c.config.SMSA.Timeout,
	}
}

func marginPolicy(cfg CarrierConfig) rating.MarginPolicy {
	if cfg.MarginMode == "flat" {
		return rating.FlatMargin(cfg.MarginAmount)
	}
	return rating.PercentMargin(cfg.MarginRate)
}
