package main

import (
	"fmt"

	"shipquote/cmd"
	"shipquote/internal/adapters/out/postgres/orderrepo"
	"shipquote/internal/pkg/logx"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	config := cmd.LoadConfig()

	logger, err := logx.NewZapLogger(config.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)
	server := root.CreateHTTPServer()

	e := echo.New()
	e.HideBanner = true
	server.Register(e)

	logger.Infof("listening on :%s", config.HTTPPort)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}
