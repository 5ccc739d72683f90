package main

import (
	"context"
	"fmt"

	"github.com/lavandel/flower_storefront/internal/config"
	"github.com/lavandel/flower_storefront/internal/outbox_relay"
	"github.com/lavandel/flower_storefront/pkg/brokers/kafka/outbox_producer"
	"github.com/lavandel/flower_storefront/pkg/databases/postgres"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, log, postgresDSN(&cfg.Postgres))
	if err != nil {
		panic(fmt.Sprintf("failed to connect to postgres: %v", err))
	}

	syncProducer, err := outbox_producer.NewProducer(cfg.Kafka.BrokerList)
	if err != nil {
		panic(fmt.Sprintf("failed to create producer: %v", err))
	}

	relay := outbox_relay.New(syncProducer, db.GetDB(), cfg.Kafka, log)

	if err = relay.ProduceMessages(ctx); err != nil {
		panic(fmt.Sprintf("produce messages error: %v", err))
	}

	log.Info("pending order events relayed")
}

func postgresDSN(psqlCfg *config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		psqlCfg.Host, psqlCfg.Port, psqlCfg.User, psqlCfg.DbName, psqlCfg.Pwd, psqlCfg.SslMode)
}
