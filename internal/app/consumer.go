package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danny20232023/hris-sub007/internal/config"
	"github.com/danny20232023/hris-sub007/internal/credit"
	"github.com/danny20232023/hris-sub007/internal/employee"
	"github.com/danny20232023/hris-sub007/internal/events"
	"github.com/danny20232023/hris-sub007/internal/messaging/kafka/consumer"
	"github.com/danny20232023/hris-sub007/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer seeds credit balances for employees created by the directory service.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.Postgres(), cfg.Database.ConnectRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Database.ConnectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}

	creditService := credit.NewService(sqlDB, credit.NewRepository(gormDB))
	employeeService := employee.NewService(employee.NewRepository(gormDB), rdb)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, consumer.EmployeeCreatedHandler{
		Credits:   creditService,
		Employees: employeeService,
		Logger:    logger,
	}, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
