package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"
)

// RunConsumer delivers issued payslips by mail until interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	payslipRepo := payslip.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	settingsService := settings.NewService(settings.NewRepository(gormDB))

	payslipService := payslip.NewService(payslipDeps(
		sqlDB, payslipRepo, employeeRepo, payrollRepo, counterRepo, outboxRepo, settingsService,
	))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayslipIssuedTopic,
		GroupID:        "go-payroll-payslip-dispatch",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayslipIssued(ctx, reader, payslipService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
