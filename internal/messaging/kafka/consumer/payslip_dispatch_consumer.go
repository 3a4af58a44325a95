package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/payslip"
)

// ConsumePayslipIssued delivers issued payslips by mail. Delivery failures
// leave the message uncommitted so the broker redelivers it.
func ConsumePayslipIssued(
	ctx context.Context,
	reader *kafkago.Reader,
	payslipService payslip.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_dispatch")
	log.Info("payslip dispatch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip dispatch consumer stopped")
				return
			}
			log.Error("fetch payslip dispatch message failed", zap.Error(err))
			continue
		}

		var event events.PayslipIssuedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payslip_issued event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := payslipService.Dispatch(ctx, event.CompanyID, event.PayslipID); err != nil {
			log.Error("dispatch payslip failed",
				zap.String("payslip_id", event.PayslipID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip dispatch message failed", zap.Error(err))
			continue
		}

		log.Info("payslip dispatched",
			zap.String("payslip_id", event.PayslipID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
