package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/danny20232023/hris-sub007/internal/events"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type BalanceSeeder interface {
	EnsureBalances(ctx context.Context, companyID, employeeID string) error
}

type OptionsInvalidator interface {
	InvalidateOptions(ctx context.Context, companyID string) error
}

// EmployeeCreatedHandler opens zero VACATION and SICK balances for a new hire and drops the
// cached employee picker of its company.
type EmployeeCreatedHandler struct {
	Credits   BalanceSeeder
	Employees OptionsInvalidator
	Logger    *zap.Logger
}

// errSkip marks a message that can never succeed; it is committed and dropped.
var errSkip = errors.New("skip message")

func (h EmployeeCreatedHandler) Handle(ctx context.Context, value []byte) error {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("%w: decode employee event: %v", errSkip, err)
	}
	if !event.IsCreated() {
		return nil
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errSkip, err)
	}

	if err := h.Credits.EnsureBalances(ctx, event.CompanyID, event.EmployeeID); err != nil {
		var appErr *apperror.AppError
		switch {
		case isUniqueViolation(err):
			h.Logger.Warn("credit balances already seeded, skipping",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
			)
		case errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidInput:
			return fmt.Errorf("%w: %v", errSkip, err)
		default:
			return err
		}
	}

	if h.Employees != nil {
		if err := h.Employees.InvalidateOptions(ctx, event.CompanyID); err != nil {
			h.Logger.Warn("invalidate employee options failed", zap.String("company_id", event.CompanyID), zap.Error(err))
		}
	}

	h.Logger.Info("credit balances seeded from employee_created event",
		zap.String("employee_id", event.EmployeeID),
		zap.String("company_id", event.CompanyID),
	)
	return nil
}

// ConsumeEmployeeLifecycle runs until ctx is cancelled. A message is committed once handled or
// found unprocessable; transient failures leave it uncommitted for redelivery.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler EmployeeCreatedHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	if handler.Logger == nil {
		handler.Logger = log
	}
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handler.Handle(ctx, msg.Value); err != nil {
			if !errors.Is(err, errSkip) {
				log.Error("handle employee lifecycle message failed",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				continue
			}
			log.Warn("dropping employee lifecycle message", zap.Int64("offset", msg.Offset), zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
