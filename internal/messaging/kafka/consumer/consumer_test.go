package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/danny20232023/hris-sub007/internal/events"
	"github.com/danny20232023/hris-sub007/internal/messaging/kafka/consumer"
	"github.com/danny20232023/hris-sub007/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type seeder struct {
	err   error
	calls []string
}

func (s *seeder) EnsureBalances(ctx context.Context, companyID, employeeID string) error {
	s.calls = append(s.calls, companyID+"/"+employeeID)
	return s.err
}

type invalidator struct{ companies []string }

func (i *invalidator) InvalidateOptions(ctx context.Context, companyID string) error {
	i.companies = append(i.companies, companyID)
	return nil
}

// fakeReader serves msgs once, then blocks until the context is cancelled.
type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func employeeCreated(t *testing.T, companyID, employeeID string) []byte {
	t.Helper()
	b, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  events.EventEmployeeCreated,
		CompanyID:  companyID,
		EmployeeID: employeeID,
	})
	require.NoError(t, err)
	return b
}

func TestEmployeeCreatedHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds balances and drops the options cache", func(t *testing.T) {
		s, inv := &seeder{}, &invalidator{}
		h := consumer.EmployeeCreatedHandler{Credits: s, Employees: inv, Logger: zap.NewNop()}

		require.NoError(t, h.Handle(ctx, employeeCreated(t, "company-1", "emp-1")))
		assert.Equal(t, []string{"company-1/emp-1"}, s.calls)
		assert.Equal(t, []string{"company-1"}, inv.companies)
	})

	t.Run("duplicate seed is not an error", func(t *testing.T) {
		s := &seeder{err: &pgconn.PgError{Code: "23505"}}
		h := consumer.EmployeeCreatedHandler{Credits: s, Employees: &invalidator{}, Logger: zap.NewNop()}

		assert.NoError(t, h.Handle(ctx, employeeCreated(t, "company-1", "emp-1")))
	})

	t.Run("other lifecycle events are ignored", func(t *testing.T) {
		s := &seeder{}
		h := consumer.EmployeeCreatedHandler{Credits: s, Logger: zap.NewNop()}

		assert.NoError(t, h.Handle(ctx, []byte(`{"event_type":"employee_terminated","employee_id":"emp-1"}`)))
		assert.Empty(t, s.calls)
	})

	t.Run("event without ids is rejected", func(t *testing.T) {
		s := &seeder{}
		h := consumer.EmployeeCreatedHandler{Credits: s, Logger: zap.NewNop()}

		err := h.Handle(ctx, employeeCreated(t, "company-1", ""))
		assert.ErrorContains(t, err, events.ErrIncompleteEmployeeEvent.Error())
		assert.Empty(t, s.calls)
	})
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &seeder{}
	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		{Offset: 1, Value: employeeCreated(t, "company-1", "emp-1")},
		{Offset: 2, Value: []byte("not json")},
	}}

	consumer.ConsumeEmployeeLifecycle(ctx, reader, consumer.EmployeeCreatedHandler{Credits: s}, zap.NewNop())

	assert.Equal(t, []int64{1, 2}, reader.committed)
	assert.Len(t, s.calls, 1)
}

func TestConsumeEmployeeLifecycle_TransientFailureIsNotCommitted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
		{Offset: 7, Value: employeeCreated(t, "company-1", "emp-1")},
		{Offset: 8, Value: employeeCreated(t, "company-1", "bad")},
	}}
	calls := 0
	s := seederFunc(func(ctx context.Context, companyID, employeeID string) error {
		calls++
		if employeeID == "bad" {
			return apperror.New(apperror.CodeInvalidInput, "invalid employee id", 400)
		}
		return errors.New("connection reset")
	})

	consumer.ConsumeEmployeeLifecycle(ctx, reader, consumer.EmployeeCreatedHandler{Credits: s}, zap.NewNop())

	assert.Equal(t, 2, calls)
	assert.Equal(t, []int64{8}, reader.committed)
}

type seederFunc func(ctx context.Context, companyID, employeeID string) error

func (f seederFunc) EnsureBalances(ctx context.Context, companyID, employeeID string) error {
	return f(ctx, companyID, employeeID)
}
