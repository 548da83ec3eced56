package delivery

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/metrics"
	"github.com/fsdevblog/escrow-ledger/internal/service"
	"github.com/fsdevblog/escrow-ledger/internal/transport/delivery/client"
	"github.com/fsdevblog/escrow-ledger/internal/transport/delivery/mocks"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor   *Processor
	mockClient  *mocks.MockClient
	mockService *mocks.MockServicer
	metrics     *metrics.Metrics
	ctrl        *gomock.Controller
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.mockClient = mocks.NewMockClient(s.ctrl)
	s.mockService = mocks.NewMockServicer(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = New(s.mockService, s.mockClient, logger).SetWorkers(2).SetMetrics(s.metrics)
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func outboxMessages(recipients ...string) []domain.OutboxMessage {
	res := make([]domain.OutboxMessage, len(recipients))
	for i, r := range recipients {
		res[i] = domain.OutboxMessage{
			ID:           "msg-" + r,
			Status:       domain.OutboxPending,
			Notification: domain.Notification{ID: "msg-" + r, Recipient: r, Title: "Order Shipped"},
		}
	}
	return res
}

// TestProcess_NoMessages доставлять нечего.
func (s *ProcessorTestSuite) TestProcess_NoMessages() {
	s.mockService.EXPECT().
		PendingDeliveries(gomock.Any(), s.processor.limitPerIteration).
		Return([]domain.OutboxMessage{}, nil)

	err := s.processor.process(s.T().Context())
	s.ErrorIs(err, ErrNoMessages)
}

// TestProcess_Results доставленные и недоставленные сообщения передаются в сервис одним вызовом.
func (s *ProcessorTestSuite) TestProcess_Results() {
	s.mockService.EXPECT().
		PendingDeliveries(gomock.Any(), s.processor.limitPerIteration).
		Return(outboxMessages("0xA", "0xB", "0xC"), nil)

	s.mockClient.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n domain.Notification) error {
			if n.Recipient == "0xB" {
				return client.NewStatusCodeError(http.StatusInternalServerError)
			}
			return nil
		}).Times(3)

	s.mockService.EXPECT().
		CompleteDeliveries(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, results []service.DeliveryResult) {
			s.Require().Len(results, 3)
			for _, r := range results {
				if r.ID == "msg-0xB" {
					s.Error(r.Error)
				} else {
					s.NoError(r.Error)
				}
			}
		}).Return(nil)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	s.Require().NoError(s.processor.process(ctx))

	s.InDelta(2, testutil.ToFloat64(s.metrics.Deliveries.WithLabelValues("delivered")), 0)
	s.InDelta(1, testutil.ToFloat64(s.metrics.Deliveries.WithLabelValues("failed")), 0)
}

// TestProcess_TooManyRequests после 429 доставка повторяется в той же итерации.
func (s *ProcessorTestSuite) TestProcess_TooManyRequests() {
	s.mockService.EXPECT().
		PendingDeliveries(gomock.Any(), s.processor.limitPerIteration).
		Return(outboxMessages("0xA"), nil)

	var calls atomic.Int32
	s.mockClient.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Notification) error {
			if calls.Add(1) == 1 {
				return client.NewTooManyRequestError(10 * time.Millisecond)
			}
			return nil
		}).Times(2)

	s.mockService.EXPECT().
		CompleteDeliveries(gomock.Any(), []service.DeliveryResult{{ID: "msg-0xA"}}).
		Return(nil)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	s.Require().NoError(s.processor.process(ctx))
}

// TestProcess_ServiceError ошибка чтения outbox пробрасывается наверх.
func (s *ProcessorTestSuite) TestProcess_ServiceError() {
	storeErr := errors.New("store is down")
	s.mockService.EXPECT().
		PendingDeliveries(gomock.Any(), s.processor.limitPerIteration).
		Return(nil, storeErr)

	err := s.processor.process(s.T().Context())
	s.ErrorIs(err, storeErr)
}

// TestRun_StopsOnCancel Run завершается без ошибки после отмены контекста.
func (s *ProcessorTestSuite) TestRun_StopsOnCancel() {
	s.processor.idlePause = 5 * time.Millisecond
	s.mockService.EXPECT().
		PendingDeliveries(gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithTimeout(s.T().Context(), 50*time.Millisecond)
	defer cancel()
	s.NoError(s.processor.Run(ctx))
}
